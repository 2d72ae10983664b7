package chunked

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"golang.org/x/sync/errgroup"

	"github.com/npillmayer/kumihan/core"
	"github.com/npillmayer/kumihan/core/parameters"
	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/input/kumihan"
)

// chunkResult carries one worker's output until the ordered join.
type chunkResult struct {
	nodes    []*ast.Node
	errors   []string
	graceful []kumihan.GracefulError
}

// Driver parses documents through the chunked/parallel path, falling back
// to the plain sequential engine for inputs below the thresholds. A Driver
// may be re-used; each Parse call resets its session state. Like the
// sequential Parser it is owned by one caller at a time.
type Driver struct {
	regs     *parameters.ParseRegisters
	procs    int
	progress func(Progress)

	// failpoint runs in the worker goroutine before a chunk parses; tests
	// inject chunk failures through it
	failpoint func(Chunk)

	// session state
	errors   []string
	graceful []kumihan.GracefulError
	stats    kumihan.Statistics
}

// NewDriver creates a chunked driver governed by the given registers.
// Passing nil uses the documented defaults.
func NewDriver(regs *parameters.ParseRegisters) *Driver {
	if regs == nil {
		regs = parameters.NewParseRegisters()
	}
	return &Driver{regs: regs, procs: runtime.NumCPU()}
}

// RegisterProgress installs a progress callback. Deliveries are
// rate-limited; see Progress.
func (d *Driver) RegisterProgress(cb func(Progress)) {
	d.progress = cb
}

// setProcs overrides the detected processor count (used by tests to force
// or suppress the parallel path).
func (d *Driver) setProcs(n int) {
	d.procs = n
}

// Parse converts a document into its node sequence, choosing the execution
// strategy by input size. The node sequence equals the sequential engine's
// output for the same input; a failed chunk (panic or per-chunk timeout)
// contributes no nodes but does not abort the parse. Memory exhaustion,
// the overall timeout and context cancellation are fatal; the error is
// returned together with the partial results gathered so far.
func (d *Driver) Parse(ctx context.Context, text string) ([]*ast.Node, error) {
	if err := d.regs.Validate(); err != nil {
		return nil, err
	}
	d.errors, d.graceful, d.stats = nil, nil, kumihan.Statistics{}
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if !Decide(len(text), len(lines), d.procs, d.regs) {
		return d.parseSequential(ctx, text)
	}
	return d.parseChunked(ctx, lines)
}

func (d *Driver) parseSequential(ctx context.Context, text string) ([]*ast.Node, error) {
	tracer().Debugf("input below thresholds, parsing sequentially")
	p := kumihan.NewParser(d.regs)
	p.SetCancelCheck(func() bool { return ctx.Err() != nil })
	nodes, err := p.Parse(text)
	d.errors = p.Errors()
	d.graceful = p.GracefulErrors()
	d.stats = p.Statistics()
	newProgressEmitter(d.progress, d.stats.TotalLines).emit(d.stats.TotalLines)
	return nodes, err
}

func (d *Driver) parseChunked(ctx context.Context, lines []string) ([]*ast.Node, error) {
	ctx, cancel := context.WithTimeout(ctx, d.regs.D(parameters.P_PROCESSINGTIMEOUT))
	defer cancel()

	chunks := split(lines, d.procs, d.regs)
	results := treemap.NewWithIntComparator()
	var resultsMx sync.Mutex
	monitor := newMemoryMonitor(d.regs)
	prog := newProgressEmitter(d.progress, len(lines))
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.procs)
	for _, chunk := range chunks {
		if gctx.Err() != nil {
			break // canceled: submit no further chunks
		}
		chunk := chunk
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					// partial-failure policy: the chunk is logged and
					// skipped, the parse continues
					tracer().Errorf("chunk %d (lines %d–%d) failed: %v",
						chunk.ID, chunk.StartLine+1, chunk.EndLine, r)
					err = nil
				}
			}()
			if d.failpoint != nil {
				d.failpoint(chunk)
			}
			res, ok := d.parseChunk(gctx, chunk)
			if !ok {
				return nil
			}
			resultsMx.Lock()
			results.Put(chunk.ID, res)
			resultsMx.Unlock()
			prog.emit(int(atomic.AddInt64(&done, int64(len(chunk.Lines)))))
			return monitor.checkEvery()
		})
	}
	werr := g.Wait()

	nodes, errstrs, gracefuls := joinResults(results)
	nodes, headings, footnotes := kumihan.Finalize(nodes)
	d.errors = errstrs
	d.graceful = gracefuls
	d.stats = kumihan.Statistics{
		TotalLines:    len(lines),
		ErrorCount:    len(errstrs),
		HeadingCount:  headings,
		FootnoteCount: footnotes,
	}
	prog.emit(len(lines))

	if werr != nil {
		return nodes, werr // fatal (memory exhaustion), partial results attached
	}
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nodes, core.WrapError(err, core.ETIMEOUT, "処理時間が上限を超えました")
		}
		return nodes, core.WrapError(err, core.ECANCELED, "解析が中断されました")
	}
	if results.Size() == 0 && len(chunks) > 0 {
		// total parallel failure: no silent data loss, re-parse through
		// the sequential path
		tracer().Errorf("all %d chunks failed, falling back to sequential parse", len(chunks))
		return d.parseSequential(ctx, strings.Join(lines, "\n"))
	}
	return nodes, nil
}

// parseChunk runs one chunk through a freshly constructed private parser.
// The second return value is false when the chunk's result must be
// discarded (per-chunk timeout, cancellation, or a parser failure).
func (d *Driver) parseChunk(ctx context.Context, chunk Chunk) (chunkResult, bool) {
	deadline := time.Now().Add(d.regs.D(parameters.P_CHUNKTIMEOUT))
	timedOut := false
	p := kumihan.NewParser(d.regs)
	p.SetDocumentPostpass(false) // the driver finalizes the merged sequence
	p.SetCancelCheck(func() bool {
		if ctx.Err() != nil {
			return true
		}
		if time.Now().After(deadline) {
			timedOut = true
			return true
		}
		return false
	})
	nodes, err := p.Parse(strings.Join(chunk.Lines, "\n"))
	if timedOut {
		tracer().Errorf("chunk %d timed out after %v, skipped",
			chunk.ID, d.regs.D(parameters.P_CHUNKTIMEOUT))
		return chunkResult{}, false
	}
	if ctx.Err() != nil {
		return chunkResult{}, false // late result, discard
	}
	if err != nil {
		tracer().Errorf("chunk %d failed: %v, skipped", chunk.ID, err)
		return chunkResult{}, false
	}
	// graceful error positions are chunk-relative; shift to document lines
	graceful := p.GracefulErrors()
	for i := range graceful {
		graceful[i].Line += chunk.StartLine
	}
	return chunkResult{nodes: nodes, errors: p.Errors(), graceful: graceful}, true
}

// joinResults concatenates chunk results in chunk-index order. Completion
// order never matters: the treemap iterates by key.
func joinResults(results *treemap.Map) ([]*ast.Node, []string, []kumihan.GracefulError) {
	var nodes []*ast.Node
	var errstrs []string
	var gracefuls []kumihan.GracefulError
	it := results.Iterator()
	for it.Next() {
		res := it.Value().(chunkResult)
		nodes = append(nodes, res.nodes...)
		errstrs = append(errstrs, res.errors...)
		gracefuls = append(gracefuls, res.graceful...)
	}
	return nodes, errstrs, gracefuls
}

// Errors returns the traditional error strings of the last parse call.
func (d *Driver) Errors() []string {
	return d.errors
}

// GracefulErrors returns the structured diagnostics of the last parse
// call; empty unless the graceful-errors parameter is set.
func (d *Driver) GracefulErrors() []kumihan.GracefulError {
	return d.graceful
}

// Statistics returns the statistics of the last parse call.
func (d *Driver) Statistics() kumihan.Statistics {
	return d.stats
}
