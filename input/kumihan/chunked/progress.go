package chunked

import (
	"sync"
	"time"
)

// Progress is delivered to a registered callback during a chunked parse.
// Rate is in lines per second; ETASeconds is an estimate from the rate so
// far.
type Progress struct {
	CurrentLine int
	TotalLines  int
	Percent     float64
	ETASeconds  float64
	Rate        float64
}

// minProgressInterval bounds the callback rate: deliveries are dropped if
// the previous one is closer than this, except for the final one.
const minProgressInterval = 100 * time.Millisecond

// progressEmitter rate-limits progress deliveries. Safe for concurrent use
// from worker goroutines.
type progressEmitter struct {
	cb    func(Progress)
	total int
	start time.Time
	mx    sync.Mutex
	last  time.Time
}

func newProgressEmitter(cb func(Progress), totalLines int) *progressEmitter {
	return &progressEmitter{cb: cb, total: totalLines, start: time.Now()}
}

func (e *progressEmitter) emit(currentLine int) {
	if e == nil || e.cb == nil {
		return
	}
	e.mx.Lock()
	now := time.Now()
	if currentLine < e.total && now.Sub(e.last) < minProgressInterval {
		e.mx.Unlock()
		return
	}
	e.last = now
	e.mx.Unlock()

	elapsed := now.Sub(e.start).Seconds()
	p := Progress{CurrentLine: currentLine, TotalLines: e.total}
	if e.total > 0 {
		p.Percent = 100.0 * float64(currentLine) / float64(e.total)
	}
	if elapsed > 0 {
		p.Rate = float64(currentLine) / elapsed
	}
	if p.Rate > 0 {
		p.ETASeconds = float64(e.total-currentLine) / p.Rate
	}
	e.cb(p)
}
