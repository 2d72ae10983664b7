package chunked

import (
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"github.com/npillmayer/kumihan/core"
	"github.com/npillmayer/kumihan/core/parameters"
)

// MemoryStatus is a point-in-time snapshot of approximate heap usage
// against the configured thresholds.
type MemoryStatus struct {
	CurrentMB  float64
	WarningMB  float64
	CriticalMB float64
}

// Exceeded grades the snapshot: 0 below warning, 1 warning, 2 critical.
func (s MemoryStatus) Exceeded() int {
	switch {
	case s.CurrentMB >= s.CriticalMB:
		return 2
	case s.CurrentMB >= s.WarningMB:
		return 1
	}
	return 0
}

// sampleEvery is the number of finished chunks between memory samples.
const sampleEvery = 4

// memoryMonitor samples heap usage periodically during a chunked parse.
// Crossing the warning threshold hints a collection cycle; crossing the
// critical threshold forces an aggressive release, and if usage stays
// critical afterwards the parse is aborted rather than risking process
// instability.
type memoryMonitor struct {
	warnMB float64
	critMB float64
	ticks  int64
}

func newMemoryMonitor(regs *parameters.ParseRegisters) *memoryMonitor {
	return &memoryMonitor{
		warnMB: regs.F(parameters.P_MEMORYWARNINGMB),
		critMB: regs.F(parameters.P_MEMORYCRITICALMB),
	}
}

// Status samples the current heap allocation.
func (m *memoryMonitor) Status() MemoryStatus {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemoryStatus{
		CurrentMB:  float64(ms.HeapAlloc) / (1024.0 * 1024.0),
		WarningMB:  m.warnMB,
		CriticalMB: m.critMB,
	}
}

// checkEvery runs the threshold check on every sampleEvery-th call. Safe
// for concurrent use from worker goroutines.
func (m *memoryMonitor) checkEvery() error {
	if atomic.AddInt64(&m.ticks, 1)%sampleEvery != 0 {
		return nil
	}
	return m.check()
}

func (m *memoryMonitor) check() error {
	status := m.Status()
	switch status.Exceeded() {
	case 0:
		return nil
	case 1:
		tracer().Infof("memory warning: %.1f MB of %.1f MB, hinting collection",
			status.CurrentMB, status.WarningMB)
		runtime.GC()
		return nil
	}
	tracer().Errorf("memory critical: %.1f MB of %.1f MB, forcing release",
		status.CurrentMB, status.CriticalMB)
	runtime.GC()
	debug.FreeOSMemory()
	status = m.Status()
	if status.Exceeded() == 2 {
		return core.Error(core.EEXHAUSTED,
			"メモリ使用量が上限を超えました (%.1f MB / %.1f MB)",
			status.CurrentMB, status.CriticalMB)
	}
	return nil
}
