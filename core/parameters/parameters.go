/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"time"

	"github.com/npillmayer/kumihan/core"
)

type ParseParameter int

//go:generate stringer -type=ParseParameter
const (
	none ParseParameter = iota
	P_GRACEFULERRORS
	P_PARALLELTHRESHOLDLINES
	P_PARALLELTHRESHOLDBYTES
	P_MINCHUNKLINES
	P_MAXCHUNKLINES
	P_MEMORYWARNINGMB
	P_MEMORYCRITICALMB
	P_PROCESSINGTIMEOUT
	P_CHUNKTIMEOUT
	P_STOPPER
)

// ParseRegisters hold the parameters governing one parse session.
// A zero-argument constructor yields documented defaults; parameters are then
// overridden individually and validated once before the session starts.
type ParseRegisters struct {
	base [P_STOPPER]interface{}
}

// ----------------------------------------------------------------------

func NewParseRegisters() *ParseRegisters {
	regs := &ParseRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_GRACEFULERRORS] = false                   // graceful error engine off
	p[P_PARALLELTHRESHOLDLINES] = 10000           // lines before chunking pays off
	p[P_PARALLELTHRESHOLDBYTES] = 1 * 1024 * 1024 // input size threshold
	p[P_MINCHUNKLINES] = 200                      // lower bound for adaptive chunks
	p[P_MAXCHUNKLINES] = 5000                     // upper bound for adaptive chunks
	p[P_MEMORYWARNINGMB] = 150.0                  // soft memory ceiling
	p[P_MEMORYCRITICALMB] = 250.0                 // hard memory ceiling
	p[P_PROCESSINGTIMEOUT] = 300 * time.Second    // whole-document deadline
	p[P_CHUNKTIMEOUT] = 30 * time.Second          // per-chunk deadline
}

func (regs *ParseRegisters) Set(key ParseParameter, value interface{}) {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of parse parameters")
	}
	regs.base[key] = value
}

func (regs *ParseRegisters) Get(key ParseParameter) interface{} {
	if key <= 0 || key >= P_STOPPER {
		panic("parameter key outside range of parse parameters")
	}
	return regs.base[key]
}

func (regs *ParseRegisters) B(key ParseParameter) bool {
	return regs.Get(key).(bool)
}

func (regs *ParseRegisters) N(key ParseParameter) int {
	return regs.Get(key).(int)
}

func (regs *ParseRegisters) F(key ParseParameter) float64 {
	return regs.Get(key).(float64)
}

func (regs *ParseRegisters) D(key ParseParameter) time.Duration {
	return regs.Get(key).(time.Duration)
}

// Validate checks every parameter independently before a session uses the
// registers. Negative counts, non-positive memory ceilings and inverted
// min/max ranges are rejected.
func (regs *ParseRegisters) Validate() error {
	if regs.N(P_PARALLELTHRESHOLDLINES) < 0 {
		return core.Error(core.EINVALID, "parallel line threshold must not be negative")
	}
	if regs.N(P_PARALLELTHRESHOLDBYTES) < 0 {
		return core.Error(core.EINVALID, "parallel size threshold must not be negative")
	}
	if regs.N(P_MINCHUNKLINES) <= 0 || regs.N(P_MAXCHUNKLINES) <= 0 {
		return core.Error(core.EINVALID, "chunk line bounds must be positive")
	}
	if regs.N(P_MINCHUNKLINES) > regs.N(P_MAXCHUNKLINES) {
		return core.Error(core.EINVALID, "chunk line range is inverted: min %d > max %d",
			regs.N(P_MINCHUNKLINES), regs.N(P_MAXCHUNKLINES))
	}
	if regs.F(P_MEMORYWARNINGMB) <= 0 || regs.F(P_MEMORYCRITICALMB) <= 0 {
		return core.Error(core.EINVALID, "memory thresholds must be positive")
	}
	if regs.F(P_MEMORYWARNINGMB) > regs.F(P_MEMORYCRITICALMB) {
		return core.Error(core.EINVALID, "memory threshold range is inverted: warning %.1f > critical %.1f",
			regs.F(P_MEMORYWARNINGMB), regs.F(P_MEMORYCRITICALMB))
	}
	if regs.D(P_PROCESSINGTIMEOUT) <= 0 || regs.D(P_CHUNKTIMEOUT) <= 0 {
		return core.Error(core.EINVALID, "timeouts must be positive")
	}
	if regs.D(P_CHUNKTIMEOUT) > regs.D(P_PROCESSINGTIMEOUT) {
		return core.Error(core.EINVALID, "chunk timeout exceeds processing timeout")
	}
	return nil
}
