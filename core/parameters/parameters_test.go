package parameters

import (
	"testing"
	"time"

	"github.com/npillmayer/kumihan/core"
	"github.com/stretchr/testify/assert"
)

func TestRegistersDefaults(t *testing.T) {
	regs := NewParseRegisters()
	assert.False(t, regs.B(P_GRACEFULERRORS))
	assert.Equal(t, 10000, regs.N(P_PARALLELTHRESHOLDLINES))
	assert.Equal(t, 30*time.Second, regs.D(P_CHUNKTIMEOUT))
	assert.NoError(t, regs.Validate())
}

func TestRegistersSet(t *testing.T) {
	regs := NewParseRegisters()
	regs.Set(P_GRACEFULERRORS, true)
	assert.True(t, regs.B(P_GRACEFULERRORS))
	regs.Set(P_MAXCHUNKLINES, 800)
	assert.Equal(t, 800, regs.N(P_MAXCHUNKLINES))
	assert.NoError(t, regs.Validate())
}

func TestRegistersValidation(t *testing.T) {
	cases := []struct {
		name  string
		key   ParseParameter
		value interface{}
	}{
		{"negative line threshold", P_PARALLELTHRESHOLDLINES, -1},
		{"negative size threshold", P_PARALLELTHRESHOLDBYTES, -100},
		{"zero min chunk", P_MINCHUNKLINES, 0},
		{"inverted chunk range", P_MINCHUNKLINES, 100000},
		{"negative warning threshold", P_MEMORYWARNINGMB, -1.0},
		{"inverted memory range", P_MEMORYWARNINGMB, 9999.0},
		{"zero timeout", P_PROCESSINGTIMEOUT, time.Duration(0)},
		{"chunk timeout above total", P_CHUNKTIMEOUT, 10 * time.Hour},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			regs := NewParseRegisters()
			regs.Set(c.key, c.value)
			err := regs.Validate()
			assert.Error(t, err)
			assert.Equal(t, core.EINVALID, core.Code(err))
		})
	}
}

func TestRegistersKeyRange(t *testing.T) {
	regs := NewParseRegisters()
	assert.Panics(t, func() { regs.Get(P_STOPPER) })
	assert.Panics(t, func() { regs.Set(none, 1) })
}
