package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfNil(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
}

func TestErrorWithCode(t *testing.T) {
	err := ErrorWithCode(nil, ECANCELED)
	assert.Error(t, err)
	assert.Equal(t, ECANCELED, Code(err))
	assert.Equal(t, "canceled", UserMessage(err))
	//
	wrapped := ErrorWithCode(errors.New("low-level detail"), ETIMEOUT)
	assert.Equal(t, ETIMEOUT, Code(wrapped))
	assert.ErrorContains(t, wrapped, "low-level detail")
}

func TestWrapError(t *testing.T) {
	cause := errors.New("cause")
	err := WrapError(cause, EEXHAUSTED, "上限 %d MB", 250)
	assert.Equal(t, EEXHAUSTED, Code(err))
	assert.Equal(t, "上限 250 MB", UserMessage(err))
	assert.True(t, errors.Is(err, cause))
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
}
