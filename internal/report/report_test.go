package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookReceivesReports(t *testing.T) {
	r := New(nil)

	type call struct {
		msg string
		err error
	}
	var calls []call
	r.SetHook(func(msg string, err error) {
		calls = append(calls, call{msg, err})
	})

	boom := errors.New("boom")
	r.Warn("save failed", boom)
	r.Error("load failed", boom)

	require.Len(t, calls, 2)
	assert.Equal(t, "save failed", calls[0].msg)
	assert.Equal(t, "load failed", calls[1].msg)
	assert.Equal(t, boom, calls[1].err)
}

func TestNoHookIsFine(t *testing.T) {
	r := New(nil)
	r.Warn("nothing listening", errors.New("boom"))
}
