package publish

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_KeepsFirstOutcome(t *testing.T) {
	ch := make(chan error, 1)
	refused := errors.New("connection refused")

	require.True(t, notify(ch, refused))

	done := make(chan bool)
	go func() { done <- notify(ch, nil) }()

	select {
	case delivered := <-done:
		assert.False(t, delivered, "a late connect must be dropped")
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a full channel")
	}
	assert.ErrorIs(t, <-ch, refused)
}
