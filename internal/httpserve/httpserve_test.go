package httpserve

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), time.Second)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	err := Run(context.Background(), "127.0.0.1:-1", http.NotFoundHandler(), time.Second)
	assert.Error(t, err)
}
