// Package httpserve runs an HTTP server for the lifetime of a context.
package httpserve

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Run serves handler on addr until ctx is done, then shuts down, giving
// open requests up to grace to finish. A listen failure is returned as is.
func Run(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
