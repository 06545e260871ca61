package httpapi

import (
	"context"
	"net"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// BaseContext is suitable for http.Server.BaseContext.
func BaseContext(net.Listener) context.Context { return serverBaseCtx }

// joinContexts returns a child of req that is also canceled when base is done.
// The returned cancel func must be called when the handler ends.
func joinContexts(req, base context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// withBaseContext cancels request contexts once the base context is done, so
// store queries behind Plan and the selection handlers stop on shutdown.
func withBaseContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
