package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/turftime/internal/pkg/idempotency"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
)

// HeaderIdempotencyKey lets clients retry a POST without running it twice.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

type codeRecorder struct {
	http.ResponseWriter
	status int
}

func (w *codeRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *codeRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(p)
}

func (w *codeRecorder) SetError(err error) {
	if setter, ok := w.ResponseWriter.(interface{ SetError(error) }); ok {
		setter.SetError(err)
	}
}

// idempotencyScope namespaces key by caller and route. The caller is the
// authenticated account when there is one, the client address otherwise.
func idempotencyScope(r *http.Request, key string) string {
	caller := "ip:" + clientIP(r)
	if claims := jwt.GetAuth(r.Context()); claims != nil {
		caller = "account:" + claims.UserID
	} else if caller == "ip:" {
		caller = "addr:" + r.RemoteAddr
	}
	return caller + "|" + matchedRoutePath(r) + "|" + key
}

// middlewareIdempotency only acts on POST requests carrying the header. A key
// is remembered for ttl after a 2xx response and released otherwise, so a
// rejected attempt (wrong OTP) can be retried with the same key.
func middlewareIdempotency(store idempotency.Idempotency, lock, ttl time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				writeJSON(w, errorResponse{Message: "Invalid idempotency key"}, http.StatusBadRequest)
				return
			}

			ctx := r.Context()
			scoped := idempotencyScope(r, key)

			state, err := store.Acquire(ctx, scoped, lock)
			if err != nil {
				slog.WarnContext(ctx, "idempotency store unavailable, serving without it", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			switch state {
			case idempotency.StateInProgress:
				writeJSON(w, errorResponse{Message: "A request with this idempotency key is in progress"}, http.StatusConflict)
				return
			case idempotency.StateCompleted:
				writeJSON(w, errorResponse{Message: "A request with this idempotency key was already processed"}, http.StatusConflict)
				return
			}

			rec := &codeRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusOK && rec.status < http.StatusMultipleChoices {
				err = store.MarkCompleted(ctx, scoped, ttl)
			} else {
				err = store.Release(ctx, scoped)
			}
			if err != nil {
				slog.ErrorContext(ctx, "failed to update idempotency key", "key", key, "status", rec.status, "error", err)
			}
		})
	}
}
