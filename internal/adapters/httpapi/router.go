package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/petorang/superpet-api/internal/platform/auth/token"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: middleware resolves the session, and
// handlers decode, delegate to the application services, and encode.
func NewRouter(s *Server, codec *token.Codec, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(NewSessionMiddleware(codec, s.auth.CookieName))

	// Health endpoint is deliberately out-of-spec (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Patch("/profile", s.handleUpdateProfile)
		})
		r.Route("/superpet", func(r chi.Router) {
			r.Get("/gem", s.handleGetBalance)
			r.Post("/gem/issue", s.handleIssueGems)
			r.Post("/gem/use", s.handleUseGems)
			r.Post("/session", s.handleRotateSession)
			r.Get("/save", s.handleGetSave)
			r.Post("/save", s.handleStoreSave)
		})
		r.Delete("/rooms/keys/{keyId}", s.handleDeleteRoomKey)
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
