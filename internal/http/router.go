package httpx

import (
	"log/slog"
	"net/http"

	"github.com/Abhinavp16/TogetherHub/internal/app"
	"github.com/Abhinavp16/TogetherHub/internal/store"
	"github.com/Abhinavp16/TogetherHub/internal/ws"
	"github.com/Abhinavp16/TogetherHub/pkg/auth"
	"github.com/Abhinavp16/TogetherHub/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub, db *store.Postgres) http.Handler {
	mw := NewMiddleware(cfg)

	j := auth.New(cfg.JWTSecret)
	authAPI := &AuthAPI{DB: db, JWT: j}
	docsAPI := &DocsAPI{DB: db}
	roomsAPI := &RoomsAPI{DB: db, Hub: hub}
	usersAPI := &UsersAPI{DB: db}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint (token checked by the hub itself)
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Auth endpoints
	mux.Handle("POST /api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("GET /api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// User endpoints
	mux.Handle("GET /api/users", mw.Auth(http.HandlerFunc(usersAPI.List)))
	mux.Handle("GET /api/users/profile", mw.Auth(http.HandlerFunc(usersAPI.Profile)))
	mux.Handle("PUT /api/users/profile", mw.Auth(http.HandlerFunc(usersAPI.UpdateProfile)))

	// Room endpoints
	mux.Handle("POST /api/rooms", mw.Auth(http.HandlerFunc(roomsAPI.Create)))
	mux.Handle("GET /api/rooms", mw.Auth(http.HandlerFunc(roomsAPI.List)))
	mux.Handle("GET /api/rooms/{id}", mw.Auth(http.HandlerFunc(roomsAPI.Get)))
	mux.Handle("POST /api/rooms/{id}/join", mw.Auth(http.HandlerFunc(roomsAPI.Join)))
	mux.Handle("POST /api/rooms/{id}/leave", mw.Auth(http.HandlerFunc(roomsAPI.Leave)))
	mux.Handle("GET /api/rooms/{id}/members", mw.Auth(http.HandlerFunc(roomsAPI.Members)))
	mux.Handle("GET /api/rooms/{id}/presence", mw.Auth(http.HandlerFunc(roomsAPI.Presence)))

	// Document endpoints
	mux.Handle("POST /api/documents", mw.Auth(http.HandlerFunc(docsAPI.Create)))
	mux.Handle("GET /api/documents", mw.Auth(http.HandlerFunc(docsAPI.List)))
	mux.Handle("GET /api/documents/{id}", mw.Auth(http.HandlerFunc(docsAPI.Get)))
	mux.Handle("PUT /api/documents/{id}", mw.Auth(http.HandlerFunc(docsAPI.Update)))
	mux.Handle("DELETE /api/documents/{id}", mw.Auth(http.HandlerFunc(docsAPI.Delete)))
	mux.Handle("POST /api/documents/{id}/share", mw.Auth(http.HandlerFunc(docsAPI.Share)))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
