package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
	"github.com/mcoot/rockquest-admin/internal/web/handler"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	Client       *backend.Client
	Clock        clock.Clock
	StaticDir    string // Path to static files directory
	SecureCookie bool
}

// NewRouter creates the dashboard router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService, cfg.Client, cfg.Logger)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService, cfg.Logger)

	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)

	secure := cfg.SecureCookie
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger, secure)
	dashboardHandler := handler.NewDashboardHandler(cfg.Logger, secure)
	usersHandler := handler.NewUsersHandler(cfg.Logger, secure)
	moderationHandler := handler.NewModerationHandler(cfg.Logger, secure)
	postsHandler := handler.NewPostsHandler(cfg.Logger, secure)
	announcementsHandler := handler.NewAnnouncementsHandler(cfg.Clock, cfg.Logger, secure)
	factsHandler := handler.NewFactsHandler(cfg.Logger, secure)
	rocksHandler := handler.NewRocksHandler(cfg.Logger, secure)
	questsHandler := handler.NewQuestsHandler(cfg.Logger, secure)
	distributionHandler := handler.NewDistributionHandler(cfg.Logger, secure)

	r.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Login and logout work with or without a session
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("/", dashboardHandler.View).Methods(http.MethodGet)

	protected.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/suspension", usersHandler.ToggleSuspension).Methods(http.MethodPost)

	protected.HandleFunc("/moderation", moderationHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/moderation/posts/{id}/approve", moderationHandler.ApprovePost).Methods(http.MethodPost)
	protected.HandleFunc("/moderation/posts/{id}/reject", moderationHandler.RejectPost).Methods(http.MethodPost)
	protected.HandleFunc("/moderation/posts/{id}/toggle", moderationHandler.TogglePost).Methods(http.MethodPost)
	protected.HandleFunc("/moderation/reports/{id}/approve", moderationHandler.ApproveReport).Methods(http.MethodPost)
	protected.HandleFunc("/moderation/reports/{id}/reject", moderationHandler.RejectReport).Methods(http.MethodPost)
	protected.HandleFunc("/moderation/reports/{id}/toggle", moderationHandler.ToggleReport).Methods(http.MethodPost)

	protected.HandleFunc("/posts", postsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id}/delete", postsHandler.Delete).Methods(http.MethodPost)

	protected.HandleFunc("/announcements", announcementsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/announcements", announcementsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/announcements/{id}", announcementsHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/announcements/{id}/delete", announcementsHandler.Delete).Methods(http.MethodPost)

	protected.HandleFunc("/facts", factsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/facts/{id}/delete", factsHandler.Delete).Methods(http.MethodPost)

	protected.HandleFunc("/rocks", rocksHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/rocks", rocksHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/rocks/{id}", rocksHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/rocks/{id}/delete", rocksHandler.Delete).Methods(http.MethodPost)

	protected.HandleFunc("/quests", questsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/quests", questsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/quests/{id}", questsHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/quests/{id}/delete", questsHandler.Delete).Methods(http.MethodPost)

	protected.HandleFunc("/distribution", distributionHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/distribution", distributionHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/distribution/{id}", distributionHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/distribution/{id}/delete", distributionHandler.Delete).Methods(http.MethodPost)

	return r
}
