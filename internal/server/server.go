// Package server wires stores, services, and handlers into the HTTP API.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/taskflow/internal/backup"
	"github.com/dukerupert/taskflow/internal/config"
	"github.com/dukerupert/taskflow/internal/handler"
	"github.com/dukerupert/taskflow/internal/metrics"
	"github.com/dukerupert/taskflow/internal/middleware"
	"github.com/dukerupert/taskflow/internal/push"
	"github.com/dukerupert/taskflow/internal/recur"
	"github.com/dukerupert/taskflow/internal/service"
	"github.com/dukerupert/taskflow/internal/store"
	ws "github.com/dukerupert/taskflow/internal/websocket"
)

type Server struct {
	db  *sql.DB
	hub *ws.Hub

	authH         *handler.AuthHandler
	taskH         *handler.TaskHandler
	userH         *handler.UserHandler
	notificationH *handler.NotificationHandler
	auditH        *handler.AuditHandler
	dashboardH    *handler.DashboardHandler
	pushH         *handler.PushHandler
	backupH       *handler.BackupHandler

	users         *service.UserService
	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	rateLimiter   *middleware.RateLimiter
	collector     *metrics.Collector
	scheduler     *recur.Scheduler
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	collector := metrics.NewCollector()

	base := store.New(db)
	taskStore := store.NewTaskStore(base)
	userStore := store.NewUserStore(base)
	auditStore := store.NewAuditStore(base)
	notificationStore := store.NewNotificationStore(base)
	currentUserStore := store.NewCurrentUserStore(base)
	sessionStore := store.NewSessionStore(db)
	pushStore := store.NewPushStore(db)

	var pushSvc *push.Service
	var pushH *handler.PushHandler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		pushH = handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push"))
	}

	auditSvc := service.NewAuditService(auditStore, logger.With("component", "audit"))
	notificationSvc := service.NewNotificationService(
		notificationStore, userStore, pushStore, pushSvc, hub,
		logger.With("component", "notification"))
	taskSvc := service.NewTaskService(taskStore, auditSvc, notificationSvc, hub,
		logger.With("component", "task"))
	userSvc := service.NewUserService(userStore, currentUserStore, sessionStore, auditSvc, hub,
		cfg.SessionTTL, logger.With("component", "user"))
	dashboardSvc := service.NewDashboardService(taskStore)

	engine := recur.NewEngine(taskStore, taskSvc, collector, logger.With("component", "recurrence"))
	scheduler := recur.NewScheduler(engine, cfg.RecurInterval, logger.With("component", "recurrence"))

	backupMgr := backup.NewManager(backup.Config{
		S3: backup.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		},
		Passphrase: cfg.BackupPassphrase,
		Interval:   cfg.BackupInterval,
	}, base, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userSvc, logger.With("component", "auth")),
		taskH:         handler.NewTaskHandler(taskSvc, logger.With("component", "task_handler")),
		userH:         handler.NewUserHandler(userSvc, logger.With("component", "user_handler")),
		notificationH: handler.NewNotificationHandler(notificationSvc, logger.With("component", "notification_handler")),
		auditH:        handler.NewAuditHandler(auditSvc, logger.With("component", "audit_handler")),
		dashboardH:    handler.NewDashboardHandler(dashboardSvc, logger.With("component", "dashboard_handler")),
		pushH:         pushH,
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		users:         userSvc,
		sessionStore:  sessionStore,
		userStore:     userStore,
		rateLimiter:   middleware.NewRateLimiter(),
		collector:     collector,
		scheduler:     scheduler,
		backupManager: backupMgr,
		logger:        logger,
	}
}

// UserService returns the user service for startup tasks.
func (s *Server) UserService() *service.UserService {
	return s.users
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Scheduler returns the recurrence scheduler.
func (s *Server) Scheduler() *recur.Scheduler {
	return s.scheduler
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", s.collector.Handler())

	// Everything else requires a valid session.
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	chain := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return middleware.Metrics(s.collector)(chain)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Task API routes
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// User API routes; mutations beyond self-update are admin only
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.Handle("POST /api/users", middleware.RequireAdmin(http.HandlerFunc(s.userH.Create)))
	mux.HandleFunc("PUT /api/users/{id}", s.userH.Update)
	mux.Handle("DELETE /api/users/{id}", middleware.RequireAdmin(http.HandlerFunc(s.userH.Delete)))

	// Notification API routes
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("GET /api/notifications/unread-count", s.notificationH.UnreadCount)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notificationH.MarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", s.notificationH.MarkAllRead)

	// Audit log API routes
	mux.Handle("GET /api/audit-logs", middleware.RequireAdmin(http.HandlerFunc(s.auditH.List)))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", s.dashboardH.Get)

	// Backup API routes
	mux.Handle("GET /api/backup/status", middleware.RequireAdmin(http.HandlerFunc(s.backupH.Status)))
	mux.Handle("POST /api/backup/run", middleware.RequireAdmin(http.HandlerFunc(s.backupH.RunNow)))

	// Push notification API routes
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("POST /api/push/unsubscribe", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	}

	// WebSocket endpoint for live updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
