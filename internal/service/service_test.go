package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dukerupert/taskflow/internal/database"
	"github.com/dukerupert/taskflow/internal/store"
)

type env struct {
	tasks         *TaskService
	users         *UserService
	notifications *NotificationService
	audit         *AuditService
	dashboard     *DashboardService

	taskStore    *store.TaskStore
	userStore    *store.UserStore
	auditStore   *store.AuditStore
	notifStore   *store.NotificationStore
	currentStore *store.CurrentUserStore
	sessionStore *store.SessionStore
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := store.New(db)

	e := &env{
		taskStore:    store.NewTaskStore(base),
		userStore:    store.NewUserStore(base),
		auditStore:   store.NewAuditStore(base),
		notifStore:   store.NewNotificationStore(base),
		currentStore: store.NewCurrentUserStore(base),
		sessionStore: store.NewSessionStore(db),
	}

	e.audit = NewAuditService(e.auditStore, logger)
	e.notifications = NewNotificationService(e.notifStore, e.userStore, store.NewPushStore(db), nil, nil, logger)
	e.tasks = NewTaskService(e.taskStore, e.audit, e.notifications, nil, logger)
	e.users = NewUserService(e.userStore, e.currentStore, e.sessionStore, e.audit, nil, time.Hour, logger)
	e.dashboard = NewDashboardService(e.taskStore)

	return e
}

func ptr[T any](v T) *T { return &v }
