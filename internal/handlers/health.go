package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports liveness plus basic dependency status.
type HealthHandler struct {
	db    *gorm.DB
	store *services.ReviewStore
	queue services.TaskQueue
	start time.Time
}

func NewHealthHandler(db *gorm.DB, store *services.ReviewStore, queue services.TaskQueue) *HealthHandler {
	return &HealthHandler{db: db, store: store, queue: queue, start: time.Now()}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async"
	}

	var reviewCount int64
	if dbStatus == "ok" {
		reviewCount, _ = h.store.Count()
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"database":   dbStatus,
		"queue_mode": queueMode,
		"reviews":    reviewCount,
		"uptime":     time.Since(h.start).Round(time.Second).String(),
	})
}
