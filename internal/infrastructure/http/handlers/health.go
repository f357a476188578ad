package handlers

import (
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/pos-service/internal/application/catalogcache"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/response"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

const (
	statusUp       = "UP"
	statusDown     = "DOWN"
	statusDisabled = "DISABLED"
)

type HealthHandler struct {
	db        *sql.DB
	redis     *redis.Client
	catalog   *catalogcache.Cache
	log       *logger.Logger
	startTime time.Time
}

// NewHealthHandler builds the health endpoint. db and redis may be nil when
// the journal or the snapshot mirror are disabled.
func NewHealthHandler(db *sql.DB, redis *redis.Client, catalog *catalogcache.Cache, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		catalog:   catalog,
		log:       log,
		startTime: time.Now().UTC(),
	}
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type ServicesStatus struct {
	App       string `json:"app"`
	Inventory string `json:"inventory"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type CatalogStatus struct {
	Items     int       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
	LastError string    `json:"last_error,omitempty"`
}

type HealthData struct {
	ServicesStatus ServicesStatus `json:"services_status"`
	Catalog        CatalogStatus  `json:"catalog"`
	Uptime         string         `json:"uptime"`
	Memory         MemoryMetrics  `json:"memory"`
	Goroutines     int            `json:"goroutines"`
}

func (h *HealthHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := statusDisabled
		if h.db != nil {
			dbStatus = statusUp
			if err := h.db.PingContext(r.Context()); err != nil {
				dbStatus = statusDown
			}
		}

		redisStatus := statusDisabled
		if h.redis != nil {
			redisStatus = statusUp
			if err := h.redis.Ping(r.Context()).Err(); err != nil {
				redisStatus = statusDown
			}
		}

		snapshot := h.catalog.Snapshot()
		catalogStatus := CatalogStatus{
			Items:     snapshot.Len(),
			FetchedAt: snapshot.FetchedAt(),
		}
		inventoryStatus := statusUp
		if err := h.catalog.LastError(); err != nil {
			inventoryStatus = statusDown
			catalogStatus.LastError = err.Error()
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		data := HealthData{
			ServicesStatus: ServicesStatus{
				App:       statusUp,
				Inventory: inventoryStatus,
				Database:  dbStatus,
				Redis:     redisStatus,
			},
			Catalog: catalogStatus,
			Uptime:  time.Since(h.startTime).String(),
			Memory: MemoryMetrics{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				NumGC:      mem.NumGC,
			},
			Goroutines: runtime.NumGoroutine(),
		}

		response.WriteSuccess(w, data)
	}
}
