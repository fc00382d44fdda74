package main

import (
	"github.com/reviewlens/backend/internal/config"
	"github.com/reviewlens/backend/internal/models"
	"github.com/reviewlens/backend/internal/services"
	"github.com/reviewlens/backend/pkg/logger"
	"gorm.io/gorm"
)

// appServices bundles everything the route layer needs, plus shutdown hooks.
type appServices struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *services.ReviewStore
	review    *services.ReviewService
	stats     *services.StatisticsService
	trends    *services.TrendService
	compare   *services.CompareService
	queue     services.TaskQueue
	worker    *services.Worker
	retention *services.RetentionService
}

func bootstrap(cfg *config.Config) (*appServices, error) {
	if err := models.InitDB(&cfg.Database); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	db := models.GetDB()

	store := services.NewReviewStore(db)
	analyzer := services.NewAnalyzerService(&cfg.LLM)
	reviewService := services.NewReviewService(store, analyzer)

	queue := services.InitTaskQueue(cfg)
	if syncQueue, ok := queue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(reviewService.ProcessTask)
	}

	var worker *services.Worker
	if queue.IsAsync() {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(reviewService.ProcessTask)
			if err := worker.Start(); err != nil {
				return nil, err
			}
		}
	}

	retention := services.NewRetentionService(store, &cfg.Retention)
	if err := retention.Start(); err != nil {
		logger.Warn().Err(err).Msg("retention job failed to start")
	}

	return &appServices{
		cfg:       cfg,
		db:        db,
		store:     store,
		review:    reviewService,
		stats:     services.NewStatisticsService(store),
		trends:    services.NewTrendService(store),
		compare:   services.NewCompareService(store),
		queue:     queue,
		worker:    worker,
		retention: retention,
	}, nil
}

// shutdown stops background work and closes connections.
func (a *appServices) shutdown() {
	if a.retention != nil {
		a.retention.Stop()
	}
	if a.worker != nil {
		a.worker.Stop()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			logger.Warn().Err(err).Msg("task queue close failed")
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
