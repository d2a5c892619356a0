package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/odiseo153/FeedBack-zone-sub001/config"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/bootstrap"
	"github.com/odiseo153/FeedBack-zone-sub001/internal/likes"
)

const serviceName = "feedback-zone-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.DSN()})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.DSN(), 0)
	if err != nil {
		log.Fatalf("postgres (sql): %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	reconciler := likes.NewReconciler(pool, likes.NewCounter(rdb))
	c := cron.New()
	if _, err := reconciler.Schedule(c, cfg.App.LikeSyncSchedule); err != nil {
		log.Fatalf("like sync schedule: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateRPS:     cfg.Server.RateLimit.RequestsPerSecond,
		RateBurst:   cfg.Server.RateLimit.Burst,
	})

	log.Printf("%s %s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
