package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PolishedStudio01/salon-scheduler/internal/config"
	dbpkg "github.com/PolishedStudio01/salon-scheduler/internal/db"
	"github.com/PolishedStudio01/salon-scheduler/internal/logging"
	"github.com/PolishedStudio01/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)
	rdb := dbpkg.NewRedis(cfg, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sweeper := routes.RegisterRoutes(r, db, rdb, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
