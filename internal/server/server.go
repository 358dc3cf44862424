// Package server boots the full application: config, database, cache,
// storage, queue workers, scheduler, the order feed, and the HTTP and
// gRPC listeners.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/drivehub/app/jobs"
	"github.com/shashiranjanraj/drivehub/app/routes"
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/config"
	"github.com/shashiranjanraj/drivehub/pkg/cache"
	"github.com/shashiranjanraj/drivehub/pkg/database"
	"github.com/shashiranjanraj/drivehub/pkg/event"
	"github.com/shashiranjanraj/drivehub/pkg/grpcserver"
	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
	"github.com/shashiranjanraj/drivehub/pkg/queue"
	"github.com/shashiranjanraj/drivehub/pkg/reqid"
	"github.com/shashiranjanraj/drivehub/pkg/router"
	"github.com/shashiranjanraj/drivehub/pkg/schedule"
	"github.com/shashiranjanraj/drivehub/pkg/storage"
	"github.com/shashiranjanraj/drivehub/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// Start boots every subsystem and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	// Audit log sink, enabled by MONGO_URI.
	if uri := config.MongoURI(); uri != "" {
		sink, err := logger.EnableMongoSink(uri, config.MongoDatabase())
		if err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		} else {
			defer sink.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Queue: Redis-backed when the cache connection is up, in-memory
	// otherwise. Failed jobs persist either way.
	jobs.RegisterAll()
	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, 5)

	// Scheduler: periodic retry of failed notification deliveries.
	notifications := services.NewNotificationService()
	schedule.Every(5).Minutes().
		Name("notifications:retry-failed").
		WithoutOverlapping().
		Run(func() {
			if err := notifications.RetryFailed(50); err != nil {
				logger.Error("schedule: notification retry failed", "error", err)
			}
		})
	schedule.Start(ctx)

	// Live order feed: relay order lifecycle events to the admin WebSocket hub.
	orderFeed := ws.NewHub()
	go orderFeed.Run()
	relay := func(payload interface{}) {
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		select {
		case orderFeed.Broadcast <- data:
		default: // feed congested, drop rather than block
		}
	}
	event.Listen("order.placed", relay)
	event.Listen("order.status", relay)
	event.Listen("order.deleted", relay)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)
	routes.RegisterAPI(r, orderFeed)

	// Optional gRPC health endpoint for orchestrators.
	var grpcStop func()
	if port := config.GRPCPort(); port != "" {
		srv, _, err := grpcserver.Start(port, grpcserver.WithReadiness(func() bool {
			return database.DB != nil
		}))
		if err != nil {
			logger.Error("server: grpc start failed", "port", port, "error", err)
		} else {
			grpcStop = func() { grpcserver.Stop(srv) }
		}
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcStop != nil {
		grpcStop()
	}
	return httpSrv.Shutdown(shutdownCtx)
}
