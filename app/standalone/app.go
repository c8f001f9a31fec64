package standalone

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/pkg/db"
	"github.com/retailstream/posgold/pkg/gold/activity"
	"github.com/retailstream/posgold/pkg/logging"
	"github.com/retailstream/posgold/pkg/redis"
	"github.com/retailstream/posgold/pkg/utils"
)

// App refreshes the gold tables on a local cron tick. It is the
// single-process alternative to the Temporal worker for deployments without
// a Temporal cluster.
type App struct {
	PosDB  *db.PosDB
	GoldDB *db.GoldDB

	// Cron triggers the refresh according to CronSpec.
	Cron     *cron.Cron
	CronSpec string

	// RefreshContext carries the stores the refresh runs against.
	RefreshContext *activity.Context

	Logger *zap.Logger

	// Server exposes the health probes.
	Server *http.Server

	// lastRunUnixMilli tracks the most recent successful refresh.
	lastRunUnixMilli atomic.Int64
}

// Initialize initializes the App.
func Initialize(ctx context.Context) (*App, error) {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	posDb, goldDb, basicDbsErr := db.NewBasicDbs(ctx, logger, "standalone")
	if basicDbsErr != nil {
		logger.Fatal("Unable to initialize basic databases", zap.Error(basicDbsErr))
	}

	var redisClient *redis.Client
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		redisClient, err = redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Unable to connect to Redis, refresh notifications disabled", zap.Error(err))
			redisClient = nil
		}
	}

	app := &App{
		PosDB:  posDb,
		GoldDB: goldDb,
		Cron:   nil,
		// Every five minutes on the minute; near current state inventory does
		// not need tighter cadence.
		CronSpec: utils.Env("REFRESH_CRON", "0 */5 * * * *"),
		RefreshContext: &activity.Context{
			Logger:      logger,
			PosDB:       posDb,
			GoldDB:      goldDb,
			RedisClient: redisClient,
		},
		Logger: logger,
	}

	scheduleErr := app.SetupScheduler(ctx, cron.DefaultLogger, app.CronSpec)
	if scheduleErr != nil {
		return nil, scheduleErr
	}

	return app, nil
}

// SetupServer sets up the HTTP server.
func (a *App) SetupServer() {
	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3002")

	r := mux.NewRouter()

	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })).Methods("GET")
	r.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if a.Ready() {
			w.WriteHeader(200)
		} else {
			w.WriteHeader(503)
		}
	})).Methods("GET")

	a.Server = &http.Server{Addr: addr, Handler: r}
}

// SetupScheduler sets up the cron scheduler.
func (a *App) SetupScheduler(ctx context.Context, logger cron.Logger, cronSpec string) error {
	// Seconds field, optional
	a.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(logger)))

	_, err := a.Cron.AddFunc(cronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if err := a.RefreshOnce(rctx); err != nil {
			logger.Info("[standalone] refresh error", "error", err)
		}
	})
	if err != nil {
		return err
	}

	return nil
}

// StartCron starts the cron scheduler.
func (a *App) StartCron() {
	a.Cron.Start()
	a.Logger.Info("[standalone] Cron started", zap.String("cronSpec", a.CronSpec))
}

// StopCron stops the cron scheduler.
func (a *App) StopCron() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
}

// RefreshOnce runs a single gold refresh.
func (a *App) RefreshOnce(ctx context.Context) error {
	result, err := a.RefreshContext.RefreshGold(ctx)
	if err != nil {
		return err
	}
	a.lastRunUnixMilli.Store(result.StartedAt.UnixMilli())
	return nil
}

// Ready reports whether at least one refresh has completed.
func (a *App) Ready() bool { return a.lastRunUnixMilli.Load() > 0 }

// Alive indicates whether the application is alive, returning true if alive.
func (a *App) Alive() bool { return true }

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()
	_ = a.Server.Close()
	a.Logger.Info("[standalone] shutting down…")
	a.StopCron()
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
