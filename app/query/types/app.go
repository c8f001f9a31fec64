package types

import (
	"context"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/pkg/db"
	"github.com/retailstream/posgold/pkg/redis"
	goldwf "github.com/retailstream/posgold/pkg/workflows/gold"
)

// refreshLogSize caps how many refresh summaries we keep around.
const refreshLogSize = 32

type App struct {
	PosDB  db.PosStore
	GoldDB db.GoldStore

	// RedisClient feeds the refresh log; nil when notifications are disabled.
	RedisClient *redis.Client

	// RefreshLog holds recently observed refresh summaries keyed by version.
	RefreshLog *xsync.Map[uint64, goldwf.RefreshResult]

	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// WatchRefreshes consumes refresh summaries published by the worker and keeps
// the most recent ones available to the API. Runs until the context is
// canceled; a nil Redis client makes this a no-op.
func (a *App) WatchRefreshes(ctx context.Context) {
	if a.RedisClient == nil {
		return
	}

	sub := a.RedisClient.Subscribe(ctx, redis.ChannelRefresh)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var result goldwf.RefreshResult
			if err := json.Unmarshal([]byte(msg.Payload), &result); err != nil {
				a.Logger.Warn("Discarding malformed refresh summary", zap.Error(err))
				continue
			}
			a.RefreshLog.Store(result.Version, result)
			a.pruneRefreshLog()
		}
	}
}

// pruneRefreshLog evicts the oldest summaries once the log exceeds its cap.
func (a *App) pruneRefreshLog() {
	for a.RefreshLog.Size() > refreshLogSize {
		var oldest uint64
		a.RefreshLog.Range(func(version uint64, _ goldwf.RefreshResult) bool {
			if oldest == 0 || version < oldest {
				oldest = version
			}
			return true
		})
		if oldest == 0 {
			return
		}
		a.RefreshLog.Delete(oldest)
	}
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	go a.WatchRefreshes(ctx)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.GoldDB.Close()
	if err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	err = a.PosDB.Close()
	if err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	_ = a.Server.Shutdown(shutdownCtx)
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
