package query

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/app/query/types"
	"github.com/retailstream/posgold/pkg/db"
	"github.com/retailstream/posgold/pkg/logging"
	"github.com/retailstream/posgold/pkg/redis"
	"github.com/retailstream/posgold/pkg/utils"
	goldwf "github.com/retailstream/posgold/pkg/workflows/gold"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	posDb, goldDb, basicDbsErr := db.NewBasicDbs(ctx, logger, "query")
	if basicDbsErr != nil {
		logger.Fatal("Unable to initialize basic databases", zap.Error(basicDbsErr))
	}

	// Redis feeds the refresh log endpoint (optional)
	var redisClient *redis.Client
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		redisClient, err = redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Failed to initialize Redis client - refresh log will be empty",
				zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Redis client initialized for refresh notifications")
		}
	} else {
		logger.Info("Redis disabled - refresh log will not be available")
	}

	app := &types.App{
		PosDB:       posDb,
		GoldDB:      goldDb,
		RedisClient: redisClient,
		RefreshLog:  xsync.NewMap[uint64, goldwf.RefreshResult](),
		Logger:      logger,
	}

	return app
}
