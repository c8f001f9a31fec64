package db

import (
	"context"

	"github.com/retailstream/posgold/pkg/db/clickhouse"
	"github.com/retailstream/posgold/pkg/utils"
	"go.uber.org/zap"
)

// NewBasicDbs creates the source (silver) and gold database handles used by
// every component. Database names come from the environment; the component
// name selects the connection pool profile.
func NewBasicDbs(ctx context.Context, logger *zap.Logger, component string) (*PosDB, *GoldDB, error) {
	// Database holding the silver relations fed by upstream point-of-sale ingestion
	posDbName := utils.Env("POS_DB", "posgold_pos")
	// Database holding the derived gold tables
	goldDbName := utils.Env("GOLD_DB", "posgold_gold")

	poolConfig := clickhouse.GetPoolConfigForComponent(component)

	logger.Info("Creating databases",
		zap.String("posDbName", posDbName),
		zap.String("goldDbName", goldDbName),
		zap.String("component", component))

	posClient, posErr := clickhouse.New(ctx, logger, posDbName, poolConfig)
	if posErr != nil {
		return nil, nil, posErr
	}

	goldClient, goldErr := clickhouse.New(ctx, logger, goldDbName, poolConfig)
	if goldErr != nil {
		return nil, nil, goldErr
	}

	posDb := &PosDB{Client: posClient, Name: clickhouse.SanitizeName(posDbName)}
	goldDb := &GoldDB{Client: goldClient, Name: clickhouse.SanitizeName(goldDbName)}

	if err := posDb.InitializeDB(ctx); err != nil {
		return nil, nil, err
	}
	if err := goldDb.InitializeDB(ctx); err != nil {
		return nil, nil, err
	}

	return posDb, goldDb, nil
}
