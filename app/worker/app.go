package workergold

import (
	"context"
	"errors"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/pkg/db"
	"github.com/retailstream/posgold/pkg/gold/activity"
	"github.com/retailstream/posgold/pkg/gold/workflow"
	"github.com/retailstream/posgold/pkg/logging"
	"github.com/retailstream/posgold/pkg/redis"
	"github.com/retailstream/posgold/pkg/temporal"
	"github.com/retailstream/posgold/pkg/utils"
	goldwf "github.com/retailstream/posgold/pkg/workflows/gold"
)

type App struct {
	Worker         worker.Worker
	TemporalClient *temporal.Client
	Logger         *zap.Logger
}

// Start starts the worker and blocks until the context is canceled.
func (a *App) Start(ctx context.Context) {
	err := a.Worker.Start()
	if err != nil {
		a.Logger.Fatal("Unable to start worker", zap.Error(err))
	}
	<-ctx.Done()
	a.Stop()
}

// Stop stops the worker.
func (a *App) Stop() {
	a.Worker.Stop()
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}

// Initialize initializes the application.
func Initialize(ctx context.Context) *App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	posDb, goldDb, basicDbsErr := db.NewBasicDbs(ctx, logger, "worker")
	if basicDbsErr != nil {
		logger.Fatal("Unable to initialize basic databases", zap.Error(basicDbsErr))
	}

	temporalClient, err := temporal.NewClient(ctx, logger)
	if err != nil {
		logger.Fatal("Unable to establish temporal connection", zap.Error(err))
	}

	// Redis powers the optional refresh notifications; the worker runs fine
	// without it.
	var redisClient *redis.Client
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		redisClient, err = redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Unable to connect to Redis, refresh notifications disabled", zap.Error(err))
			redisClient = nil
		}
	}

	activityContext := &activity.Context{
		Logger:         logger,
		PosDB:          posDb,
		GoldDB:         goldDb,
		TemporalClient: temporalClient,
		RedisClient:    redisClient,
	}
	workflowContext := workflow.Context{
		ActivityContext: activityContext,
	}

	// Turn on the temporal worker to listen on the gold task queue.
	wkr := worker.New(
		temporalClient.TClient,
		temporalClient.GoldQueue,
		worker.Options{},
	)

	// Register the workflow
	wkr.RegisterWorkflow(workflowContext.RefreshGoldWorkflow)
	// Register all the activities
	wkr.RegisterActivity(activityContext.RefreshGold)

	if scheduleErr := ensureRefreshSchedule(ctx, logger, temporalClient); scheduleErr != nil {
		logger.Fatal("Unable to ensure refresh schedule", zap.Error(scheduleErr))
	}

	return &App{
		Worker:         wkr,
		TemporalClient: temporalClient,
		Logger:         logger,
	}
}

// ensureRefreshSchedule creates the recurring gold refresh schedule if it does
// not already exist.
func ensureRefreshSchedule(ctx context.Context, logger *zap.Logger, tc *temporal.Client) error {
	id := tc.GetRefreshScheduleID()
	h := tc.TSClient.GetHandle(ctx, id)
	_, err := h.Describe(ctx)
	if err == nil {
		logger.Info("Gold refresh schedule already exists",
			zap.String("id", id),
			zap.String("namespace", tc.Namespace))
		return nil
	}

	var notFound *serviceerror.NotFound
	if errors.As(err, &notFound) {
		logger.Info("Creating gold refresh schedule",
			zap.String("id", id),
			zap.String("namespace", tc.Namespace))
		_, scheduleErr := tc.TSClient.Create(
			ctx, client.ScheduleOptions{
				ID:   id,
				Spec: temporal.RefreshSpec(),
				Action: &client.ScheduleWorkflowAction{
					Workflow:                 goldwf.RefreshGoldWorkflowName,
					TaskQueue:                tc.GoldQueue,
					WorkflowExecutionTimeout: 10 * time.Minute,
					WorkflowTaskTimeout:      2 * time.Minute,
				},
				Overlap: enumspb.SCHEDULE_OVERLAP_POLICY_SKIP,
			},
		)
		return scheduleErr
	}
	return err
}
