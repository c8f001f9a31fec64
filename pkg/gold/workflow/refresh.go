package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/retailstream/posgold/pkg/gold/activity"
)

type Context struct {
	ActivityContext *activity.Context
}

// RefreshGoldWorkflow runs one refresh of the derived gold tables. The
// schedule owns the trigger cadence; retries within a run use the activity
// retry policy below.
func (c *Context) RefreshGoldWorkflow(ctx workflow.Context) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
		TaskQueue: c.ActivityContext.TemporalClient.GoldQueue,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	return workflow.ExecuteActivity(ctx, (*activity.Context).RefreshGold).Get(ctx, nil)
}
