package temporal

import (
	"context"
	"time"

	"github.com/retailstream/posgold/pkg/utils"
	"go.uber.org/zap"

	"go.temporal.io/api/enums/v1"
	taskqueuepb "go.temporal.io/api/taskqueue/v1"
	workflowservicepb "go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"
)

type Client struct {
	TClient   client.Client
	TSClient  client.ScheduleClient
	Namespace string

	// Task Queues
	GoldQueue string // gold - refresh workflows for the derived tables

	// Schedule IDs
	RefreshScheduleID string
}

type Health struct {
	ConnectionOK bool                      `json:"connection_ok"`
	GoldQueue    []*taskqueuepb.PollerInfo `json:"gold_queue"`
}

func NewClient(ctx context.Context, logger *zap.Logger) (*Client, error) {
	host := utils.Env("TEMPORAL_HOSTPORT", "localhost:7233")
	ns := utils.Env("TEMPORAL_NAMESPACE", "posgold")
	loggerWrapper := NewZapAdapter(logger)

	logger.Info("Connecting to Temporal", zap.String("host", host), zap.String("namespace", ns))
	tClient, err := Dial(ctx, host, ns, loggerWrapper)
	if err != nil {
		return nil, err
	}

	if _, err = tClient.CheckHealth(ctx, nil); err != nil {
		return nil, err
	}

	return &Client{
		TClient:   tClient,
		TSClient:  tClient.ScheduleClient(),
		Namespace: ns,
		// for now these are just hardcoded, could be configurable if we need it
		GoldQueue:         "gold",
		RefreshScheduleID: "gold:refresh",
	}, nil
}

// Dial connects to Temporal using the provided hostPort and namespace.
func Dial(ctx context.Context, hostPort, namespace string, logger log.Logger) (client.Client, error) {
	return client.DialContext(
		ctx,
		client.Options{
			HostPort:  hostPort,
			Namespace: namespace,
			Logger:    logger,
		},
	)
}

// GetGoldQueue returns the gold task queue.
func (c *Client) GetGoldQueue() string { return c.GoldQueue }

// GetRefreshScheduleID returns the schedule ID for the gold refresh.
func (c *Client) GetRefreshScheduleID() string { return c.RefreshScheduleID }

// RefreshSpec returns the schedule spec for the gold refresh trigger interval.
// The interval comes from GOLD_REFRESH_INTERVAL and defaults to five minutes;
// near current state inventory does not need up to the second precision.
func RefreshSpec() client.ScheduleSpec {
	return GetScheduleSpec(utils.EnvDuration("GOLD_REFRESH_INTERVAL", 5*time.Minute))
}

// FiveMinuteSpec returns a schedule spec for five minutes.
func FiveMinuteSpec() client.ScheduleSpec {
	return GetScheduleSpec(5 * time.Minute)
}

// GetScheduleSpec returns a schedule spec for the given interval.
func GetScheduleSpec(interval time.Duration) client.ScheduleSpec {
	return client.ScheduleSpec{Intervals: []client.ScheduleIntervalSpec{{Every: interval}}}
}

// Health returns the health of the Temporal client.
func (c *Client) Health(ctx context.Context) (Health, error) {
	h := Health{ConnectionOK: true}
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	svc := c.TClient.WorkflowService()
	if svc != nil {
		if rep, err := svc.DescribeTaskQueue(ctx, &workflowservicepb.DescribeTaskQueueRequest{
			Namespace:     c.Namespace,
			TaskQueue:     &taskqueuepb.TaskQueue{Name: c.GoldQueue},
			TaskQueueType: enums.TASK_QUEUE_TYPE_WORKFLOW,
		}); err == nil {
			h.GoldQueue = rep.GetPollers()
		}
	}
	return h, nil
}
