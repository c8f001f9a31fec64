package activity

import (
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/retailstream/posgold/pkg/db"
	"github.com/retailstream/posgold/pkg/redis"
	"github.com/retailstream/posgold/pkg/temporal"
)

type Context struct {
	Logger         *zap.Logger
	PosDB          db.PosStore
	GoldDB         db.GoldStore
	TemporalClient *temporal.Client
	// For publishing best-effort refresh notifications (optional)
	RedisClient *redis.Client
	// LoaderMaxParallelism allows overriding the relation loader pool size.
	LoaderMaxParallelism int
	loaderPoolOnce       sync.Once
	loaderPool           pond.Pool
}

// loaderWorkerPool returns a shared worker pool for parallel source relation
// loads. Five relations per refresh, so the default pool is sized to load
// them all at once.
func (c *Context) loaderWorkerPool() pond.Pool {
	c.loaderPoolOnce.Do(func() {
		workers := c.LoaderMaxParallelism
		if workers <= 0 {
			workers = 5
		}
		c.loaderPool = pond.NewPool(workers)
	})
	return c.loaderPool
}
