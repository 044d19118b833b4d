package integration

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/finvue/debtplan/internal/adapter/http"
	"github.com/finvue/debtplan/internal/adapter/http/handler"
	"github.com/finvue/debtplan/internal/adapter/repository/postgres"
	redisrepo "github.com/finvue/debtplan/internal/adapter/repository/redis"
	"github.com/finvue/debtplan/internal/infrastructure/metrics"
	infraredis "github.com/finvue/debtplan/internal/infrastructure/redis"
	"github.com/finvue/debtplan/internal/usecase"
	"github.com/finvue/debtplan/tests/testutil"
)

var (
	metricsOnce sync.Once
	testM       *metrics.Metrics
)

// testMetrics returns a process-wide Metrics instance; promauto registers on
// the default registry and panics on duplicate registration.
func testMetrics() *metrics.Metrics {
	metricsOnce.Do(func() {
		testM = metrics.New()
	})

	return testM
}

// testStack wires the full service against real Postgres and Redis.
type testStack struct {
	router      http.Handler
	plannerUC   *usecase.PlannerUseCase
	redisClient *goredis.Client
}

func newTestStack(t *testing.T, testDB *testutil.TestDB) *testStack {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	// Cached plans from earlier runs would mask fresh simulations.
	if err := redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}

	pool := testDB.Pool
	log := zerolog.Nop()

	plannerUC := usecase.NewPlannerUseCase(
		postgres.NewDebtRepository(pool),
		postgres.NewSnapshotRepository(pool),
		postgres.NewTxManager(pool),
		postgres.NewRetrier(log),
		redisrepo.NewPlanCache(redisClient),
		postgres.NewULIDGenerator(),
		testMetrics(),
	)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		PlannerHandler: handler.NewPlannerHandler(plannerUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),
		Logger:         log,
	})

	return &testStack{router: router, plannerUC: plannerUC, redisClient: redisClient}
}
