package health

import (
	"fmt"
	"time"

	"github.com/Tenchi88/flask-shop/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// NewHealthHandler builds the /health endpoint with a Postgres check and,
// when an address is configured, a Redis check.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
	}

	if cfg.Redis.Addr != "" {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: fmt.Sprintf("redis://%s/%d", cfg.Redis.Addr, cfg.Redis.DB),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "flask-shop",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
