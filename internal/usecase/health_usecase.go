package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a dependency is reachable
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	storeDriver string
	deps        map[string]Pinger
}

// NewHealthUsecase reports the store driver and pings each named dependency
func NewHealthUsecase(storeDriver string, deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{storeDriver: storeDriver, deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
		"store":  u.storeDriver,
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	for name, ping := range u.deps {
		if err := ping(ctx); err != nil {
			result[name] = "down"
			result["status"] = "degraded"
			continue
		}
		result[name] = "up"
	}
	return result
}
