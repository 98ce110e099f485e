package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const financingCachePrefix = "financing"

// IFinancingUseCase serves financing projections.
//
// Projections are pure functions of (price, fee schedule), so the cache only
// saves CPU. Invalidate is the explicit eviction entry point for a price.
type IFinancingUseCase interface {
	ComputeFinancing(ctx context.Context, price float64) (financing.Calculation, error)
	Invalidate(ctx context.Context, price float64) error
	FeeSchedule() financing.FeeSchedule
}

type FinancingUseCase struct {
	calc   financing.Calculator
	cache  interfaces.ICacheStore
	ttl    time.Duration
	logger *zap.Logger
}

var _ IFinancingUseCase = (*FinancingUseCase)(nil)

// NewFinancingUseCase accepts a nil cache, in which case every call computes.
func NewFinancingUseCase(calc financing.Calculator, cache interfaces.ICacheStore, ttl time.Duration, logger *zap.Logger) *FinancingUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinancingUseCase{calc: calc, cache: cache, ttl: ttl, logger: logger}
}

func (u *FinancingUseCase) FeeSchedule() financing.FeeSchedule {
	return u.calc.Fees()
}

func (u *FinancingUseCase) ComputeFinancing(ctx context.Context, price float64) (financing.Calculation, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return financing.Calculation{}, fmt.Errorf("%w: %v", financing.ErrInvalidAmount, price)
	}

	key := u.cacheKey(price)
	if u.cache != nil {
		raw, found, err := u.cache.Get(ctx, key)
		switch {
		case err != nil:
			u.logger.Warn("financing cache read failed", zap.String("key", key), zap.Error(err))
		case found:
			var cached financing.Calculation
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			u.logger.Warn("financing cache entry corrupt", zap.String("key", key))
		}
	}

	calc, err := u.calc.Compute(price)
	if err != nil {
		return financing.Calculation{}, err
	}

	if u.cache != nil {
		raw, err := json.Marshal(calc)
		if err == nil {
			err = u.cache.Set(ctx, key, raw, u.ttl)
		}
		if err != nil {
			u.logger.Warn("financing cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return calc, nil
}

func (u *FinancingUseCase) Invalidate(ctx context.Context, price float64) error {
	if u.cache == nil {
		return nil
	}
	return u.cache.Delete(ctx, u.cacheKey(price))
}

func (u *FinancingUseCase) cacheKey(price float64) string {
	return financingCachePrefix + ":" + u.calc.Fees().Fingerprint() + ":" + strconv.FormatFloat(price, 'f', -1, 64)
}
