package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"motofinance/internal/domain/financing"
	mock_interfaces "motofinance/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newTestCalculator(t *testing.T) financing.Calculator {
	t.Helper()
	calc, err := financing.NewCalculator(financing.DefaultFeeSchedule())
	if err != nil {
		t.Fatalf("unexpected calculator error: %v", err)
	}
	return calc
}

func TestFinancingUseCase_ComputeFinancing_InvalidPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	for _, price := range []float64{0, -1} {
		_, err := uc.ComputeFinancing(context.Background(), price)
		if !errors.Is(err, financing.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %v, got %v", price, err)
		}
	}
}

func TestFinancingUseCase_ComputeFinancing_CacheMissStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	var storedKey string
	var stored []byte
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).
		DoAndReturn(func(_ context.Context, key string, value []byte, _ time.Duration) error {
			storedKey = key
			stored = value
			return nil
		})

	got, err := uc.ComputeFinancing(context.Background(), 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalPrice != 4865 {
		t.Fatalf("expected total 4865, got %v", got.TotalPrice)
	}
	if !strings.HasPrefix(storedKey, "financing:") || !strings.HasSuffix(storedKey, ":4500") {
		t.Fatalf("unexpected cache key %q", storedKey)
	}

	var decoded financing.Calculation
	if err := json.Unmarshal(stored, &decoded); err != nil {
		t.Fatalf("cached value is not json: %v", err)
	}
	if decoded.TotalPrice != got.TotalPrice || len(decoded.DownPaymentOptions) != 4 {
		t.Fatalf("cached value differs from result: %+v", decoded)
	}
}

func TestFinancingUseCase_ComputeFinancing_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	cached := financing.Calculation{BasePrice: 4500, TotalPrice: 1}
	raw, _ := json.Marshal(cached)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(raw, true, nil)

	got, err := uc.ComputeFinancing(context.Background(), 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalPrice != 1 {
		t.Fatalf("expected cached value, got %+v", got)
	}
}

func TestFinancingUseCase_ComputeFinancing_CacheFailuresAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := uc.ComputeFinancing(context.Background(), 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalPrice != 4865 {
		t.Fatalf("expected computed value, got %+v", got)
	}
}

func TestFinancingUseCase_ComputeFinancing_CorruptEntryRecomputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{"), true, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	got, err := uc.ComputeFinancing(context.Background(), 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BasePrice != 4500 {
		t.Fatalf("expected recomputed value, got %+v", got)
	}
}

func TestFinancingUseCase_NilCache(t *testing.T) {
	uc := NewFinancingUseCase(newTestCalculator(t), nil, 0, nil)

	got, err := uc.ComputeFinancing(context.Background(), 4500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opt, ok := got.Option(15)
	if !ok || opt.Amount != 730 {
		t.Fatalf("expected 15%% tier amount 730, got %+v", opt)
	}
	if err := uc.Invalidate(context.Background(), 4500); err != nil {
		t.Fatalf("expected nil invalidate error, got %v", err)
	}
	if uc.FeeSchedule() != financing.DefaultFeeSchedule() {
		t.Fatalf("unexpected fee schedule %+v", uc.FeeSchedule())
	}
}

func TestFinancingUseCase_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_interfaces.NewMockICacheStore(ctrl)
	uc := NewFinancingUseCase(newTestCalculator(t), cache, time.Minute, nil)

	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			if !strings.HasSuffix(key, ":4500") {
				t.Fatalf("unexpected key %q", key)
			}
			return nil
		})

	if err := uc.Invalidate(context.Background(), 4500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
