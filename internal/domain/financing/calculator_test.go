package financing

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultFeeSchedule())
	require.NoError(t, err)
	return calc
}

func TestCalculator_Compute_ReferencePrice(t *testing.T) {
	calc := newTestCalculator(t)

	res, err := calc.Compute(4500)
	require.NoError(t, err)

	assert.Equal(t, 4500.0, res.BasePrice)
	assert.Equal(t, 4865.0, res.TotalPrice)
	require.Len(t, res.DownPaymentOptions, 4)

	tier, ok := res.Option(20)
	require.True(t, ok)
	assert.Equal(t, 973.0, tier.Amount)
	assert.Equal(t, 3892.0, tier.FinancedAmount)

	require.Len(t, tier.Plans, 3)
	assert.Equal(t, Plan{NumberOfFortnights: 16, FortnightlyPayment: 275, TotalInterest: 508, AnnualRate: 0.42}, tier.Plans[0])
	assert.Equal(t, Plan{NumberOfFortnights: 20, FortnightlyPayment: 226, TotalInterest: 628, AnnualRate: 0.42}, tier.Plans[1])
	assert.Equal(t, Plan{NumberOfFortnights: 24, FortnightlyPayment: 194, TotalInterest: 764, AnnualRate: 0.42}, tier.Plans[2])
}

func TestCalculator_Compute_RoundsTiersHalfUp(t *testing.T) {
	calc := newTestCalculator(t)

	res, err := calc.Compute(4500)
	require.NoError(t, err)

	// 4865 * 15% = 729.75, 25% = 1216.25, 30% = 1459.5
	expected := map[int][2]float64{
		15: {730, 4135},
		20: {973, 3892},
		25: {1216, 3649},
		30: {1460, 3405},
	}
	for i, pct := range DownPaymentPercentages {
		o := res.DownPaymentOptions[i]
		assert.Equal(t, pct, o.Percentage)
		assert.Equal(t, expected[pct][0], o.Amount, "amount for %d%%", pct)
		assert.Equal(t, expected[pct][1], o.FinancedAmount, "financed for %d%%", pct)
	}

	last := res.DownPaymentOptions[3].Plans[2]
	assert.Equal(t, 169.0, last.FortnightlyPayment)
	assert.Equal(t, 651.0, last.TotalInterest)
}

func TestCalculator_FortnightlyRate(t *testing.T) {
	calc := newTestCalculator(t)
	assert.InDelta(t, math.Pow(1.42, 1.0/24)-1, calc.FortnightlyRate(), 1e-12)
	assert.InDelta(t, 0.014776, calc.FortnightlyRate(), 1e-4)
}

func TestCalculator_Compute_TotalIsPricePlusFees(t *testing.T) {
	calc := newTestCalculator(t)
	fees := calc.Fees()

	for _, price := range []float64{1, 99.5, 4500, 12999, 250000} {
		res, err := calc.Compute(price)
		require.NoError(t, err)
		assert.InDelta(t, price+fees.SoatFee+fees.NotarialFee+fees.ProcessingFee, res.TotalPrice, 1e-9)
	}
}

func TestCalculator_Compute_InvalidAmount(t *testing.T) {
	calc := newTestCalculator(t)

	for _, price := range []float64{0, -1, -4500, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := calc.Compute(price)
		assert.ErrorIs(t, err, ErrInvalidAmount, "price %v", price)
	}
}

func TestCalculator_Compute_Idempotent(t *testing.T) {
	calc := newTestCalculator(t)

	first, err := calc.Compute(7300)
	require.NoError(t, err)
	second, err := calc.Compute(7300)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// mutating one result must not leak into the next
	first.DownPaymentOptions[0].Plans[0].FortnightlyPayment = -1
	third, err := calc.Compute(7300)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestCalculator_Compute_Concurrent(t *testing.T) {
	calc := newTestCalculator(t)
	want, err := calc.Compute(4500)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Calculation, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = calc.Compute(4500)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestCalculator_ZeroRate(t *testing.T) {
	calc, err := NewCalculator(FeeSchedule{})
	require.NoError(t, err)

	res, err := calc.Compute(1600)
	require.NoError(t, err)

	tier, ok := res.Option(25)
	require.True(t, ok)
	assert.Equal(t, 400.0, tier.Amount)
	assert.Equal(t, 1200.0, tier.FinancedAmount)
	assert.Equal(t, 75.0, tier.Plans[0].FortnightlyPayment)
	assert.Equal(t, 0.0, tier.Plans[0].TotalInterest)
}

func TestNewCalculator_RejectsNegativeFees(t *testing.T) {
	_, err := NewCalculator(FeeSchedule{SoatFee: -1})
	assert.Error(t, err)

	_, err = NewCalculator(FeeSchedule{AnnualRate: math.NaN()})
	assert.Error(t, err)
}

func TestFeeSchedule_Fingerprint(t *testing.T) {
	a := DefaultFeeSchedule()
	b := DefaultFeeSchedule()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.AnnualRate = 0.38
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestCalculation_ComputedWith(t *testing.T) {
	fees := DefaultFeeSchedule()
	c, err := newTestCalculator(t).Compute(4500)
	require.NoError(t, err)

	assert.True(t, c.ComputedWith(4500, fees))
	assert.False(t, c.ComputedWith(4300, fees))

	otherRate := fees
	otherRate.AnnualRate = 0.38
	assert.False(t, c.ComputedWith(4500, otherRate))

	otherFee := fees
	otherFee.NotarialFee = 200
	assert.False(t, c.ComputedWith(4500, otherFee))
}
