package financing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Fortnights per year used to derive the periodic rate from the nominal annual rate.
const periodsPerYear = 24

var (
	DownPaymentPercentages = []int{15, 20, 25, 30}
	FortnightTerms         = []int{16, 20, 24}
)

// FeeSchedule holds the fixed charges added to every proposed price and the
// nominal annual rate applied to the financed amount.
type FeeSchedule struct {
	SoatFee       float64 `json:"soat_fee"`
	NotarialFee   float64 `json:"notarial_fee"`
	ProcessingFee float64 `json:"processing_fee"`
	AnnualRate    float64 `json:"annual_rate"`
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		SoatFee:       65,
		NotarialFee:   180,
		ProcessingFee: 120,
		AnnualRate:    0.42,
	}
}

func (f FeeSchedule) Validate() error {
	for _, v := range []float64{f.SoatFee, f.NotarialFee, f.ProcessingFee, f.AnnualRate} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid fee schedule %+v", f)
		}
	}
	return nil
}

// Fingerprint identifies a schedule in cache keys so entries computed under
// other fees never match.
func (f FeeSchedule) Fingerprint() string {
	return fmt.Sprintf("%s-%s-%s-%s",
		formatAmount(f.SoatFee), formatAmount(f.NotarialFee),
		formatAmount(f.ProcessingFee), formatAmount(f.AnnualRate))
}

// Plan is one installment option for a financed amount.
type Plan struct {
	NumberOfFortnights int     `json:"number_of_fortnights"`
	FortnightlyPayment float64 `json:"fortnightly_payment"`
	TotalInterest      float64 `json:"total_interest"`
	AnnualRate         float64 `json:"annual_rate"`
}

type DownPaymentOption struct {
	Percentage     int     `json:"percentage"`
	Amount         float64 `json:"amount"`
	FinancedAmount float64 `json:"financed_amount"`
	Plans          []Plan  `json:"plans"`
}

// Calculation is the derived financing projection of a base price. It is never
// the source of truth; callers recompute it whenever the price changes.
type Calculation struct {
	BasePrice          float64             `json:"base_price"`
	SoatFee            float64             `json:"soat_fee"`
	NotarialFee        float64             `json:"notarial_fee"`
	ProcessingFee      float64             `json:"processing_fee"`
	TotalPrice         float64             `json:"total_price"`
	DownPaymentOptions []DownPaymentOption `json:"down_payment_options"`
}

// Option returns the down payment tier for the given percentage.
func (c Calculation) Option(percentage int) (DownPaymentOption, bool) {
	for _, o := range c.DownPaymentOptions {
		if o.Percentage == percentage {
			return o, true
		}
	}
	return DownPaymentOption{}, false
}

// ComputedWith reports whether c was computed for price under fees.
func (c Calculation) ComputedWith(price float64, fees FeeSchedule) bool {
	if c.BasePrice != price || c.SoatFee != fees.SoatFee ||
		c.NotarialFee != fees.NotarialFee || c.ProcessingFee != fees.ProcessingFee {
		return false
	}
	for _, o := range c.DownPaymentOptions {
		for _, plan := range o.Plans {
			if plan.AnnualRate != fees.AnnualRate {
				return false
			}
		}
	}
	return true
}

// Calculator is stateless; a single value may be shared by any number of goroutines.
type Calculator struct {
	fees FeeSchedule
}

func NewCalculator(fees FeeSchedule) (Calculator, error) {
	if err := fees.Validate(); err != nil {
		return Calculator{}, err
	}
	return Calculator{fees: fees}, nil
}

func (c Calculator) Fees() FeeSchedule {
	return c.fees
}

// FortnightlyRate converts the nominal annual rate into the compounded rate per fortnight.
func (c Calculator) FortnightlyRate() float64 {
	return math.Pow(1+c.fees.AnnualRate, 1.0/periodsPerYear) - 1
}

func (c Calculator) Compute(proposedPrice float64) (Calculation, error) {
	if math.IsNaN(proposedPrice) || math.IsInf(proposedPrice, 0) || proposedPrice <= 0 {
		return Calculation{}, fmt.Errorf("%w: %v", ErrInvalidAmount, proposedPrice)
	}

	total := decimal.NewFromFloat(proposedPrice).
		Add(decimal.NewFromFloat(c.fees.SoatFee)).
		Add(decimal.NewFromFloat(c.fees.NotarialFee)).
		Add(decimal.NewFromFloat(c.fees.ProcessingFee))

	rate := c.FortnightlyRate()
	options := make([]DownPaymentOption, 0, len(DownPaymentPercentages))
	for _, pct := range DownPaymentPercentages {
		amount := total.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(0)
		financed := total.Sub(amount)

		principal := financed.InexactFloat64()
		plans := make([]Plan, 0, len(FortnightTerms))
		for _, n := range FortnightTerms {
			payment := roundHalfUp(amortizedPayment(principal, rate, n))
			interest := decimal.NewFromFloat(payment).Mul(decimal.NewFromInt(int64(n))).Floor().Sub(financed)
			plans = append(plans, Plan{
				NumberOfFortnights: n,
				FortnightlyPayment: payment,
				TotalInterest:      interest.InexactFloat64(),
				AnnualRate:         c.fees.AnnualRate,
			})
		}

		options = append(options, DownPaymentOption{
			Percentage:     pct,
			Amount:         amount.InexactFloat64(),
			FinancedAmount: principal,
			Plans:          plans,
		})
	}

	return Calculation{
		BasePrice:          proposedPrice,
		SoatFee:            c.fees.SoatFee,
		NotarialFee:        c.fees.NotarialFee,
		ProcessingFee:      c.fees.ProcessingFee,
		TotalPrice:         total.InexactFloat64(),
		DownPaymentOptions: options,
	}, nil
}

// amortizedPayment is the level payment that repays principal over n periods at rate r.
func amortizedPayment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	growth := math.Pow(1+r, float64(n))
	return principal * r * growth / (growth - 1)
}

// roundHalfUp rounds half away from zero; decimal.Round never uses banker's rounding.
func roundHalfUp(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}
