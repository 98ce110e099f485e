package response

import "motofinance/internal/domain/financing"

type PlanResponse struct {
	NumberOfFortnights int     `json:"number_of_fortnights"`
	FortnightlyPayment float64 `json:"fortnightly_payment"`
	TotalInterest      float64 `json:"total_interest"`
	AnnualRate         float64 `json:"annual_rate"`
}

type DownPaymentOptionResponse struct {
	Percentage     int            `json:"percentage"`
	Amount         float64        `json:"amount"`
	FinancedAmount float64        `json:"financed_amount"`
	Plans          []PlanResponse `json:"plans"`
}

type FinancingResponse struct {
	BasePrice          float64                     `json:"base_price"`
	SoatFee            float64                     `json:"soat_fee"`
	NotarialFee        float64                     `json:"notarial_fee"`
	ProcessingFee      float64                     `json:"processing_fee"`
	TotalPrice         float64                     `json:"total_price"`
	DownPaymentOptions []DownPaymentOptionResponse `json:"down_payment_options"`
}

func FromCalculation(c financing.Calculation) FinancingResponse {
	res := FinancingResponse{
		BasePrice:          c.BasePrice,
		SoatFee:            c.SoatFee,
		NotarialFee:        c.NotarialFee,
		ProcessingFee:      c.ProcessingFee,
		TotalPrice:         c.TotalPrice,
		DownPaymentOptions: make([]DownPaymentOptionResponse, 0, len(c.DownPaymentOptions)),
	}
	for _, o := range c.DownPaymentOptions {
		opt := DownPaymentOptionResponse{
			Percentage:     o.Percentage,
			Amount:         o.Amount,
			FinancedAmount: o.FinancedAmount,
			Plans:          make([]PlanResponse, 0, len(o.Plans)),
		}
		for _, pl := range o.Plans {
			opt.Plans = append(opt.Plans, PlanResponse{
				NumberOfFortnights: pl.NumberOfFortnights,
				FortnightlyPayment: pl.FortnightlyPayment,
				TotalInterest:      pl.TotalInterest,
				AnnualRate:         pl.AnnualRate,
			})
		}
		res.DownPaymentOptions = append(res.DownPaymentOptions, opt)
	}
	return res
}
