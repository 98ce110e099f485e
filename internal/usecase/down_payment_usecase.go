package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"motofinance/internal/domain/entities"
	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrDownPaymentNotFound            = errors.New("down payment not found")
	ErrInvalidDownPaymentID           = errors.New("invalid down payment id")
	ErrInvalidDownPaymentTier         = errors.New("invalid down payment percentage")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrProposalNotApproved            = errors.New("proposal not approved")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IDownPaymentUseCase charges the client's down payment for an approved proposal.
//
// The charged amount always comes from the proposal's financing projection for
// the chosen tier, never from the client payload.
type IDownPaymentUseCase interface {
	ChargeDownPayment(ctx context.Context, proposalID string, percentage int, mpPayload json.RawMessage) (entities.DownPayment, error)
	GetByID(ctx context.Context, id string) (entities.DownPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.DownPayment, error)
}

type DownPaymentUseCase struct {
	repo         interfaces.IDownPaymentRepository
	proposalRepo interfaces.IProposalRepository
	financing    IFinancingUseCase
	gateway      interfaces.IPaymentGateway
	logger       *zap.Logger
}

var _ IDownPaymentUseCase = (*DownPaymentUseCase)(nil)

func NewDownPaymentUseCase(
	repo interfaces.IDownPaymentRepository,
	proposalRepo interfaces.IProposalRepository,
	fin IFinancingUseCase,
	gateway interfaces.IPaymentGateway,
	logger *zap.Logger,
) *DownPaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownPaymentUseCase{repo: repo, proposalRepo: proposalRepo, financing: fin, gateway: gateway, logger: logger}
}

func (u *DownPaymentUseCase) ChargeDownPayment(ctx context.Context, proposalID string, percentage int, mpPayload json.RawMessage) (entities.DownPayment, error) {
	proposalID = strings.TrimSpace(proposalID)
	log := u.logger.With(zap.String("proposal_id", proposalID), zap.Int("percentage", percentage))
	log.Info("down payment charge start", zap.Int("payload_len", len(mpPayload)))

	if proposalID == "" {
		return entities.DownPayment{}, ErrInvalidProposalID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		return entities.DownPayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		return entities.DownPayment{}, ErrPaymentGatewayNotConfigured
	}

	p, err := u.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		log.Error("failed loading proposal", zap.Error(err))
		return entities.DownPayment{}, err
	}
	if p.ID == "" {
		return entities.DownPayment{}, ErrProposalNotFound
	}
	if p.Status != entities.ProposalStatusApproved {
		log.Info("proposal not approved", zap.String("status", string(p.Status)))
		return entities.DownPayment{}, ErrProposalNotApproved
	}

	calc := p.Calculations
	if calc == nil || calc.BasePrice != p.ProposedPrice {
		fresh, err := u.financing.ComputeFinancing(ctx, p.ProposedPrice)
		if err != nil {
			return entities.DownPayment{}, err
		}
		calc = &fresh
	}
	tier, ok := calc.Option(percentage)
	if !ok {
		return entities.DownPayment{}, fmt.Errorf("%w: %d", ErrInvalidDownPaymentTier, percentage)
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.DownPayment{}, ErrInvalidMPPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Info("missing payment_method_id")
		return entities.DownPayment{}, ErrInvalidMPPayload
	}
	if !hasPayer(reqMap) {
		log.Info("missing or invalid payer")
		return entities.DownPayment{}, ErrInvalidMPPayload
	}
	enrichPayload(reqMap, p, tier)
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.DownPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.Warn("payment gateway failed", zap.Error(err))
		return entities.DownPayment{}, classifyGatewayError(err)
	}
	log.Info("payment gateway success", zap.String("provider_payment_id", providerPaymentID), zap.String("provider_status", providerStatus))

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("provider response unmarshal failed", zap.Error(err))
	}

	dp := entities.DownPayment{
		ID:           providerPaymentID,
		ProposalID:   p.ID,
		Percentage:   tier.Percentage,
		Amount:       tier.Amount,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, dp)
	if err != nil {
		log.Error("down payment repository create failed", zap.String("payment_id", dp.ID), zap.Error(err))
		return entities.DownPayment{}, err
	}
	log.Info("down payment charge success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *DownPaymentUseCase) GetByID(ctx context.Context, id string) (entities.DownPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.DownPayment{}, ErrInvalidDownPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.DownPayment{}, err
	}
	if p.ID == "" {
		return entities.DownPayment{}, ErrDownPaymentNotFound
	}
	return p, nil
}

func (u *DownPaymentUseCase) ListByProposalID(ctx context.Context, proposalID string) ([]entities.DownPayment, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, ErrInvalidProposalID
	}
	return u.repo.ListByProposalID(ctx, proposalID)
}

// enrichPayload links the charge to the proposal and pins the amount.
func enrichPayload(m map[string]any, p entities.Proposal, tier financing.DownPaymentOption) {
	if _, ok := m["external_reference"]; !ok {
		m["external_reference"] = p.ID
	}
	if _, ok := m["description"]; !ok {
		m["description"] = fmt.Sprintf("Down payment %d%% %s %s", tier.Percentage, p.Brand, p.Model)
	}
	if _, ok := m["installments"]; !ok {
		m["installments"] = 1
	}
	m["transaction_amount"] = tier.Amount

	payer, ok := m["payer"].(map[string]any)
	if ok {
		if _, ok := payer["type"]; !ok {
			payer["type"] = "customer"
		}
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
