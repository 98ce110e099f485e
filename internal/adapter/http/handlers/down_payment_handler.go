package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "motofinance/internal/adapter/http/dto/request"
	response "motofinance/internal/adapter/http/dto/response"
	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase"
	"motofinance/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidDownPaymentPayload = pkg.NewDomainErrorSimple("INVALID_DOWN_PAYMENT_INPUT", "Invalid down payment payload", http.StatusBadRequest)

// DownPaymentHandler charges and lists the client's down payments on approved
// proposals.
type DownPaymentHandler struct {
	usecase   usecase.IDownPaymentUseCase
	proposals usecase.IProposalUseCase
	logger    *zap.Logger
}

func NewDownPaymentHandler(uc usecase.IDownPaymentUseCase, proposals usecase.IProposalUseCase, logger *zap.Logger) *DownPaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownPaymentHandler{usecase: uc, proposals: proposals, logger: logger.Named("down_payment_handler")}
}

// ChargeDownPayment charges the tier given by percentage for proposal :id.
//
// @Summary      Charge a down payment
// @Tags         down-payments
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Proposal id"
// @Param        request body request.DownPaymentRequest true "Tier and Mercado Pago payload"
// @Success      201 {object} response.DownPaymentResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/down-payments [post]
func (h *DownPaymentHandler) ChargeDownPayment(c *gin.Context) {
	var payload request.DownPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidDownPaymentPayload.HTTPStatus, errInvalidDownPaymentPayload.ToHTTPError())
		return
	}

	p, ok := loadScopedProposal(c, h.proposals)
	if !ok {
		return
	}
	log := h.logger.With(zap.String("proposal_id", p.ID), zap.Int("percentage", payload.Percentage))

	created, err := h.usecase.ChargeDownPayment(c.Request.Context(), p.ID, payload.Percentage, payload.MPPayload)
	if err != nil {
		log.Warn("down payment charge failed", zap.Error(err))
		writeAppError(c, mapDownPaymentError(err))
		return
	}
	log.Info("down payment charged", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusCreated, response.FromDownPayment(created))
}

// ListDownPayments godoc
// @Summary      List down payments of a proposal
// @Tags         down-payments
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {array} response.DownPaymentResponse
// @Security     Bearer
// @Router       /proposals/{id}/down-payments [get]
func (h *DownPaymentHandler) ListDownPayments(c *gin.Context) {
	p, ok := loadScopedProposal(c, h.proposals)
	if !ok {
		return
	}

	list, err := h.usecase.ListByProposalID(c.Request.Context(), p.ID)
	if err != nil {
		writeAppError(c, mapDownPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDownPayments(list))
}

// GetDownPayment godoc
// @Summary      Get a down payment
// @Tags         down-payments
// @Produce      json
// @Param        payment_id path string true "Payment id"
// @Success      200 {object} response.DownPaymentResponse
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /down-payments/{payment_id} [get]
func (h *DownPaymentHandler) GetDownPayment(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	dp, err := h.usecase.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("payment_id")))
	if err != nil {
		writeAppError(c, mapDownPaymentError(err))
		return
	}

	if claims.Role == entities.RoleStore {
		p, err := h.proposals.GetByID(c.Request.Context(), dp.ProposalID)
		if err != nil {
			writeAppError(c, mapDownPaymentError(err))
			return
		}
		if p.StoreID != claims.StoreID {
			c.JSON(errForbiddenProposal.HTTPStatus, errForbiddenProposal.ToHTTPError())
			return
		}
	}

	c.JSON(http.StatusOK, response.FromDownPayment(dp))
}

func mapDownPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProposalID), errors.Is(err, usecase.ErrInvalidDownPaymentID),
		errors.Is(err, usecase.ErrInvalidDownPaymentTier), errors.Is(err, usecase.ErrInvalidMPPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotApproved):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_APPROVED", "Proposal not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrDownPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
