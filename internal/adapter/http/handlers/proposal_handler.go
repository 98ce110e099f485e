package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	request "motofinance/internal/adapter/http/dto/request"
	response "motofinance/internal/adapter/http/dto/response"
	"motofinance/internal/adapter/http/middleware"
	"motofinance/internal/domain/entities"
	"motofinance/internal/domain/financing"
	"motofinance/internal/infrastructure/auth"
	"motofinance/internal/usecase"
	"motofinance/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

var (
	errInvalidProposalPayload = pkg.NewDomainErrorSimple("INVALID_PROPOSAL_INPUT", "Invalid proposal payload", http.StatusBadRequest)
	errInvalidRequest         = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errForbiddenProposal      = pkg.NewDomainErrorSimple("FORBIDDEN", "Proposal belongs to another store", http.StatusForbidden)
	errMissingClaims          = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
)

const (
	watchBuffer       = 16
	watchWriteTimeout = 5 * time.Second
)

// ProposalSubscriber is the part of the proposal watcher the websocket
// endpoint needs.
type ProposalSubscriber interface {
	SubscribeFrom(proposalID string, fromVersion int64, fn func(entities.Proposal)) (*usecase.Subscription, error)
}

// ProposalHandler serves the proposal lifecycle.
//
// Store users only see and touch proposals of their own store; admins act on
// any proposal.
type ProposalHandler struct {
	usecase usecase.IProposalUseCase
	watcher ProposalSubscriber
	logger  *zap.Logger
}

func NewProposalHandler(uc usecase.IProposalUseCase, watcher ProposalSubscriber, logger *zap.Logger) *ProposalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalHandler{usecase: uc, watcher: watcher, logger: logger.Named("proposal_handler")}
}

// CreateProposal godoc
// @Summary      Submit a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        request body request.CreateProposalRequest true "Proposal"
// @Success      201 {object} response.ProposalResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	var payload request.CreateProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	tokenStore := ""
	if claims.Role == entities.RoleStore {
		tokenStore = claims.StoreID
	}
	storeID := payload.ResolveStoreID(tokenStore)
	if storeID == "" {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	p, err := h.usecase.CreateProposal(c.Request.Context(), storeID, payload.Brand, payload.Model, payload.ProposedPrice)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(p))
}

// ListProposals filters by store_id or status. Store users are always pinned
// to their own store.
//
// @Summary      List proposals
// @Tags         proposals
// @Produce      json
// @Param        store_id query string false "Store id (admins only)"
// @Param        status   query string false "Proposal status"
// @Success      200 {array} response.ProposalResponse
// @Failure      400 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals [get]
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	storeID := strings.TrimSpace(c.Query("store_id"))
	status := entities.ProposalStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	if claims.Role == entities.RoleStore {
		storeID = claims.StoreID
	}

	var (
		list []entities.Proposal
		err  error
	)
	switch {
	case storeID != "":
		list, err = h.usecase.ListByStoreID(c.Request.Context(), storeID)
		if err == nil && status != "" {
			list = filterByStatus(list, status)
		}
	case status != "":
		list, err = h.usecase.ListByStatus(c.Request.Context(), status)
	default:
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposals(list))
}

// GetProposal godoc
// @Summary      Get a proposal
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.ProposalResponse
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id} [get]
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	p, ok := h.loadScoped(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

// GetFinancing godoc
// @Summary      Financing projection of a proposal
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.FinancingResponse
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/financing [get]
func (h *ProposalHandler) GetFinancing(c *gin.Context) {
	p, ok := h.loadScoped(c)
	if !ok {
		return
	}

	calc, err := h.usecase.GetFinancing(c.Request.Context(), p.ID)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCalculation(calc))
}

// GetOfficialProduct godoc
// @Summary      Official product created on approval
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.OfficialProductResponse
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/product [get]
func (h *ProposalHandler) GetOfficialProduct(c *gin.Context) {
	p, ok := h.loadScoped(c)
	if !ok {
		return
	}

	prod, err := h.usecase.GetOfficialProduct(c.Request.Context(), p.ID)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOfficialProduct(prod))
}

// StartReview godoc
// @Summary      Move a pending proposal under review
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.ProposalResponse
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/review [patch]
func (h *ProposalHandler) StartReview(c *gin.Context) {
	h.respondMutation(c, http.StatusOK, func(ctx context.Context, id string) (entities.Proposal, error) {
		return h.usecase.StartReview(ctx, id)
	})
}

// ApproveProposal godoc
// @Summary      Approve a proposal and publish its official product
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.ProposalResponse
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/approve [patch]
func (h *ProposalHandler) ApproveProposal(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	h.respondMutation(c, http.StatusOK, func(ctx context.Context, id string) (entities.Proposal, error) {
		return h.usecase.ApproveProposal(ctx, id, claims.UserID)
	})
}

// RejectProposal godoc
// @Summary      Reject a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Proposal id"
// @Param        request body request.RejectProposalRequest true "Reason"
// @Success      200 {object} response.ProposalResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/reject [patch]
func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	var payload request.RejectProposalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	h.respondMutation(c, http.StatusOK, func(ctx context.Context, id string) (entities.Proposal, error) {
		return h.usecase.RejectProposal(ctx, id, payload.Reason, claims.UserID)
	})
}

// UpdatePrice godoc
// @Summary      Revise the proposed price
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Proposal id"
// @Param        request body request.UpdatePriceRequest true "New price"
// @Success      200 {object} response.ProposalResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/price [patch]
func (h *ProposalHandler) UpdatePrice(c *gin.Context) {
	var payload request.UpdatePriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	p, ok := h.loadScoped(c)
	if !ok {
		return
	}

	updated, err := h.usecase.UpdateProposedPrice(c.Request.Context(), p.ID, payload.ProposedPrice)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(updated))
}

// AddNegotiation godoc
// @Summary      Append a negotiation message
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Proposal id"
// @Param        request body request.NegotiationRequest true "Message"
// @Success      201 {object} response.ProposalResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/negotiations [post]
func (h *ProposalHandler) AddNegotiation(c *gin.Context) {
	var payload request.NegotiationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}
	msg, err := payload.ResolveMessage()
	if err != nil {
		c.JSON(errInvalidProposalPayload.HTTPStatus, errInvalidProposalPayload.ToHTTPError())
		return
	}

	p, ok := h.loadScoped(c)
	if !ok {
		return
	}
	claims, _ := middleware.ClaimsFrom(c)
	author, ok := entities.NegotiationAuthorFor(claims.Role)
	if !ok {
		c.JSON(errForbiddenProposal.HTTPStatus, errForbiddenProposal.ToHTTPError())
		return
	}

	updated, err := h.usecase.AddNegotiationMessage(c.Request.Context(), p.ID, msg, author)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromProposal(updated))
}

// DeleteProposal godoc
// @Summary      Soft-delete an open proposal
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.ProposalResponse
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id} [delete]
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	h.respondMutation(c, http.StatusOK, func(ctx context.Context, id string) (entities.Proposal, error) {
		return h.usecase.DeleteProposal(ctx, id)
	})
}

// InvalidateFinancing godoc
// @Summary      Drop and recompute the cached financing of an open proposal
// @Tags         proposals
// @Produce      json
// @Param        id path string true "Proposal id"
// @Success      200 {object} response.ProposalResponse
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/financing [delete]
func (h *ProposalHandler) InvalidateFinancing(c *gin.Context) {
	h.respondMutation(c, http.StatusOK, func(ctx context.Context, id string) (entities.Proposal, error) {
		return h.usecase.InvalidateProposal(ctx, id)
	})
}

// WatchProposal upgrades to a websocket and pushes the proposal every time a
// new version is committed. The current state is sent first.
//
// @Summary      Stream proposal updates (websocket)
// @Tags         proposals
// @Param        id           path  string true  "Proposal id"
// @Param        access_token query string false "Bearer token for clients that cannot set headers"
// @Success      101
// @Failure      403 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /proposals/{id}/watch [get]
func (h *ProposalHandler) WatchProposal(c *gin.Context) {
	p, ok := h.loadScoped(c)
	if !ok {
		return
	}
	if h.watcher == nil {
		appErr := pkg.NewDomainErrorSimple("WATCH_UNAVAILABLE", "Proposal updates are not available", http.StatusServiceUnavailable)
		writeAppError(c, appErr)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", zap.String("proposal_id", p.ID), zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(conn.CloseRead(c.Request.Context()))
	defer cancel()

	updates := make(chan entities.Proposal, watchBuffer)
	sub, err := h.watcher.SubscribeFrom(p.ID, p.Version, func(next entities.Proposal) {
		select {
		case updates <- next:
		default:
			// Slow reader; drop the connection rather than block publishers.
			cancel()
		}
	})
	if err != nil {
		h.logger.Warn("proposal subscription failed", zap.String("proposal_id", p.ID), zap.Error(err))
		conn.Close(websocket.StatusInternalError, "subscription failed")
		return
	}
	defer sub.Stop()

	log := h.logger.With(zap.String("proposal_id", p.ID))

	// Commits between the scope check and Subscribe were published to nobody;
	// reload so the snapshot includes them.
	latest, err := h.usecase.GetByID(ctx, p.ID)
	switch {
	case err != nil:
		log.Warn("watch snapshot reload failed", zap.Error(err))
	case latest.Version > p.Version:
		p = latest
		sub.Seen(p.Version)
	}
	log.Debug("watch started", zap.Int64("version", p.Version))

	if err := writeProposal(ctx, conn, p); err != nil {
		return
	}
	if p.Status.Terminal() {
		conn.Close(websocket.StatusNormalClosure, string(p.Status))
		return
	}

	lastSent := p.Version
	for {
		select {
		case <-ctx.Done():
			log.Debug("watch ended", zap.Error(ctx.Err()))
			conn.Close(websocket.StatusGoingAway, "")
			return
		case next := <-updates:
			if next.Version <= lastSent {
				continue
			}
			if err := writeProposal(ctx, conn, next); err != nil {
				log.Debug("watch write failed", zap.Error(err))
				return
			}
			lastSent = next.Version
			if next.Status.Terminal() {
				conn.Close(websocket.StatusNormalClosure, string(next.Status))
				return
			}
		}
	}
}

func writeProposal(ctx context.Context, conn *websocket.Conn, p entities.Proposal) error {
	wctx, cancel := context.WithTimeout(ctx, watchWriteTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, response.FromProposal(p))
}

// respondMutation runs an id-addressed transition and writes the outcome.
func (h *ProposalHandler) respondMutation(
	c *gin.Context,
	status int,
	mutate func(ctx context.Context, id string) (entities.Proposal, error),
) {
	if _, ok := requireClaims(c); !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	p, err := mutate(c.Request.Context(), id)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return
	}
	c.JSON(status, response.FromProposal(p))
}

// loadScoped fetches the :id proposal and enforces store ownership.
func (h *ProposalHandler) loadScoped(c *gin.Context) (entities.Proposal, bool) {
	return loadScopedProposal(c, h.usecase)
}

func loadScopedProposal(c *gin.Context, uc usecase.IProposalUseCase) (entities.Proposal, bool) {
	claims, ok := requireClaims(c)
	if !ok {
		return entities.Proposal{}, false
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return entities.Proposal{}, false
	}

	p, err := uc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeAppError(c, mapProposalError(err))
		return entities.Proposal{}, false
	}
	if claims.Role == entities.RoleStore && p.StoreID != claims.StoreID {
		c.JSON(errForbiddenProposal.HTTPStatus, errForbiddenProposal.ToHTTPError())
		return entities.Proposal{}, false
	}
	return p, true
}

func filterByStatus(list []entities.Proposal, status entities.ProposalStatus) []entities.Proposal {
	out := make([]entities.Proposal, 0, len(list))
	for _, p := range list {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func mapProposalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, financing.ErrInvalidAmount), errors.Is(err, entities.ErrInvalidArgument),
		errors.Is(err, usecase.ErrInvalidProposalID), errors.Is(err, usecase.ErrInvalidStoreID),
		errors.Is(err, usecase.ErrInvalidProposalStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOfficialProductNotFound):
		return pkg.NewDomainErrorSimple("OFFICIAL_PRODUCT_NOT_FOUND", "Official product not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrIllegalTransition):
		return pkg.NewDomainError("ILLEGAL_TRANSITION", "Operation not allowed in the current proposal status", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrProposalConflict):
		return pkg.NewDomainError("PROPOSAL_CONFLICT", "Proposal was modified concurrently, reload and retry", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func requireClaims(c *gin.Context) (auth.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(errMissingClaims.HTTPStatus, errMissingClaims.ToHTTPError())
		return auth.Claims{}, false
	}
	return claims, true
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
