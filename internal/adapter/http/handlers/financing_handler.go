package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	response "motofinance/internal/adapter/http/dto/response"
	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase"
	"motofinance/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPrice = pkg.NewDomainErrorSimple("INVALID_PRICE", "price must be a positive number", http.StatusBadRequest)

// FinancingHandler exposes the financing calculator to any authenticated role.
type FinancingHandler struct {
	usecase usecase.IFinancingUseCase
}

func NewFinancingHandler(uc usecase.IFinancingUseCase) *FinancingHandler {
	return &FinancingHandler{usecase: uc}
}

// ComputeFinancing godoc
// @Summary      Financing projection for a price
// @Tags         financing
// @Produce      json
// @Param        price query number true "Proposed price"
// @Success      200 {object} response.FinancingResponse
// @Failure      400 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /financing [get]
func (h *FinancingHandler) ComputeFinancing(c *gin.Context) {
	price, err := strconv.ParseFloat(strings.TrimSpace(c.Query("price")), 64)
	if err != nil {
		c.JSON(errInvalidPrice.HTTPStatus, errInvalidPrice.ToHTTPError())
		return
	}

	calc, err := h.usecase.ComputeFinancing(c.Request.Context(), price)
	if err != nil {
		writeAppError(c, mapFinancingError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCalculation(calc))
}

// FeeSchedule returns the fees and rate the calculator is configured with.
//
// @Summary      Configured fees and annual rate
// @Tags         financing
// @Produce      json
// @Success      200 {object} financing.FeeSchedule
// @Security     Bearer
// @Router       /financing/fees [get]
func (h *FinancingHandler) FeeSchedule(c *gin.Context) {
	c.JSON(http.StatusOK, h.usecase.FeeSchedule())
}

func mapFinancingError(err error) *pkg.AppError {
	if errors.Is(err, financing.ErrInvalidAmount) {
		return errInvalidPrice
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
