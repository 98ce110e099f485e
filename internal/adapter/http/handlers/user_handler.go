package handlers

import (
	"errors"
	"net/http"

	response "motofinance/internal/adapter/http/dto/response"
	"motofinance/internal/usecase"
	"motofinance/pkg"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

// Me returns the caller's profile from the table of the role in its token.
//
// @Summary      Caller profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.UserProfileResponse
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	u, err := h.usecase.GetProfile(c.Request.Context(), claims.Role, claims.UserID)
	if err != nil {
		writeAppError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(u))
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRole), errors.Is(err, usecase.ErrInvalidUser):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUserInactive):
		return pkg.NewDomainErrorSimple("USER_INACTIVE", "User is inactive", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
