package handlers

import (
	"errors"
	"net/http"
	"testing"

	"motofinance/internal/adapter/http/handlers/mocks"
	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestUserHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		user entities.User
		err  error
		want int
	}{
		{name: "success", user: entities.User{ID: "u-store", Name: "Loja Centro", Active: true, Profile: entities.StoreProfile{StoreID: "store-1", StoreName: "Centro"}}, want: http.StatusOK},
		{name: "not found", err: usecase.ErrUserNotFound, want: http.StatusNotFound},
		{name: "inactive", err: usecase.ErrUserInactive, want: http.StatusForbidden},
		{name: "invalid role", err: usecase.ErrInvalidRole, want: http.StatusBadRequest},
		{name: "db failure", err: errors.New("db"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIUserUseCase(ctrl)
			h := NewUserHandler(uc)
			r := gin.New()
			r.GET("/v1/users/me", asCaller(storeClaims), h.Me)

			uc.EXPECT().GetProfile(gomock.Any(), entities.RoleStore, "u-store").Return(tc.user, tc.err)

			w := serve(r, http.MethodGet, "/v1/users/me", "")
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.want == http.StatusOK {
				body := decodeBody(t, w)
				profile, _ := body["profile"].(map[string]any)
				if body["role"] != "store" || profile["store_id"] != "store-1" {
					t.Fatalf("unexpected response body: %s", w.Body.String())
				}
			}
		})
	}

	t.Run("no claims", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewUserHandler(mocks.NewMockIUserUseCase(ctrl))
		r := gin.New()
		r.GET("/v1/users/me", h.Me)

		w := serve(r, http.MethodGet, "/v1/users/me", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
