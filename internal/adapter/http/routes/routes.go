package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "motofinance/docs" // swagger spec registration
	"motofinance/internal/adapter/http/handlers"
	"motofinance/internal/adapter/http/middleware"
	"motofinance/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	Proposals    *handlers.ProposalHandler
	Financing    *handlers.FinancingHandler
	DownPayments *handlers.DownPaymentHandler
	Users        *handlers.UserHandler
}

// NewRouter mounts every public route. Everything under /v1 except ping
// requires a bearer token.
func NewRouter(logger *zap.Logger, verifier middleware.TokenVerifier, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	secured := v1.Group("", middleware.Auth(verifier))
	addFinancingRoutes(secured, h.Financing)
	addProposalRoutes(secured, h.Proposals, h.DownPayments)
	addUserRoutes(secured, h.Users)

	return router
}

// Run will start the server and block until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	app, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Start()

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("failed to startup the application", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
}
