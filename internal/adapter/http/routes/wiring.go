package routes

import (
	"context"
	"errors"
	"fmt"

	"motofinance/internal/adapter/http/handlers"
	"motofinance/internal/adapter/persistence/repository"
	"motofinance/internal/domain/financing"
	"motofinance/internal/infrastructure/auth"
	"motofinance/internal/infrastructure/cache"
	"motofinance/internal/infrastructure/config"
	"motofinance/internal/infrastructure/database"
	"motofinance/internal/infrastructure/payments"
	"motofinance/internal/infrastructure/scheduler"
	"motofinance/internal/usecase"
	"motofinance/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const watcherJobName = "proposal-watcher-poll"

// App is the wired service: router plus the background pieces that must be
// started and stopped with it.
type App struct {
	Router  *gin.Engine
	Watcher *usecase.ProposalWatcher

	runner  *scheduler.Runner
	closers []func() error
	logger  *zap.Logger
}

type repositories struct {
	proposals    interfaces.IProposalRepository
	downPayments interfaces.IDownPaymentRepository
	users        interfaces.IUserRepository
}

func build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	app := &App{logger: logger}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := buildCache(ctx, cfg.Cache, app)
	if err != nil {
		return nil, err
	}

	calc, err := financing.NewCalculator(cfg.Financing.FeeSchedule())
	if err != nil {
		return nil, fmt.Errorf("financing config: %w", err)
	}
	logger.Info("financing calculator ready",
		zap.String("fees", cfg.Financing.FeeSchedule().Fingerprint()),
		zap.Float64("fortnightly_rate", calc.FortnightlyRate()),
	)

	financingUseCase := usecase.NewFinancingUseCase(calc, store, cfg.Cache.TTL, logger)
	app.Watcher = usecase.NewProposalWatcher(repos.proposals, logger)
	proposalUseCase := usecase.NewProposalUseCase(repos.proposals, financingUseCase, app.Watcher, logger)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, cfg.Payments.Mock, logger)
	if err != nil {
		logger.Warn("mercado pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mpGateway
	}
	downPaymentUseCase := usecase.NewDownPaymentUseCase(repos.downPayments, repos.proposals, financingUseCase, paymentGateway, logger)
	userUseCase := usecase.NewUserUseCase(repos.users)

	if cfg.Watcher.Enabled {
		app.runner = scheduler.New(ctx, logger)
		if _, err := app.runner.Add(watcherJobName, cfg.Watcher.PollSpec, app.Watcher.Poll); err != nil {
			return nil, fmt.Errorf("watcher poll spec %q: %w", cfg.Watcher.PollSpec, err)
		}
	}

	verifier := auth.JWT{Secret: []byte(cfg.Auth.JWTSecret), TokenTTL: cfg.Auth.TokenTTL}
	app.Router = NewRouter(logger, verifier, Handlers{
		Proposals:    handlers.NewProposalHandler(proposalUseCase, app.Watcher, logger),
		Financing:    handlers.NewFinancingHandler(financingUseCase),
		DownPayments: handlers.NewDownPaymentHandler(downPaymentUseCase, proposalUseCase, logger),
		Users:        handlers.NewUserHandler(userUseCase),
	})
	return app, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			proposals:    repository.NewProposalMemoryRepository(),
			downPayments: repository.NewDownPaymentMemoryRepository(),
			users:        repository.NewUserMemoryRepository(),
		}, nil
	case config.StorageDriverDynamoDB, "":
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return repositories{}, fmt.Errorf("dynamodb: %w", err)
		}
		logger.Info("dynamodb client ready", zap.String("region", cfg.DynamoDB.Region), zap.String("endpoint", cfg.DynamoDB.Endpoint))
		return repositories{
			proposals:    repository.NewProposalDynamoRepository(ddb, cfg.DynamoDB.ProposalsTable, cfg.DynamoDB.ProductsTable),
			downPayments: repository.NewDownPaymentDynamoRepository(ddb, cfg.DynamoDB.DownPaymentsTable),
			users:        repository.NewUserDynamoRepository(ddb, cfg.DynamoDB.UsersTablePrefix),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func buildCache(ctx context.Context, cfg config.CacheConfig, app *App) (interfaces.ICacheStore, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis:
		store, err := cache.NewRedisStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		app.closers = append(app.closers, store.Close)
		return store, nil
	case config.CacheDriverMemory, "":
		return cache.NewMemoryStore(cfg.MaxEntries, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// Start launches the background poll loop, if configured.
func (a *App) Start() {
	if a.runner != nil {
		a.runner.Start()
	}
}

func (a *App) Close() {
	if a.runner != nil {
		a.runner.Stop()
	}
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
}
