package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/core/port"
	"github.com/articlepost/account-service/internal/infra/config"
	"github.com/articlepost/account-service/internal/infra/database"
	kafkainfra "github.com/articlepost/account-service/internal/infra/kafka"
	"github.com/articlepost/account-service/internal/infra/logger"
	"github.com/articlepost/account-service/internal/infra/mail"
	"github.com/articlepost/account-service/internal/infra/security"
	"github.com/articlepost/account-service/internal/infra/storage"
	mongorepo "github.com/articlepost/account-service/internal/repository/mongo"
	"github.com/articlepost/account-service/internal/transport/http/middleware"
	"github.com/articlepost/account-service/internal/transport/http/routes"
	"github.com/articlepost/account-service/internal/usecase"
)

type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	mongo    *mongo.Database
	producer *kafkainfra.Producer
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewMongoDatabase(ctx, cfg.Mongo, log)
	if err != nil {
		return nil, fmt.Errorf("init mongo: %w", err)
	}

	accounts := mongorepo.NewAccountRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure account indexes: %w", err)
	}

	hasher, err := security.NewPasswordHasher(cfg.Bcrypt.Cost)
	if err != nil {
		return nil, fmt.Errorf("init password hasher: %w", err)
	}

	tokens, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	var producer *kafkainfra.Producer
	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	var mailer port.Mailer
	if cfg.Mail.Driver == "kafka" && producer != nil {
		mailer = mail.NewKafkaMailer(producer, cfg.Mail.From, log)
	} else {
		if cfg.Mail.Driver == "kafka" {
			log.Warn("mail driver set to kafka without a producer, falling back to log mailer")
		}
		mailer = mail.NewLogMailer(cfg.Mail.From, log)
	}

	images, err := storage.NewS3ImageStore(ctx, cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}

	validator := security.DefaultPasswordValidator()

	authService := usecase.NewAuthService(accounts, hasher, tokens, log)
	registrationService := usecase.NewRegistrationService(accounts, images, eventPublisher, hasher, tokens, validator, log)
	passwordService := usecase.NewPasswordService(accounts, mailer, eventPublisher, hasher, validator, cfg.App.ServerURL, cfg.PasswordReset.TokenTTL, log)
	profileService := usecase.NewProfileService(accounts, images, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Database: &mongoPinger{db: db},
		Services: routes.ServiceSet{
			Auth:         authService,
			Registration: registrationService,
			Passwords:    passwordService,
			Profile:      profileService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		mongo:    db,
		producer: producer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.producer != nil {
			if err := a.producer.Close(); err != nil {
				a.logger.Warn("close kafka producer", zap.Error(err))
			}
		}
	}()
	defer func() {
		if a.mongo != nil {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.mongo.Client().Disconnect(disconnectCtx); err != nil {
				a.logger.Warn("disconnect mongo", zap.Error(err))
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting account API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

// mongoPinger adapts the driver to the readiness checker interface.
type mongoPinger struct {
	db *mongo.Database
}

func (p *mongoPinger) Ping(ctx context.Context) error {
	return p.db.Client().Ping(ctx, readpref.Primary())
}
