package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DrNour/Nour-translation-app/internal/config"
	"github.com/DrNour/Nour-translation-app/internal/database"
	"github.com/DrNour/Nour-translation-app/internal/handler"
	"github.com/DrNour/Nour-translation-app/internal/middleware"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/repository"
	"github.com/DrNour/Nour-translation-app/internal/router"
	"github.com/DrNour/Nour-translation-app/internal/service"
	"github.com/DrNour/Nour-translation-app/pkg/bleu"
	"github.com/DrNour/Nour-translation-app/pkg/comet"
	"github.com/DrNour/Nour-translation-app/pkg/embedsim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Account{}, &models.Exercise{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not set, dashboard caching disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	accountRepo := repository.NewAccountRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	scoringService := service.NewScoringService(
		bleu.New(),
		buildEmbeddingScorer(cfg, logger),
		buildQualityEstimator(cfg, logger),
		cfg.MetricTimeout,
		logger,
	)

	events := buildEventPublisher(cfg, logger)

	authService := service.NewAuthService(accountRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	exerciseService := service.NewExerciseService(exerciseRepo, accountRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, exerciseRepo, accountRepo, scoringService, events, validate, logger)
	dashboardService := service.NewStudentDashboardService(exerciseRepo, submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		ExerciseHandler:   handler.NewExerciseHandler(exerciseService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		DashboardHandler:  handler.NewStudentDashboardHandler(dashboardService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildEmbeddingScorer returns nil when no API key is configured; the
// scoring adapter records the metric as absent in that case.
func buildEmbeddingScorer(cfg config.Config, logger zerolog.Logger) service.EmbeddingScorer {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("openai api key not set, embedding similarity disabled")
		return nil
	}

	client, err := embedsim.New(embedsim.Config{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.EmbeddingModel,
		Logger: logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build embedding scorer, metric disabled")
		return nil
	}

	return client
}

func buildQualityEstimator(cfg config.Config, logger zerolog.Logger) service.QualityEstimator {
	if cfg.CometURL == "" {
		logger.Warn().Msg("comet url not set, quality estimation disabled")
		return nil
	}

	client, err := comet.New(comet.Config{
		BaseURL:   cfg.CometURL,
		BatchSize: cfg.CometBatchSize,
		Logger:    logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build comet client, metric disabled")
		return nil
	}

	return cometEstimator{client: client}
}

// cometEstimator adapts the COMET client to the scoring adapter's segment
// type.
type cometEstimator struct {
	client *comet.Client
}

func (e cometEstimator) Estimate(ctx context.Context, segments []service.QualitySegment) ([]float64, error) {
	converted := make([]comet.Segment, 0, len(segments))
	for _, segment := range segments {
		converted = append(converted, comet.Segment{
			Source:     segment.Source,
			Hypothesis: segment.Hypothesis,
			Reference:  segment.Reference,
		})
	}

	return e.client.Estimate(ctx, converted)
}

func buildEventPublisher(cfg config.Config, logger zerolog.Logger) service.SubmissionEventPublisher {
	if cfg.NATSURL == "" {
		return nil
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to connect to nats, submission events disabled")
		return nil
	}

	return service.NewNATSEventPublisher(conn, cfg.NATSSubject, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
