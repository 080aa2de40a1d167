// @title ISTQB Quiz API
// @version 1.0
// @description Upload ISTQB syllabus PDFs, browse generated questions and take practice exams.
// @host localhost:8090
// @BasePath /api/v1
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "istqb-quiz/cmd/api/docs"
	"istqb-quiz/internal/bootstrap"
	"istqb-quiz/internal/config"
	"istqb-quiz/internal/handler"
	"istqb-quiz/internal/logger"
	"istqb-quiz/internal/middleware"
	"istqb-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Warn("Shutdown finished with errors", zap.Error(err))
		}
	}()

	app := newApp(cfg, container)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newApp builds the fiber application. The body limit leaves room for multipart
// framing around a maximum-size upload.
func newApp(cfg *config.Config, c *bootstrap.Container) *fiber.App {
	maxUpload := int64(cfg.Server.BodyLimitMB) << 20
	v := validation.NewValidator(maxUpload)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    int(v.MaxUploadBytes()) + 1<<20,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	checks := map[string]handler.Pinger{"database": handler.PingFunc(c.DB.PingContext)}
	if c.Cache != nil {
		checks["redis"] = c.Cache
	}

	handler.Handlers{
		Documents:  handler.NewDocumentHandler(c.Store, c.Pipeline, v),
		Questions:  handler.NewQuestionHandler(c.QuestionSvc),
		Exams:      handler.NewExamHandler(c.ExamSvc, v),
		Health:     handler.NewHealthHandler(checks),
		Validation: middleware.NewValidationMiddleware(v),
	}.Register(app)

	return app
}
