package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"disasterreport/config"
	"disasterreport/controller/admin"
	"disasterreport/controller/auth"
	"disasterreport/controller/report"
	"disasterreport/middleware"
	"disasterreport/model"
	"disasterreport/repository"
	"disasterreport/scheduler"
	"disasterreport/services"
)

// App is everything the router needs.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Reports *services.ReportService
	Users   *services.UserService
}

func NewRouter(app *App) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(app.Logger),
		middleware.Recovery(app.Logger),
		corsMiddleware(app.Config.CORSOrigins),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!", "variant": app.Reports.Variant()})
	})
	router.Static("/uploads", app.Config.UploadDir)

	report.ReportController(router, app.Reports, app.Config.UploadDir, app.Logger)
	auth.AuthController(router, app.Users, app.Logger)

	if app.Reports.Variant() == model.VariantBasic {
		var guards []gin.HandlerFunc
		if app.Config.AdminTokenRequired {
			guards = append(guards, middleware.AccessTokenMiddleware([]byte(app.Config.JWTSecret)), middleware.AdminMiddleware())
		}
		admin.AdminController(router, app.Reports, app.Logger, guards...)
	}
	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}

// StartServer wires storage, external services and routes, then serves until ctx is done.
func StartServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	store, err := repository.OpenReportStore(cfg.ReportStorePath, cfg.Variant)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}

	userRepo, closeUsers, err := UserRepository(cfg)
	if err != nil {
		return err
	}
	defer closeUsers()

	opts := services.ReportServiceOptions{
		UrgentMinRank: cfg.UrgentMinRank,
		Logger:        logger,
	}
	if cfg.Variant == model.VariantPrediction {
		opts.Predictor = services.NewPredictionClient(cfg.PredictionURL, cfg.PredictionTimeout)
	}
	if cfg.FirebaseCredentials != "" {
		FB, err := FBConnection(ctx, cfg.FirebaseCredentials)
		if err != nil {
			return fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		defer FB.Close()
		opts.Mirror = services.NewFirestoreMirror(FB.Firestore, cfg.FirestoreCollection)
		opts.Notifier = services.NewFCMNotifier(FB.Messaging, cfg.FCMTopic, logger)
	} else {
		logger.Info("firebase credentials not configured; mirroring and notifications disabled")
	}

	reports, err := services.NewReportService(store, opts)
	if err != nil {
		return err
	}
	var tokens *services.TokenIssuer
	if cfg.JWTSecret != "" {
		tokens = &services.TokenIssuer{Secret: []byte(cfg.JWTSecret), TTL: 30 * time.Minute, IsAdmin: cfg.IsAdmin}
	}
	users := services.NewUserService(userRepo, tokens)

	if cfg.SummaryCron != "" {
		cron, err := scheduler.StartScheduler(cfg.SummaryCron, reports, logger)
		if err != nil {
			return err
		}
		defer cron.Stop()
	}

	router := NewRouter(&App{Config: cfg, Logger: logger, Reports: reports, Users: users})
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", srv.Addr, "variant", cfg.Variant, "store", store.Path())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
