package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nursemoves/beta-signup/pkg/api"
	"github.com/nursemoves/beta-signup/pkg/clients/twilio"
	"github.com/nursemoves/beta-signup/pkg/config"
	"github.com/nursemoves/beta-signup/pkg/docstore"
	"github.com/nursemoves/beta-signup/pkg/form"
	"github.com/nursemoves/beta-signup/pkg/logger"
	"github.com/nursemoves/beta-signup/pkg/mailer"
	"github.com/nursemoves/beta-signup/pkg/middleware"
	"github.com/nursemoves/beta-signup/pkg/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		logrus.Info("No .env file loaded, using process environment")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Scope("main")

	// Initialize backends
	ctx := context.Background()
	store, err := docstore.Open(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("Error opening document store")
	}
	if closer, ok := store.(docstore.Closer); ok {
		defer closer.Close()
	}

	sender, err := mailer.NewSender(cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.MailDriver).Fatal("Error creating mail sender")
	}

	var twilioClient twilio.Client
	if cfg.TwilioConfigured() {
		twilioClient = twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	// Initialize services
	submissionService := services.NewSignupSubmissionService(store, sender, twilioClient, cfg)
	forms := form.NewRegistry(submissionService, cfg.SessionTTL)
	defer forms.Stop()

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSAllowOrigin))

	api.NewHandlers(submissionService, forms).Register(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SubmitTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"store": cfg.StoreDriver,
			"mail":  cfg.MailDriver,
			"sms":   twilioClient != nil,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Error starting server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	// let in-flight submissions finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return
	}
	log.Info("Server exited gracefully")
}
