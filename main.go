package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/cmd"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/configs"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/handlers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/handlers/admin"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/routes"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/renderer"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	env := configs.LoadEnv()
	log := configs.NewLogger(env)

	cmd.RunCli(env, log, func(ctx context.Context, c *cli.Command) error {
		return serve(ctx, env, log)
	})
}

func serve(ctx context.Context, env configs.ENV, log *logrus.Logger) error {
	keys, err := configs.LoadSessionKeysFromEnv(env)
	if err != nil {
		if env.IsProduction() {
			return err
		}
		log.Warnf("Session keys not configured (%v), using throwaway development keys", err)
		keys = configs.DevSessionKeys()
	}

	db, err := configs.OpenConnection(env, log)
	if err != nil {
		return err
	}
	log.Info("✅ Database connected.")

	productRepo := repositories.NewProductRepository(db)
	promotionRepo := repositories.NewPromotionRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	userRepo := repositories.NewUserRepository(db)
	featureRepo := repositories.NewProductFeatureRepository(db)

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	log.Info("✅ Session store initialized.")

	catalogSvc := services.NewCatalogService(productRepo, promotionRepo, ratingRepo, categoryRepo, log)
	cartSvc := services.NewCartService(sessionStore, productRepo, promotionRepo)
	searcher := services.NewRandomImageSearcher(productRepo, log)

	job := services.NewFeatureExtractionJob(productRepo, featureRepo, log)
	var indexer services.FeatureIndexer = services.NewInlineIndexer(job)
	if env.RabbitMQURL != "" {
		amqpIndexer, err := services.NewAMQPIndexer(env.RabbitMQURL, log)
		if err != nil {
			log.Warnf("RabbitMQ unavailable (%v), feature extraction runs inline", err)
		} else {
			defer amqpIndexer.Close()
			indexer = amqpIndexer
		}
	}

	render := renderer.New(env.TemplateDir, !env.IsProduction())
	validate := validator.New()

	router := routes.NewRouter(routes.Dependencies{
		Log:         log,
		Sessions:    sessionStore,
		UserRepo:    userRepo,
		CartSvc:     cartSvc,
		StaticDir:   env.StaticDir,
		CSRFKey:     keys.CSRFKey,
		Secure:      env.IsProduction(),
		Home:        handlers.NewHomeHandler(render, catalogSvc),
		Products:    handlers.NewProductHandler(productRepo, ratingRepo, catalogSvc, validate, render),
		Cart:        handlers.NewCartHandler(render, sessionStore, cartSvc),
		ImageSearch: handlers.NewImageSearchHandler(render, searcher, validate, env.ImageSearchLimit),
		Admin:       admin.NewAdminHandler(render, productRepo, featureRepo, indexer),
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
