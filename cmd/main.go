package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"mathdefenders/internal/adapters"
	"mathdefenders/internal/bootstrap"
	apiDelivery "mathdefenders/internal/delivery/api"
	webDelivery "mathdefenders/internal/delivery/web"
	"mathdefenders/internal/repository"
	leaderboardUC "mathdefenders/internal/usecase/leaderboard"
	passwordresetUC "mathdefenders/internal/usecase/passwordreset"
	registrationUC "mathdefenders/internal/usecase/registration"
	usersUC "mathdefenders/internal/usecase/users"
)

const tokenTTL = 15 * time.Minute

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	mongoAdapter := adapters.NewAdapterMongo(cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}
	defer mongoAdapter.Close(ctx)

	tokens := initTokenStorage(ctx, cfg, logger)

	mailAdapter := adapters.NewAdapterMail(cfg, logger)
	captchaAdapter := adapters.NewAdapterCaptcha(cfg)

	userStorage := repository.NewMongoUserStorage(mongoAdapter)
	pendingUserStorage := repository.NewMongoPendingUserStorage(mongoAdapter)
	resetStorage := repository.NewMongoPasswordResetStorage(mongoAdapter)
	metadataStorage := repository.NewMongoMetadataStorage(mongoAdapter)

	registration := registrationUC.NewUsecase(userStorage, pendingUserStorage, mailAdapter, captchaAdapter, cfg.SiteURL, logger)
	passwordReset := passwordresetUC.NewUsecase(userStorage, resetStorage, mailAdapter, captchaAdapter, cfg.SiteURL, logger)
	leaderboards := leaderboardUC.NewUsecase(userStorage)
	userQuery := usersUC.NewUsecase(userStorage, leaderboards, logger)

	apiHandler := apiDelivery.NewAPIHandler(registration, passwordReset, leaderboards, userQuery, metadataStorage, tokens, logger)
	webHandler := webDelivery.NewWebHandler(registration, passwordReset, leaderboards, userQuery, metadataStorage, tokens, logger)

	apiRouter := newRouter(cfg)
	apiHandler.Router(apiRouter)

	webRouter := newRouter(cfg)
	webHandler.Router(webRouter)

	apiServer := &http.Server{Addr: ":" + cfg.APIPort, Handler: apiRouter}
	webServer := &http.Server{Addr: ":" + cfg.ServerPort, Handler: webRouter}

	go serve(apiServer, "api", logger)
	go serve(webServer, "web", logger)
	logger.Infof("Web tier on :%s, API tier on :%s", cfg.ServerPort, cfg.APIPort)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = apiServer.Shutdown(shutdownCtx)
	_ = webServer.Shutdown(shutdownCtx)
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func newRouter(cfg *bootstrap.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.IsLocalCors {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	return r
}

func serve(server *http.Server, name string, log *zap.SugaredLogger) {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start %s server: %v", name, err)
	}
}

// initTokenStorage picks the anti-forgery token backend: redis when
// configured, otherwise the in-process map with a periodic sweep.
func initTokenStorage(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) repository.TokenStorage {
	if cfg.RedisURL == "" {
		return repository.NewMapTokenStorage(tokenTTL, time.Minute)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	return repository.NewRedisTokenStorage(redisAdapter.GetClient(), tokenTTL)
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
