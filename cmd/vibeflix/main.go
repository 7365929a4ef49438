package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/middleware"
)

const shutdownTimeout = 5 * time.Second

func newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recover(Logger))
	r.Use(middleware.Logger(Logger))
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter, Logger))
	}
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.Gzip())

	handler.RegisterRoutes(r)
	return r
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	InitializeLogger()
	InitializeConfig()
	InitializeServices(ctx)

	srv := &http.Server{
		Addr:              ":" + Config.Port,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		Logger.Infof("[App] shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sessions != nil {
			sessions.Close()
		}
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	Logger.Infof("[App] starting %s %s on port %s", constants.AppName, constants.AppVersion, Config.Port)
	if err := srv.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
		Logger.Fatalf("[App] server failed: %v", err)
	}
	if err := <-shutdownErr; err != nil {
		Logger.Errorf("[App] shutdown failed: %v", err)
	}
	Logger.Infof("[App] server stopped")
}
