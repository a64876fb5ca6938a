package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JacobHeater/upsign/global/config"
	"github.com/JacobHeater/upsign/logger"
	mid "github.com/JacobHeater/upsign/middleware"
	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventhandler "github.com/JacobHeater/upsign/module/event/handler"
	user "github.com/JacobHeater/upsign/module/user"
	"github.com/JacobHeater/upsign/service/realtime"
	jwtlib "github.com/JacobHeater/upsign/tools/security"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.Load("config.yaml"); err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	config.ConfigAll(ctx)

	jwtOpts := jwtlib.DefaultOptions(config.GetJwtSecret())
	jwtOpts.TTL = config.TokenTTL()
	authOpt := mid.RouteOpt{
		IsAuth: true,
		Auth: midsec.Options{
			JWT:        jwtOpts,
			CookieName: config.Global.Auth.CookieName,
		},
	}

	if config.Global.Server.Mode != "" {
		gin.SetMode(config.Global.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), mid.Origin())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	hub := realtime.NewHub()
	ws := realtime.NewWSServer(hub, jwtOpts, config.Global.Auth.CookieName)
	r.GET("/ws", ws.HandleWS)

	user.RegisterRoutes(r, authOpt)
	eventhandler.New(hub).RegisterRoutes(r, authOpt)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Global.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Infof("upsign listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http server: %v", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
