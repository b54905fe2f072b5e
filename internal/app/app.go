// Package app assembles the service: configuration, storage, the Discord
// clients and the HTTP surface.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Din0326/Ziin-Project/internal/config"
	"github.com/Din0326/Ziin-Project/internal/db"
	"github.com/Din0326/Ziin-Project/internal/discord"
	"github.com/Din0326/Ziin-Project/internal/http/api/dashboard"
	"github.com/Din0326/Ziin-Project/internal/logging"
	"github.com/Din0326/Ziin-Project/internal/perms"
	"github.com/Din0326/Ziin-Project/internal/resolve"
	"github.com/Din0326/Ziin-Project/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// shutdownTimeout bounds the drain of in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

// Run boots the service and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.Logging)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	discordClient, errDiscord := discord.New(cfg.Discord.BotToken, cfg.Discord.ClientID)
	if errDiscord != nil {
		return errDiscord
	}

	engine := newEngine(cfg)
	dashboard.RegisterDashboardRoutes(engine, dashboard.Deps{
		Config:   &cfg,
		DB:       conn,
		Store:    store.New(conn),
		Discord:  discordClient,
		Oracle:   perms.NewOracle(discordClient, nil),
		Resolver: resolve.New(&cfg, nil, nil),
	})

	server := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Server.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}

// newEngine builds the gin engine with logging, recovery and CORS for the
// dashboard frontend.
func newEngine(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	return engine
}
