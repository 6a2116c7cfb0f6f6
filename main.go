package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"podiumapi/config"
	"podiumapi/db"
	"podiumapi/game"
	"podiumapi/handlers"
	applog "podiumapi/logger"
	mw "podiumapi/middleware"
	"podiumapi/workers"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	ctx := context.Background()
	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}
	if err := db.SeedDrivers(ctx, bdb); err != nil {
		logger.Fatal("seed drivers failed", zap.Error(err))
	}

	svc := game.New(bdb, game.Options{
		AdminIDs:        cfg.AdminIDs,
		DefaultTimezone: cfg.DefaultTimezone,
	})
	gate := game.NewGate(cfg.BetCloseOffset)
	h := handlers.New(svc, gate, cfg.JWTKey())

	reminder := workers.NewReminder(svc, workers.LogNotifier{}, cfg.ReminderHours)
	sched, err := reminder.Start()
	if err != nil {
		logger.Fatal("start reminder scheduler failed", zap.Error(err))
	}
	defer func() { _ = sched.Shutdown() }()

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))

	api.GET("/races", h.Races)
	api.POST("/races", h.CreateRace)
	api.PUT("/races/:id", h.UpdateRace)
	api.DELETE("/races/:id", h.DeleteRace)
	api.GET("/races/unsettled", h.UnsettledRaces)

	api.GET("/drivers", h.Drivers)

	api.POST("/players/sync", h.SyncPlayer)
	api.GET("/players", h.Players)
	api.POST("/players/:telegramID/allow", h.AllowPlayer)
	api.POST("/players/:telegramID/deny", h.DenyPlayer)
	api.GET("/players/:telegramID/predictions", h.ListPredictions)
	api.GET("/players/:telegramID/stats", h.PlayerStats)

	api.PUT("/predictions", h.SavePrediction)
	api.GET("/predictions", h.GetPrediction)
	api.DELETE("/predictions", h.DeletePrediction)

	api.POST("/results", h.SaveResult)
	api.GET("/results", h.GetResult)

	api.GET("/leaderboard", h.Leaderboard)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
