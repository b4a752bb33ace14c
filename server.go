// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"os"
	"raex-server/commons"
	"raex-server/db"
	"raex-server/handlers"
	"raex-server/ingest"
	"raex-server/rabbitmq"
	"raex-server/routes"
	"raex-server/search"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(commons.GetEnv("CORS_ALLOW_ORIGINS", "*"), ","),
	}))
	e.Use(middleware.BodyLimit(commons.GetEnv("UPLOAD_MAX_SIZE", "20M")))

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		commons.Logger.Fatal("Failed to access database handle:", err)
	}

	store := db.NewRecordStore(db.DB)

	var publisher ingest.Publisher
	if rmqConfig := rabbitmq.ConfigFromEnv(); rmqConfig.AMQPURL != "" {
		rmqPublisher, err := rabbitmq.NewPublisher(rmqConfig)
		if err != nil {
			commons.Logger.Warn("RabbitMQ unavailable, ingest events disabled:", err)
		} else {
			defer rmqPublisher.Close()
			publisher = rmqPublisher
		}
	}

	files := handlers.NewFilesHandler(
		ingest.NewService(store, publisher, commons.Logger),
		search.NewEngine(store, search.ConfigFromEnv(), commons.Logger),
		commons.GetEnv("UPLOAD_DIR"),
	)
	routes.RegisterRoutes(e, files, handlers.NewIngestLogHandler(store), sqlDB)

	port := commons.GetEnv("PORT", "8080")
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
