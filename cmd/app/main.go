package main

import (
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"

	"shiptrack/cmd"
	httpadapter "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.ShipmentUoWFactory(),
		app.CreateRefreshShipmentStatusCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateUpdateStepCommandHandler(),
		app.CreateCancelShipmentCommandHandler(),
		app.CreateRaiseExceptionCommandHandler(),
		app.CreateResolveExceptionCommandHandler(),
		app.CreateReceiveLotCommandHandler(),
		app.CreateAllocateGoodsCommandHandler(),
		app.CreateLinkShipmentsCommandHandler(),
		app.CreateRefreshShipmentStatusCommandHandler(),
		app.CreateGetShipmentBoardQueryHandler(),
		app.CreateGetShipmentStepsQueryHandler(),
		app.CreateGetLotBalancesQueryHandler(),
		app.CreateGetUserAlertsQueryHandler(),
	)
	httpadapter.RegisterRoutes(e, server)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
