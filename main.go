package main

import (
	"context"
	"errors"
	"fmt"
	"licaca-meal-log/database"
	"licaca-meal-log/enums"
	"licaca-meal-log/router"
	"licaca-meal-log/services/activityLog"
	"licaca-meal-log/services/rabbitmq"
	"licaca-meal-log/services/trackLog"
	"licaca-meal-log/structs"
	"licaca-meal-log/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mealController "licaca-meal-log/controllers/meal"
	logLib "licaca-meal-log/services/log"
	mealService "licaca-meal-log/services/meal"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "licaca",
		Short:         "Food and symptom journal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configFile)
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yml, then environment)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configFile)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(configFile)
		},
	})
	cmd.AddCommand(addCmd(&configFile), listCmd(&configFile))

	return cmd
}

func initEnv(configFile string) {
	envService := utils.EnvService{ConfigFile: configFile}
	envService.InitEnv()
}

func migrate(configFile string) error {
	initEnv(configFile)
	trackLog.LogTrackInit()

	if err := database.InitDatabasePool(); err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		return err
	}
	insertActivityLog(enums.MigrateLog, "tables migrated")
	trackLog.Info("migration done", true)
	return nil
}

func serve(configFile string) error {
	initEnv(configFile)
	trackLog.LogTrackInit()
	config := utils.EnvConfig

	gin.SetMode(config.Router.Mode)

	if err := database.InitDatabasePool(); err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(database.DB); err != nil {
		return err
	}
	insertActivityLog(enums.ServeInitLog, "licaca 初始化")

	var publisher mealService.Publisher
	if config.RabbitMQ.Enable == 1 {
		conn := rabbitmq.NewConnection(enums.ConnectionName, config.RabbitMQ.Domain, []string{config.RabbitMQ.Queue})
		if err := conn.Reconnect(); err != nil {
			// check-live retries the connection
			trackLog.Error(err.Error(), true)
		}
		defer rabbitmq.RemoveConnection(enums.ConnectionName)
		publisher = conn
	}

	var logService logLib.LogService
	logger := logService.LoggerInit("meal").WithFields(logrus.Fields{"server": config.Server.Name})
	service := mealService.NewMealService(database.DB, publisher, config.RabbitMQ.Queue, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Router.Port),
		Handler: router.Router(mealController.NewController(service)),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		trackLog.Info(fmt.Sprintf("listening on %s", httpServer.Addr), true)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		trackLog.Info("received shutdown signal", true)
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// 塞入執行紀錄的 log table
func insertActivityLog(logName, message string) {
	data := structs.ActivityLogJsonModel{
		Type:    logName,
		Server:  utils.EnvConfig.Server.Name,
		Result:  true,
		Message: message,
	}
	if err := activityLog.Insert(database.DB, logName, data); err != nil {
		trackLog.Error(fmt.Sprintf("insert activity log %s: %s", logName, err.Error()), true)
	}
}
