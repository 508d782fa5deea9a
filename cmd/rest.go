package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AzielCF/az-evo-relay/ui/rest"
	"github.com/AzielCF/az-evo-relay/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Run the webhook relay over http",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	app := fiber.New(fiber.Config{
		AppName:      "Az-Evo-Relay " + appConfig.App.Version,
		Network:      "tcp",
		ServerHeader: "Hidden",
	})

	app.Use(requestid.New())
	app.Use(middleware.Recovery())
	if appConfig.App.Debug {
		app.Use(logger.New())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if messagePool != nil {
		messagePool.Start(ctx)
	}
	go wsHub.Run(ctx)

	rest.InitRestHealth(app, healthUsecase)
	rest.InitRestMonitoring(app, healthUsecase)
	rest.InitRestWebhook(app, webhookUsecase)
	rest.InitRestInstance(app, instanceUsecase)
	rest.InitRestMessageLog(app, messageLogUsecase)
	wsHub.RegisterRoutes(app)

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":     appConfig.App.Addr(),
		"instance": appConfig.Gateway.InstanceName,
		"mode":     appConfig.Webhook.Mode,
		"async":    appConfig.Webhook.Async,
		"forwards": eventForwarder.Targets(),
	}).Info("[REST] Starting webhook relay")

	if err := app.Listen(appConfig.App.Addr()); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}

	StopApp()
	cancel()
}
