package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer func() {
		if err := dbStorage.Close(context.Background()); err != nil {
			logrus.WithError(err).Error("storage.Close")
		}
	}()

	if err := dbStorage.EnsureIndexes(ctx); err != nil {
		logrus.WithError(err).Fatal("storage.EnsureIndexes")
		return
	}

	// One worker: balance cascades are serialized in-process.
	mutator := operator.NewOperatorDelegator(1)
	mutator.Start()
	defer mutator.Stop()

	svc := service.NewService(dbStorage, mutator)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
		Storage: dbStorage,
	}
	httpRest.Serve(ctx)
}
