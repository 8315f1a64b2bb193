package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-manager/internal/backend"
	"github.com/ukydev/fleet-manager/internal/config"
	"github.com/ukydev/fleet-manager/internal/dashboard"
	"github.com/ukydev/fleet-manager/internal/logging"
	"github.com/ukydev/fleet-manager/internal/publisher"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("Publisher stopped")
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.Close(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to close backend")
		}
	}()

	mq, err := publisher.NewMQTTPublisher(publisher.MQTTOptions{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
	})
	if err != nil {
		return err
	}
	defer mq.Close()

	dash := dashboard.NewService(be.Records, dashboard.Options{
		IncludeFuelInTotal: cfg.Dashboard.IncludeFuelInTotal,
		Location:           loc,
		Now:                time.Now,
	})

	runner, err := publisher.NewRunner(dash, mq, cfg.MQTT.Topic, cfg.MQTT.Interval)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"topic":    cfg.MQTT.Topic,
		"interval": cfg.MQTT.Interval,
	}).Info("Starting dashboard publisher")

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Dashboard publisher stopped")
	return nil
}
