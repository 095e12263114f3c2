package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/layofflens/internal/layoffs/config"
	"github.com/gartstein/layofflens/internal/layoffs/controller"
	"github.com/gartstein/layofflens/internal/layoffs/events"
	"github.com/gartstein/layofflens/internal/layoffs/handlers"
	"github.com/gartstein/layofflens/internal/layoffs/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(load func() (*config.Config, error), logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics API over gRPC and HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	m := metrics.New()
	analyticsSvc := controller.NewAnalyticsService(repo, publisher, logger)

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	server.RegisterGRPCHandler(handlers.NewAnalyticsHandler(analyticsSvc, logger))
	if err := server.RegisterHTTPHandler(handlers.NewHTTPHandler(analyticsSvc, logger), m); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		server.Stop()
		return <-errCh
	case err := <-errCh:
		server.Stop()
		return err
	}
}

// newPublisher returns a Kafka producer when brokers are configured and a
// no-op publisher otherwise. The returned func releases it.
func newPublisher(cfg *config.Config, logger *zap.Logger) (events.Publisher, func(), error) {
	if !cfg.KafkaEnabled() {
		logger.Info("Kafka not configured; events are not published")
		return events.NopPublisher{}, func() {}, nil
	}
	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.Topic, logger)
	if err != nil {
		return nil, nil, err
	}
	return producer, producer.Close, nil
}
