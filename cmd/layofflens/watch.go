package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/layofflens/internal/layoffs/config"
	"github.com/gartstein/layofflens/internal/layoffs/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(load func() (*config.Config, error), logger *zap.Logger) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Log import and layoff events as they are published",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cfg.KafkaEnabled() {
				return errors.New("watch needs KAFKA_BROKERS and TOPIC to be configured")
			}
			if group == "" {
				group = cfg.ConsumerGroup
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.Topic, group, logger)
			consumer.RegisterHandler(logEvent(logger.Named("watch")))
			consumer.Start(ctx)

			<-ctx.Done()
			consumer.Close()
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Consumer group (default: CONSUMER_GROUP from the config)")
	return cmd
}

func logEvent(logger *zap.Logger) func(context.Context, events.Event) error {
	return func(_ context.Context, ev events.Event) error {
		fields := []zap.Field{
			zap.String("type", string(ev.Type)),
			zap.String("key", ev.Key()),
			zap.Time("occurred_at", ev.OccurredAt),
		}
		switch {
		case ev.Import != nil:
			fields = append(fields,
				zap.Int("rows_read", ev.Import.RowsRead),
				zap.Int("rows_inserted", ev.Import.RowsInserted),
				zap.Int("insert_failed", ev.Import.InsertFailed),
			)
		case ev.Layoff != nil:
			fields = append(fields,
				zap.String("company", ev.Layoff.Company),
				zap.Int("count", ev.Layoff.Affected()),
			)
		}
		if ev.Batch != nil {
			fields = append(fields, zap.Int("batch", ev.Batch.Batch), zap.String("error", ev.Batch.Message))
		}
		logger.Info("Event received", fields...)
		return nil
	}
}
