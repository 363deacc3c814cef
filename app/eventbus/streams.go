package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
)

// InitializeStreams creates the JetStream streams the modules rely on during
// application startup. Each module owns one stream covering its subject
// hierarchy.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	streamConfigs := []jetstream.StreamConfig{
		{
			Name:     "tournament",
			Subjects: []string{"tournament.>"},
		},
		{
			Name:     "gamestate",
			Subjects: []string{"gamestate.>"},
		},
	}

	for _, streamConfig := range streamConfigs {
		_, err := js.Stream(ctx, streamConfig.Name)
		if err == jetstream.ErrStreamNotFound {
			if _, err := js.CreateStream(ctx, streamConfig); err != nil {
				logger.ErrorContext(ctx, "Failed to create JetStream stream",
					slog.String("stream", streamConfig.Name),
					slog.Any("error", err),
				)
				return err
			}
			logger.InfoContext(ctx, "Created JetStream stream", slog.String("stream", streamConfig.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream %q: %w", streamConfig.Name, err)
		}
	}
	return nil
}
