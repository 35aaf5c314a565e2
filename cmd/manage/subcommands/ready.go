package subcommands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getblogd/blogd-services/pkg/api/adapters/appcontext"
	"github.com/spf13/cobra"
)

var ErrConnectionsNotReady = errors.New("connections are not ready")

func CmdReady() *cobra.Command {
	readyCmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "ready",
		Short: "Checks the readiness of the services",
		Long:  "Checks that every configured connection answers its health check",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execReady(cmd.Context())
		},
	}

	return readyCmd
}

func execReady(ctx context.Context) error {
	appContext := appcontext.New()

	err := appContext.Init(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	statuses := appContext.Connections.HealthCheck(ctx)

	failed := 0

	for name, status := range statuses {
		if status.Error != nil {
			failed++

			appContext.Logger.ErrorContext(
				ctx,
				"connection is not healthy",
				slog.String("name", name),
				slog.String("state", status.State.String()),
				slog.Any("error", status.Error),
			)

			continue
		}

		appContext.Logger.InfoContext(
			ctx,
			"connection is healthy",
			slog.String("name", name),
			slog.String("state", status.State.String()),
			slog.Duration("latency", status.Latency),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%w (failed=%d)", ErrConnectionsNotReady, failed)
	}

	appContext.Logger.InfoContext(ctx, "readiness check passed")

	return nil
}
