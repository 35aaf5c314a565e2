package subcommands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getblogd/blogd-services/pkg/api/adapters/appcontext"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	"github.com/spf13/cobra"
)

func CmdSeed() *cobra.Command {
	var flagCount int

	var flagGenre string

	var flagLocation string

	seedCmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "seed",
		Short: "Enqueues sample blogs",
		Long:  "Enqueues sample blogs through the ingest path for smoke testing the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execSeed(cmd.Context(), flagCount, flagGenre, flagLocation)
		},
	}

	seedCmd.Flags().IntVarP(&flagCount, "count", "n", 10, "number of blogs to enqueue")
	seedCmd.Flags().StringVarP(&flagGenre, "genre", "g", "seed", "genre to enqueue into")
	seedCmd.Flags().StringVarP(&flagLocation, "location", "l", "local", "location to attach")

	return seedCmd
}

func execSeed(ctx context.Context, count int, genre string, location string) error {
	appContext := appcontext.New()

	err := appContext.Init(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	for i := range count {
		attrs := &blogs.BlogCreateAttrs{ //nolint:exhaustruct
			Author:   "seeder",
			Content:  fmt.Sprintf("sample content %d", i),
			Genre:    genre,
			Location: location,
		}

		receipt, err := appContext.BlogsService.Enqueue(ctx, attrs)
		if err != nil {
			return err //nolint:wrapcheck
		}

		appContext.Logger.InfoContext(
			ctx,
			"seeded blog",
			slog.String("stream", receipt.Stream),
			slog.String("message_id", receipt.MessageID),
		)
	}

	return nil
}
