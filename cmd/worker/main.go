package main

import (
	"context"

	"github.com/getblogd/blogd-services/pkg/ajan/processfx"
	"github.com/getblogd/blogd-services/pkg/api/adapters/appcontext"
)

func main() {
	baseCtx := context.Background()

	appContext := appcontext.New()

	err := appContext.Init(baseCtx)
	if err != nil {
		panic(err)
	}

	process := processfx.New(baseCtx, appContext.Logger)

	process.StartGoroutine("batch-consumer", func(ctx context.Context) error {
		return appContext.BatchConsumer.Run(ctx)
	})

	process.Wait()
	process.Shutdown()
}
