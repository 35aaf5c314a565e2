package middlewares

import (
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
)

const ResponseTimeHeader = "X-Response-Time"

func ResponseTimeMiddleware() httpfx.Handler {
	return func(ctx *httpfx.Context) httpfx.Result {
		start := time.Now()

		result := ctx.Next()

		ctx.ResponseWriter.Header().Set(ResponseTimeHeader, time.Since(start).String())

		return result
	}
}
