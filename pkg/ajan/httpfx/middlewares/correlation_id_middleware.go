package middlewares

import (
	"context"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
	"github.com/getblogd/blogd-services/pkg/ajan/lib"
)

const (
	CorrelationIDHeader = "X-Correlation-Id"

	CorrelationID httpfx.ContextKey = "correlation-id"
)

// CorrelationIDMiddleware propagates the caller's correlation id, generating
// one when absent, and echoes it on the response.
func CorrelationIDMiddleware() httpfx.Handler {
	return func(ctx *httpfx.Context) httpfx.Result {
		correlationID := ctx.Request.Header.Get(CorrelationIDHeader)

		if correlationID == "" {
			correlationID = lib.GenerateCorrelationID()
		}

		newContext := context.WithValue(
			ctx.Request.Context(),
			CorrelationID,
			correlationID,
		)

		ctx.UpdateContext(newContext)

		ctx.ResponseWriter.Header().Set(CorrelationIDHeader, correlationID)

		return ctx.Next()
	}
}
