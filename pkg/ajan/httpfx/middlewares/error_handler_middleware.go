package middlewares

import (
	"fmt"
	"net/http"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
)

// ErrorHandlerMiddleware recovers panics from the rest of the chain and turns
// them into plain 500 responses.
func ErrorHandlerMiddleware() httpfx.Handler {
	return func(ctx *httpfx.Context) (result httpfx.Result) {
		defer func() {
			if rec := recover(); rec != nil {
				result = ctx.Results.Error(
					http.StatusInternalServerError,
					httpfx.WithPlainText(fmt.Sprintf("%v", rec)),
				)
			}
		}()

		result = ctx.Next()

		return result
	}
}
