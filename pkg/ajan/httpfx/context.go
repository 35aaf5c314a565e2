package httpfx

import (
	"context"
	"net/http"
)

type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter

	Results Results

	handlers []Handler
	index    int
}

// Next executes the remaining handlers in the chain.
func (c *Context) Next() Result {
	c.index++

	if c.index < len(c.handlers) {
		return c.handlers[c.index](c)
	}

	return c.Results.Ok()
}

// UpdateContext replaces the request's context.
func (c *Context) UpdateContext(ctx context.Context) {
	c.Request = c.Request.WithContext(ctx)
}
