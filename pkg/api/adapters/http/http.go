package http

import (
	"context"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
	"github.com/getblogd/blogd-services/pkg/ajan/httpfx/middlewares"
	"github.com/getblogd/blogd-services/pkg/ajan/httpfx/modules/healthcheck"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
)

func Run(
	ctx context.Context,
	config *httpfx.Config,
	logger *logfx.Logger,
	blogsService *blogs.Service,
) (func(), error) {
	routes := httpfx.NewRouter("/")
	httpService := httpfx.NewHTTPService(config, routes, logger)

	// http middlewares
	routes.Use(middlewares.ErrorHandlerMiddleware())
	routes.Use(middlewares.CorrelationIDMiddleware())
	routes.Use(middlewares.ResponseTimeMiddleware())
	routes.Use(middlewares.CorsMiddleware())

	// http modules
	healthcheck.RegisterHTTPRoutes(routes, config)

	// http routes
	RegisterHTTPRoutesForBlogs(routes, logger, blogsService)

	// run
	return httpService.Start(ctx) //nolint:wrapcheck
}
