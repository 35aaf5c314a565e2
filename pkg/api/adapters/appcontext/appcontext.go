package appcontext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/getblogd/blogd-services/pkg/ajan/configfx"
	"github.com/getblogd/blogd-services/pkg/ajan/connfx"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/adapters/storage"
	"github.com/getblogd/blogd-services/pkg/api/adapters/streambus"
	"github.com/getblogd/blogd-services/pkg/api/business/batching"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	_ "github.com/go-sql-driver/mysql"
)

var ErrInitFailed = errors.New("failed to initialize app context")

const (
	defaultMySQLDSN = "bloguser:blogpass@tcp(localhost:3306)/blogs" +
		"?charset=utf8mb4&parseTime=true&loc=UTC"
	defaultRedisDSN = "redis://localhost:6379/0"
)

type AppContext struct {
	// Adapters
	Config      *AppConfig
	Logger      *logfx.Logger
	Connections *connfx.Registry

	Repository *storage.Repository
	Bus        *streambus.Bus

	// Business
	BlogsService  *blogs.Service
	BatchConsumer *batching.Consumer
}

func New() *AppContext {
	return &AppContext{} //nolint:exhaustruct
}

func (a *AppContext) Init(ctx context.Context) error {
	// ----------------------------------------------------
	// Adapter: Config
	// ----------------------------------------------------
	cl := configfx.NewConfigManager()

	a.Config = &AppConfig{} //nolint:exhaustruct

	err := cl.LoadDefaults(a.Config)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	applyConnDefaults(&a.Config.Conn)

	if a.Config.Blogs.Batching.ConsumerName == "" {
		a.Config.Blogs.Batching.ConsumerName = batching.DefaultConsumerName()
	}

	// ----------------------------------------------------
	// Adapter: Logger
	// ----------------------------------------------------
	a.Logger = logfx.NewLogger(
		logfx.WithWriter(os.Stdout),
		logfx.WithConfig(&a.Config.Log),
	)

	a.Logger.InfoContext(
		ctx,
		"[AppContext] Initialization in progress",
		slog.String("module", "appcontext"),
		slog.String("name", a.Config.AppName),
		slog.String("environment", a.Config.AppEnv),
	)

	// ----------------------------------------------------
	// Adapter: Connections
	// ----------------------------------------------------
	a.Connections = connfx.NewRegistry(
		connfx.WithDefaultFactories(),
		connfx.WithLogger(a.Logger),
	)

	err = a.Connections.LoadFromConfig(ctx, &a.Config.Conn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	// ----------------------------------------------------
	// Adapter: Repository
	// ----------------------------------------------------
	a.Repository, err = storage.NewRepositoryFromDefault(a.Logger, a.Connections)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	// ----------------------------------------------------
	// Adapter: Stream Bus
	// ----------------------------------------------------
	a.Bus, err = streambus.NewBusFromDefault(a.Logger, a.Connections, a.Config.Blogs.StreamMaxLen)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	// ----------------------------------------------------
	// Business Services
	// ----------------------------------------------------
	a.BlogsService = blogs.NewService(a.Logger, a.Repository, a.Bus)
	a.BatchConsumer = batching.NewConsumer(
		a.Logger,
		a.Bus,
		a.Repository,
		&a.Config.Blogs.Batching,
	)

	// Schema sanity check. Missing procedures are logged inside and do not
	// prevent serving: enqueue still works and flushes retry.
	_, err = a.Repository.VerifyProcedures(ctx)
	if err != nil {
		a.Logger.WarnContext(
			ctx,
			"[AppContext] stored procedure verification failed",
			slog.Any("error", err),
		)
	}

	return nil
}

func applyConnDefaults(config *connfx.Config) {
	if config.Targets == nil {
		config.Targets = make(map[string]connfx.ConfigTarget)
	}

	if _, exists := config.Targets[connfx.DefaultConnection]; !exists {
		config.Targets[connfx.DefaultConnection] = connfx.ConfigTarget{ //nolint:exhaustruct
			Protocol: "mysql",
			DSN:      defaultMySQLDSN,
		}
	}

	if _, exists := config.Targets["queue"]; !exists {
		config.Targets["queue"] = connfx.ConfigTarget{ //nolint:exhaustruct
			Protocol: "redis",
			DSN:      defaultRedisDSN,
		}
	}
}
