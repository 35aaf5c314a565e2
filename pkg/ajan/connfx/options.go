package connfx

// NewRegistryOption defines functional options for Registry.
type NewRegistryOption func(*Registry)

// WithLogger sets the logger for the registry.
func WithLogger(logger Logger) NewRegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithDefaultFactories() NewRegistryOption {
	return func(r *Registry) { //nolint:varnamelen
		// adapter_sql.go
		r.RegisterFactory(NewSQLConnectionFactory("mysql"))
		r.RegisterFactory(NewSQLConnectionFactory("sqlite"))

		// adapter_redis.go
		r.RegisterFactory(NewRedisConnectionFactory("redis"))
	}
}
