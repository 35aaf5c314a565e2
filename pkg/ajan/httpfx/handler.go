package httpfx

// Handler processes a request context and produces a result. Middlewares are
// plain handlers that call ctx.Next() to continue the chain.
type Handler func(*Context) Result

// ContextKey is the key type for values stored in the request context.
type ContextKey string
