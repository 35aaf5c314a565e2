package appcontext

import (
	"github.com/getblogd/blogd-services/pkg/ajan"
	"github.com/getblogd/blogd-services/pkg/api/business/batching"
)

type BlogsConfig struct {
	// StreamMaxLen caps each category stream at an approximate length.
	StreamMaxLen int64 `conf:"stream_maxlen" default:"200000"`

	Batching batching.Config `conf:"batching"`
}

type AppConfig struct {
	ajan.BaseConfig

	Blogs BlogsConfig `conf:"blogs"`
}
