package ajan

import (
	"github.com/getblogd/blogd-services/pkg/ajan/connfx"
	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
)

type BaseConfig struct {
	Conn       connfx.Config `conf:"conn"`
	AppName    string        `conf:"name"    default:"blogdsvc"`
	AppEnv     string        `conf:"env"     default:"development"`
	AppVersion string        `conf:"version" default:"0.0.0"`

	Log  logfx.Config  `conf:"log"`
	HTTP httpfx.Config `conf:"http"`
}
