package configfx_test

import (
	"testing"
	"time"

	"github.com/getblogd/blogd-services/pkg/ajan/configfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nestedConfig struct {
	Value   int           `conf:"value"   default:"3"`
	Timeout time.Duration `conf:"timeout" default:"250ms"`
}

type testConfig struct {
	Name    string       `conf:"name" default:"fallback"`
	Nested  nestedConfig `conf:"nested"`
	Enabled bool         `conf:"enabled" default:"true"`
}

func TestConfigManager_Defaults(t *testing.T) {
	t.Parallel()

	cl := configfx.NewConfigManager()

	config := &testConfig{} //nolint:exhaustruct

	err := cl.Load(config)
	require.NoError(t, err)

	assert.Equal(t, "fallback", config.Name)
	assert.Equal(t, 3, config.Nested.Value)
	assert.Equal(t, 250*time.Millisecond, config.Nested.Timeout)
	assert.True(t, config.Enabled)
}

func TestConfigManager_FromJSONString(t *testing.T) {
	t.Parallel()

	cl := configfx.NewConfigManager()

	config := &testConfig{} //nolint:exhaustruct

	err := cl.Load(
		config,
		cl.FromJSONString(`{"name":"fromjson","nested":{"value":7,"timeout":"1s"}}`),
	)
	require.NoError(t, err)

	assert.Equal(t, "fromjson", config.Name)
	assert.Equal(t, 7, config.Nested.Value)
	assert.Equal(t, time.Second, config.Nested.Timeout)
}

func TestConfigManager_SystemEnvOverridesJSON(t *testing.T) { //nolint:paralleltest
	t.Setenv("NAME", "fromenv")

	cl := configfx.NewConfigManager()

	config := &testConfig{} //nolint:exhaustruct

	err := cl.Load(
		config,
		cl.FromJSONString(`{"name":"fromjson"}`),
		cl.FromSystemEnv(true),
	)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", config.Name)
}
