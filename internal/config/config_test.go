package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VEC1_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, defaultMaxBatchSize, cfg.Server.GetMaxBatchSize())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vec1.yaml")
	data := []byte(`
server:
  rest_port: 9000
  max_batch_size: 16
logging:
  level: debug
  file_output: false
telemetry:
  enabled: true
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.GetRESTPort())
	assert.Equal(t, 16, cfg.Server.GetMaxBatchSize())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.FileOutput)
	assert.Equal(t, "logs", cfg.Logging.Dir, "незаданные поля берутся из Default")
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, defaultServiceName, cfg.Telemetry.ServiceName)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  rest_port: 7001\n"), 0644))
	t.Setenv("VEC1_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.GetRESTPort())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestRESTPortFallback(t *testing.T) {
	var s ServerConfig

	t.Setenv("VEC1_REST_PORT", "")
	assert.Equal(t, defaultRESTPort, s.GetRESTPort())

	t.Setenv("VEC1_REST_PORT", "9100")
	assert.Equal(t, 9100, s.GetRESTPort())

	t.Setenv("VEC1_REST_PORT", "not-a-port")
	assert.Equal(t, defaultRESTPort, s.GetRESTPort())

	s.RESTPort = 8200
	assert.Equal(t, 8200, s.GetRESTPort(), "значение из конфига важнее env")
}
