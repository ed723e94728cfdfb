package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	if prev, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { _ = os.Setenv(key, prev) })
	} else {
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	require.NoError(t, os.Unsetenv(key))
}

// inProject runs the test from a fresh project root holding the given .env content.
func inProject(t *testing.T, dotEnv string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/x\n"), 0o644))
	if dotEnv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotEnv), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestNewConfig_apiEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		dotEnv    string
		vite      string
		registrar string
		want      string
	}{
		{name: "default", want: "http://localhost:8000/"},
		{name: "VITE_API_ENDPOINT", vite: "http://backend.example:9000/", want: "http://backend.example:9000/"},
		{name: "REGISTRAR_API_ENDPOINT", registrar: "http://registrar.example/", want: "http://registrar.example/"},
		{
			name:      "REGISTRAR_API_ENDPOINT wins",
			vite:      "http://backend.example:9000/",
			registrar: "http://registrar.example/",
			want:      "http://registrar.example/",
		},
		{
			name:   "written by setenv",
			dotEnv: "# stage backend\nVITE_API_ENDPOINT=http://stage.example/\n",
			want:   "http://stage.example/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "VITE_API_ENDPOINT")
			unsetenv(t, "REGISTRAR_API_ENDPOINT")
			inProject(t, tt.dotEnv)
			if tt.vite != "" {
				t.Setenv("VITE_API_ENDPOINT", tt.vite)
			}
			if tt.registrar != "" {
				t.Setenv("REGISTRAR_API_ENDPOINT", tt.registrar)
			}

			assert.Equal(t, tt.want, NewConfig().API.Endpoint)
		})
	}
}

func TestNewConfig_defaults(t *testing.T) {
	unsetenv(t, "ENV")
	unsetenv(t, "REGISTRAR_STORAGE_ENGINE")
	dir := inProject(t, "")

	conf := NewConfig()
	assert.Equal(t, "DEV", conf.Env)
	assert.Equal(t, dir, conf.WorkDir)
	assert.Equal(t, "ar", conf.DefaultLang)
	assert.Equal(t, "sqlite3", conf.Storage.Engine)
	assert.Equal(t, filepath.Join(dir, "data", "registrar.db"), conf.Storage.Path)
	assert.Equal(t, "127.0.0.1:8080", conf.Portal.Host)
}
