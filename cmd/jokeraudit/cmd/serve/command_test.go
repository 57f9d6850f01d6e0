package serve

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/jokeraudit/cmd/application"
	appmock "github.com/agentstation/jokeraudit/internal/cmd/application"
	"github.com/agentstation/jokeraudit/internal/server"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func parse(t *testing.T, settings application.Settings, args ...string) (server.Config, error) {
	t.Helper()
	cmd := NewCommand(&appmock.Mock{})
	require.NoError(t, cmd.ParseFlags(args))
	return parseConfig(cmd, settings)
}

func TestParseConfig(t *testing.T) {
	settings := application.DefaultSettings()
	settings.Host, settings.Port = "0.0.0.0", 9090

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg server.Config)
		wantErr string
	}{
		{
			name: "settings supply host and port",
			check: func(t *testing.T, cfg server.Config) {
				assert.Equal(t, "0.0.0.0", cfg.Host)
				assert.Equal(t, 9090, cfg.Port)
				assert.Equal(t, "/api/v1", cfg.PathPrefix)
				assert.Equal(t, 100, cfg.RateLimit)
				assert.True(t, cfg.MetricsEnabled)
			},
		},
		{
			name: "flags win over settings",
			args: []string{"--host", "127.0.0.1", "-p", "3000"},
			check: func(t *testing.T, cfg server.Config) {
				assert.Equal(t, "127.0.0.1", cfg.Host)
				assert.Equal(t, 3000, cfg.Port)
			},
		},
		{
			name: "cors origins enable cors",
			args: []string{"--cors-origins", "https://a.example,https://b.example"},
			check: func(t *testing.T, cfg server.Config) {
				assert.True(t, cfg.CORSEnabled)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
			},
		},
		{
			name: "performance and auth",
			args: []string{"--auth", "--auth-header", "X-Token", "--rate-limit", "0", "--cache-ttl", "30s", "--metrics=false"},
			check: func(t *testing.T, cfg server.Config) {
				assert.True(t, cfg.AuthEnabled)
				assert.Equal(t, "X-Token", cfg.AuthHeader)
				assert.Equal(t, 0, cfg.RateLimit)
				assert.Equal(t, 30*time.Second, cfg.CacheTTL)
				assert.False(t, cfg.MetricsEnabled)
			},
		},
		{name: "port out of range", args: []string{"--port", "70000"}, wantErr: "invalid port"},
		{name: "zero cache ttl", args: []string{"--cache-ttl", "0s"}, wantErr: "invalid cache TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, settings, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_DefaultsWithoutSettings(t *testing.T) {
	cfg, err := parse(t, application.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServe_GracefulShutdown(t *testing.T) {
	port := freePort(t)
	cmd := NewCommand(&appmock.Mock{})
	cmd.SetArgs([]string{"--host", "127.0.0.1", "--port", strconv.Itoa(port)})
	var out bytes.Buffer
	cmd.SetOut(&out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	client := &http.Client{Transport: &http.Transport{}}
	defer client.CloseIdleConnections()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/health"
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
	client.CloseIdleConnections()
	assert.Contains(t, out.String(), "Serving jokeraudit API on http://127.0.0.1:"+strconv.Itoa(port)+"/api/v1")
}
