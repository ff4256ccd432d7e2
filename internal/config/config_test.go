package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress     string
		orderURL       string
		paymentURL     string
		settingsURL    string
		requestTimeout time.Duration
		logLevel       string
		sessionIdle    time.Duration
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				runAddress:     "localhost:8080",
				requestTimeout: 10 * time.Second,
				logLevel:       "info",
				sessionIdle:    30 * time.Minute,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":          "localhost:9999",
				"ORDER_SERVICE_URL":    "http://orders.local/orders",
				"PAYMENT_SERVICE_URL":  "http://payments.local/payment",
				"SETTINGS_SERVICE_URL": "http://settings.local/settings",
				"REQUEST_TIMEOUT":      "3s",
				"LOG_LEVEL":            "debug",
			},
			flags: []string{},
			want: want{
				runAddress:     "localhost:9999",
				orderURL:       "http://orders.local/orders",
				paymentURL:     "http://payments.local/payment",
				settingsURL:    "http://settings.local/settings",
				requestTimeout: 3 * time.Second,
				logLevel:       "debug",
				sessionIdle:    30 * time.Minute,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-o", "orders:8081",
				"-p", "payments:8082",
				"-s", "settings:8083",
				"-t", "1500ms",
				"-l", "warn",
			},
			want: want{
				runAddress:     "localhost:7777",
				orderURL:       "orders:8081",
				paymentURL:     "payments:8082",
				settingsURL:    "settings:8083",
				requestTimeout: 1500 * time.Millisecond,
				logLevel:       "warn",
				sessionIdle:    30 * time.Minute,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS":       "env:9000",
				"ORDER_SERVICE_URL": "env-orders:8081",
				"REQUEST_TIMEOUT":   "7s",
			},
			flags: []string{
				"-a", "flag:8000",
				"-o", "flag-orders:8080",
				"-t", "2s",
			},
			want: want{
				runAddress:     "env:9000",
				orderURL:       "env-orders:8081",
				requestTimeout: 7 * time.Second,
				logLevel:       "info",
				sessionIdle:    30 * time.Minute,
			},
		},
		{
			name:  "zero idle timeout falls back to default",
			env:   map[string]string{},
			flags: []string{"-i", "0"},
			want: want{
				runAddress:     "localhost:8080",
				requestTimeout: 10 * time.Second,
				logLevel:       "info",
				sessionIdle:    30 * time.Minute,
			},
		},
		{
			name:  "idle timeout from env",
			env:   map[string]string{"SESSION_IDLE_TIMEOUT": "5m"},
			flags: []string{"-i", "1m"},
			want: want{
				runAddress:     "localhost:8080",
				requestTimeout: 10 * time.Second,
				logLevel:       "info",
				sessionIdle:    5 * time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			t.Setenv("CONFIG_ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.orderURL, cfg.OrderServiceURL)
			assert.Equal(t, tt.want.paymentURL, cfg.PaymentServiceURL)
			assert.Equal(t, tt.want.settingsURL, cfg.SettingsServiceURL)
			assert.Equal(t, tt.want.requestTimeout, cfg.RequestTimeout)
			assert.Equal(t, tt.want.logLevel, cfg.LogLevel)
			assert.Equal(t, tt.want.sessionIdle, cfg.SessionIdleTimeout)
		})
	}
}

func TestParseConfig_EnvFile(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = []string{"test"}

	path := filepath.Join(t.TempDir(), "store.env")
	content := "SETTINGS_SERVICE_URL=http://file.local/settings\nLOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_ENV_PATH", path)
	t.Setenv("LOG_LEVEL", "debug")
	// t.Setenv восстановит переменную, которую выставит godotenv
	t.Setenv("SETTINGS_SERVICE_URL", "")
	require.NoError(t, os.Unsetenv("SETTINGS_SERVICE_URL"))

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://file.local/settings", cfg.SettingsServiceURL)
	assert.Equal(t, "debug", cfg.LogLevel, "real environment wins over the file")
}
