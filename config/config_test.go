package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chdir is t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadConfigFromEnvOnly(t *testing.T) {
	// No config file anywhere near the working directory; everything must
	// come from the environment and the registered defaults.
	chdir(t, t.TempDir())
	t.Setenv("CAL_API_KEY", "cal_live_abc123")
	t.Setenv("MP_ACCESS_TOKEN", "APP_USR-token")
	t.Setenv("WA_ACCESS_TOKEN", "EAAG-token")
	t.Setenv("WA_VERIFY_TOKEN", "vt-secret")

	LoadConfig()

	assert.Equal(t, "cal_live_abc123", AppConfig.CalAPIKey)
	assert.Equal(t, "APP_USR-token", AppConfig.MPAccessToken)
	assert.Equal(t, "EAAG-token", AppConfig.WAAccessToken)
	assert.Equal(t, "vt-secret", AppConfig.WAVerifyToken)

	assert.Equal(t, "3008", AppConfig.AppPort)
	assert.Equal(t, "https://api.cal.com/api/v1", AppConfig.CalAPIURL)
	assert.Equal(t, "America/Argentina/Buenos_Aires", AppConfig.Timezone)
	assert.False(t, IsProduction())
}

func TestEnvOverridesDefault(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CAL_API_KEY", "cal_live_abc123")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "production")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.True(t, IsProduction())
}
