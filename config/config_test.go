package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"STUDENTS_FILE":   "roster.xlsx",
		"CATEGORY_COLUMN": "Group",
		"PORT":            "9090",
		"REDIS_ADDR":      "127.0.0.1:6379",
		"REDIS_DB":        "8",
		"SESSION_TTL":     "30m",
		"GIN_MODE":        "release",
	}))
	require.NoError(t, err)
	assert.Equal(t, "roster.xlsx", cfg.StudentsFile)
	assert.Equal(t, "Group", cfg.CategoryColumn)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, 8, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":     {"PORT": "http"},
		"redis db": {"REDIS_DB": "x"},
		"db range": {"REDIS_DB": "99"},
		"ttl":      {"SESSION_TTL": "forever"},
		"gin mode": {"GIN_MODE": "loud"},
		"addr":     {"REDIS_ADDR": "no-port"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}
