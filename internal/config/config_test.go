package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinkdns/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 53, cfg.Server.Port)
	assert.Equal(t, "6.6.6.6", cfg.Answer.Address)
	assert.Equal(t, uint32(0), cfg.Answer.TTL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.False(t, cfg.API.Enabled)
}

func TestValidate_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 65536, 100000} {
		cfg := config.Default()
		cfg.Server.Port = port
		assert.Error(t, cfg.Validate(), "port %d", port)
	}

	cfg := config.Default()
	cfg.Server.Port = 1053
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AnswerAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "valid IPv4", address: "192.0.2.7"},
		{name: "empty falls back to default", address: ""},
		{name: "not an IP", address: "not-an-ip", wantErr: true},
		{name: "IPv6 rejected", address: "2001:db8::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Answer.Address = tt.address
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_Normalization(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = ""
	cfg.Logging.Level = "debug"
	cfg.Logging.StructuredFormat = ""
	cfg.API.Host = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.StructuredFormat)
	assert.Equal(t, "127.0.0.1", cfg.API.Host)
}

func TestValidate_APIPortOnlyWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.API.Enabled = false
	cfg.API.Port = 0
	assert.NoError(t, cfg.Validate(), "disabled API ignores its port")

	cfg.API.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.API.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestAnswerConfig_IPv4(t *testing.T) {
	a := config.AnswerConfig{Address: "6.6.6.6"}
	octets, err := a.IPv4()
	require.NoError(t, err)
	assert.Equal(t, [4]byte{6, 6, 6, 6}, octets)

	_, err = config.AnswerConfig{Address: "::1"}.IPv4()
	assert.Error(t, err)
}
