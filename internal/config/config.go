// Package config defines the immutable process configuration for the
// sinkhole: where to listen, what address to answer with, logging, and the
// optional management API. Configuration is assembled once at startup from
// defaults and command-line overrides; nothing mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Default answer values match the original deployment posture: loopback
// bind, the standard DNS port, a TTL of zero (answers are only good for the
// transaction in progress), and 6.6.6.6 as the served address.
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 53
	DefaultAddress = "6.6.6.6"
	DefaultTTL     = 0
)

// ServerConfig contains the UDP listener settings.
type ServerConfig struct {
	Host string `json:"host"` // local interface/address to bind
	Port int    `json:"port"` // standard DNS port; override for unprivileged testing
}

// AnswerConfig contains the fixed answer policy: the 4-octet address
// returned for every A query and the TTL stamped on it.
type AnswerConfig struct {
	Address string `json:"address"`
	TTL     uint32 `json:"ttl"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string `json:"level"`
	Structured       bool   `json:"structured"`
	StructuredFormat string `json:"structured_format"`
	IncludePID       bool   `json:"include_pid"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
	APIKey  string `json:"api_key,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Answer  AnswerConfig  `json:"answer"`
	Logging LoggingConfig `json:"logging"`
	API     APIConfig     `json:"api"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Answer: AnswerConfig{Address: DefaultAddress, TTL: DefaultTTL},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
		},
		API: APIConfig{Host: "127.0.0.1", Port: 8080},
	}
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}

	if cfg.Answer.Address == "" {
		cfg.Answer.Address = DefaultAddress
	}
	if _, err := cfg.Answer.IPv4(); err != nil {
		return err
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}
	return nil
}

// IPv4 parses the answer address into its four wire octets.
func (a AnswerConfig) IPv4() ([4]byte, error) {
	ip := net.ParseIP(a.Address)
	if ip == nil {
		return [4]byte{}, fmt.Errorf("answer.address %q is not a valid IP address", a.Address)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return [4]byte{}, fmt.Errorf("answer.address %q is not an IPv4 address", a.Address)
	}
	var out [4]byte
	copy(out[:], ip4)
	return out, nil
}
