package main

import (
	"flag"
	"fmt"
	"os"

	"sinkdns/internal/config"
	"sinkdns/internal/logging"
	"sinkdns/internal/server"
)

func main() {
	var (
		host     = flag.String("host", "", "Override bind host (default 127.0.0.1)")
		port     = flag.Int("port", 0, "Override bind port (default 53; use a high port for unprivileged testing)")
		answer   = flag.String("answer", "", "IPv4 address returned for every A query (default 6.6.6.6)")
		ttl      = flag.Int("ttl", -1, "Answer TTL in seconds (default 0)")
		apiPort  = flag.Int("api-port", 0, "Enable the management API on this port")
		apiKey   = flag.String("api-key", "", "API key for the management API (X-API-Key header)")
		jsonLogs = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug    = flag.Bool("debug", false, "Enable debug logging (logs every handled datagram)")
	)
	flag.Parse()

	cfg := config.Default()
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *answer != "" {
		cfg.Answer.Address = *answer
	}
	if *ttl >= 0 {
		cfg.Answer.TTL = uint32(*ttl)
	}
	if *apiPort != 0 {
		cfg.API.Enabled = true
		cfg.API.Port = *apiPort
		cfg.API.APIKey = *apiKey
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
	})
	logger.Info("sinkdns starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"answer", cfg.Answer.Address,
		"ttl", cfg.Answer.TTL,
	)

	runner := server.NewRunner(logger)
	if err := runner.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
