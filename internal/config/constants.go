package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// The feed only changes when box office staff publish sessions, so a
	// relaxed poll interval is plenty.
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultProvider     = "drafthouse"
	defaultMetricsPort  = "9090"
)
