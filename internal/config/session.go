package config

import "time"

const (
	envSessionBackend  = "SESSION_BACKEND"
	envSessionKey      = "SESSION_CACHE_KEY"
	envSessionTTL      = "SESSION_CACHE_TTL"
	envDefaultMarket   = "DEFAULT_MARKET"
	envRequiredSeats   = "REQUIRED_SEATS"
	envMinimumRowLabel = "MINIMUM_ROW_LABEL"

	// SessionBackendMemory keeps the show cache in process memory.
	SessionBackendMemory = "memory"
	// SessionBackendRedis shares the show cache through Redis.
	SessionBackendRedis = "redis"

	// Market 0000 is Austin, where the pancake screenings live.
	defaultMarket     = "0000"
	defaultSessionKey = "pancake:session"
	defaultSessionTTL = 30 * Duration(time.Minute)
)

// SessionConfig controls the session-scoped cache and the seat-probe search
// parameters handed down from the UI layer.
type SessionConfig struct {
	Backend         string
	CacheKey        string
	CacheTTL        Duration
	DefaultMarket   string
	RequiredSeats   int
	MinimumRowLabel string
}

func loadSession() SessionConfig {
	return SessionConfig{
		Backend:         envOrDefault(envSessionBackend, SessionBackendMemory),
		CacheKey:        envOrDefault(envSessionKey, defaultSessionKey),
		CacheTTL:        durationEnvOrDefault(envSessionTTL, defaultSessionTTL),
		DefaultMarket:   envOrDefault(envDefaultMarket, defaultMarket),
		RequiredSeats:   intEnvOrDefault(envRequiredSeats, 2),
		MinimumRowLabel: envOrDefault(envMinimumRowLabel, ""),
	}
}
