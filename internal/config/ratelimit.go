package config

import "time"

// RateLimitConfig drives the Redis token bucket.  Capacity tokens refill at
// RefillTokens per RefillInterval; idle buckets expire after TTL.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool

    // AuthCapacity sizes the separate /v1/auth bucket.
    AuthCapacity int
}

func LoadRateLimitConfig() RateLimitConfig {
    rl := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "outdoor:rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
        AuthCapacity:   envInt("RATE_LIMIT_AUTH_CAPACITY", 10),
    }
    // RATE_LIMIT_BURST and RATE_LIMIT_REFILL_EVERY are shorthands kept for
    // older deployments.
    if burst := envInt("RATE_LIMIT_BURST", -1); burst > 0 {
        rl.Capacity = burst
    }
    if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        rl.RefillTokens, rl.RefillInterval = 1, every
    }
    return rl.normalized()
}

// ForAuth derives the stricter bucket used on /v1/auth.  Keys get their own
// prefix so both buckets can coexist for the same client.
func (rl RateLimitConfig) ForAuth() RateLimitConfig {
    auth := rl
    auth.Capacity = rl.AuthCapacity
    auth.KeyStrategy = "ip_route"
    auth.Prefix = rl.Prefix + ":auth"
    return auth.normalized()
}

func (rl RateLimitConfig) normalized() RateLimitConfig {
    rl.Capacity = max(rl.Capacity, 1)
    rl.RefillTokens = max(rl.RefillTokens, 1)
    rl.AuthCapacity = max(rl.AuthCapacity, 1)
    if rl.RefillInterval <= 0 {
        rl.RefillInterval = time.Second
    }
    // a bucket must outlive a few refills or it resets to full on every hit
    rl.TTL = max(rl.TTL, 5*rl.RefillInterval)
    return rl
}
