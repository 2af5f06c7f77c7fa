package config

// Redis backs the distributed rate limiter and the public catalog response
// cache.  Both degrade to pass-through when the client is nil, so a Redis
// outage at start-up never keeps the API from serving.

import (
    "context"
    "crypto/tls"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog/log"
)

// RedisConfig is read from REDIS_*.  REDIS_HOST+REDIS_PORT win over the
// REDIS_ADDR shorthand.
type RedisConfig struct {
    Disabled    bool
    Addr        string
    Password    string
    DB          int
    TLS         bool
    PingTimeout time.Duration
}

func LoadRedisConfig() RedisConfig {
    rc := RedisConfig{
        Disabled:    envBool("REDIS_DISABLED", false),
        Addr:        envStr("REDIS_ADDR", "localhost:6379"),
        Password:    os.Getenv("REDIS_PASSWORD"),
        DB:          envInt("REDIS_DB", 0),
        TLS:         envBool("REDIS_TLS", false),
        PingTimeout: envDur("REDIS_PING_TIMEOUT", 2*time.Second),
    }
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        rc.Addr = host + ":" + port
    }
    return rc
}

func (rc RedisConfig) options() *redis.Options {
    opts := &redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB}
    if rc.TLS {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return opts
}

// NewRedisClient returns nil when Redis is disabled or does not answer a ping
// within PingTimeout.
func NewRedisClient(ctx context.Context, rc RedisConfig) *redis.Client {
    if rc.Disabled {
        log.Info().Msg("redis disabled, rate limiting and caching off")
        return nil
    }
    client := redis.NewClient(rc.options())

    ctx, cancel := context.WithTimeout(ctx, rc.PingTimeout)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Warn().Err(err).Str("addr", rc.Addr).Msg("redis unavailable, rate limiting and caching disabled")
        _ = client.Close()
        return nil
    }
    return client
}
