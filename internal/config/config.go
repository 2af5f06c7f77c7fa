package config // package config loads application configuration from environment variables

import (
    "os"
    "strconv"
    "strings"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog/log"
)

// Config holds the core runtime settings.  Each field maps to one
// environment variable; cache, rate limit and queue settings have their
// own loaders because they are optional.
type Config struct {
    Env            string // application environment (development, staging, production)
    Port           string // HTTP port to listen on
    LogLevel       string // zerolog level name, defaults to info
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time-to-live in minutes
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
    AutoMigrate    bool   // apply the embedded schema at start-up
}

// LoadDotenv reads a .env file into the process environment unless
// APP_ENV says production.  A missing file is not an error.
func LoadDotenv() {
    if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
        return
    }
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Warn().Err(err).Msg("could not read .env file")
    }
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing required variables stop the process.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        LogLevel:       envStr("LOG_LEVEL", "info"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"), // empty allowed
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),
        AutoMigrate:    envBool("DB_AUTO_MIGRATE", false),
    }
}

// must retrieves the value of a required environment variable and exits
// when it is unset or empty.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatal().Str("key", key).Msg("missing required env var")
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatal().Str("key", key).Str("value", s).Msg("invalid int env var")
    }
    return n
}
