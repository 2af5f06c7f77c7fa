package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog/log"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = echo.HeaderXRequestID

// RequestLogger tags each request with an id (the client's X-Request-ID or a
// fresh UUID), puts a child zerolog logger carrying it in the request
// context, and logs one line per request once the handler returns.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            req := c.Request()

            rid := req.Header.Get(HeaderRequestID)
            if rid == "" {
                rid = uuid.NewString()
            }
            c.Response().Header().Set(HeaderRequestID, rid)

            logger := log.With().Str("request_id", rid).Logger()
            c.SetRequest(req.WithContext(logger.WithContext(req.Context())))

            err := next(c)
            if err != nil {
                // let echo write the error response so the status below is final
                c.Error(err)
            }

            status := c.Response().Status
            ev := logger.Info()
            if status >= 500 {
                ev = logger.Error().Err(err)
            } else if status >= 400 {
                ev = logger.Warn()
            }
            ev.Str("method", req.Method).
                Str("route", c.Path()).
                Str("path", req.URL.Path).
                Int("status", status).
                Dur("latency", time.Since(start)).
                Str("ip", c.RealIP()).
                Msg("request")
            return nil
        }
    }
}
