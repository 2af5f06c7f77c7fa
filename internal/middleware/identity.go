package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// callerKey identifies the caller for rate-limit buckets: the user id set by
// JWTAuth, or "anon" on public routes.
func callerKey(c echo.Context) string {
    if uid, ok := c.Get(CtxUserID).(uint64); ok && uid != 0 {
        return strconv.FormatUint(uid, 10)
    }
    return "anon"
}
