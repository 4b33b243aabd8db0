package middleware

import (
	"net/http"
	"time"

	"rigforge/backend/common"

	"github.com/gin-gonic/gin"
)

var inMemoryRateLimiter common.InMemoryRateLimiter

func redisRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	key := "rateLimit:" + mark + ":" + c.ClientIP()
	count, err := common.RDB.Incr(c, key).Result()
	if err != nil {
		// fail open rather than blocking all traffic on a Redis hiccup
		common.SysError("rate limiter: " + err.Error())
		c.Next()
		return
	}
	if count == 1 {
		common.RDB.Expire(c, key, time.Duration(duration)*time.Second)
	}
	if count > int64(maxRequestNum) {
		common.RespErrorStr(c, http.StatusTooManyRequests, "too many requests")
		c.Abort()
		return
	}
	c.Next()
}

func memoryRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	key := mark + c.ClientIP()
	if !inMemoryRateLimiter.Request(key, maxRequestNum, duration) {
		common.RespErrorStr(c, http.StatusTooManyRequests, "too many requests")
		c.Abort()
		return
	}
	c.Next()
}

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	if common.RedisEnabled {
		return func(c *gin.Context) {
			redisRateLimiter(c, maxRequestNum, duration, mark)
		}
	}
	inMemoryRateLimiter.Init(time.Duration(duration) * time.Second)
	return func(c *gin.Context) {
		memoryRateLimiter(c, maxRequestNum, duration, mark)
	}
}

// GlobalAPIRateLimit bounds all /api traffic per client IP.
func GlobalAPIRateLimit() func(c *gin.Context) {
	return rateLimitFactory(240, 60, "GA")
}

// CriticalRateLimit guards sensitive endpoints such as login.
func CriticalRateLimit() func(c *gin.Context) {
	return rateLimitFactory(20, 60, "CT")
}

// GlobalWebRateLimit bounds static asset traffic.
func GlobalWebRateLimit() func(c *gin.Context) {
	return rateLimitFactory(600, 60, "GW")
}
