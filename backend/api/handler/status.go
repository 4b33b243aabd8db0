package handler

import (
	"rigforge/backend/common"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":         common.Version,
		"start_time":      common.StartTime,
		"redis_enabled":   common.RedisEnabled,
		"active_sessions": ActiveSessions(),
	})
}
