package route

import (
	"embed"

	"rigforge/backend/api/middleware"
	"rigforge/backend/common"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine, buildFS embed.FS, indexPage []byte) {
	if *common.EnableGzip {
		route.Use(middleware.GzipDecodeMiddleware())
		route.Use(middleware.GzipEncodeMiddleware())
	}

	SetApiRouter(route)
	setWebRouter(route, buildFS, indexPage)
}
