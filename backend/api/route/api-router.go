package route

import (
	"rigforge/backend/api/handler"
	"rigforge/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		// Public routes (no authentication required)
		apiRouter.GET("/status", handler.GetStatus)

		// Authentication routes
		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoutes.POST("/logout", middleware.CriticalRateLimit(), handler.Logout)
		}

		// User routes that require authentication
		userRoute := apiRouter.Group("/user")
		userRoute.Use(middleware.JWTAuth())
		{
			userRoute.GET("/self", handler.GetSelf)
		}

		// Build configurator routes; scoped to the caller's session, no login
		// required.
		rigRoute := apiRouter.Group("/rig")
		{
			rigRoute.GET("", handler.GetRig)
			rigRoute.PUT("/base_model", handler.SetRigBaseModel)
			rigRoute.POST("/components", handler.AddRigComponent)
			rigRoute.PUT("/components/:index", handler.UpdateRigComponent)
			rigRoute.DELETE("/components/:index", handler.RemoveRigComponent)
			rigRoute.POST("/submit", handler.SubmitRig)
			rigRoute.POST("/save", handler.SaveRig)
			rigRoute.GET("/saved", handler.GetSavedRig)
			rigRoute.GET("/submissions", handler.GetMySubmissions)
		}

		// Admin-only endpoints
		submissionRoute := apiRouter.Group("/submission")
		submissionRoute.Use(middleware.AdminAuth())
		{
			submissionRoute.GET("/", handler.GetAllSubmissions)
		}
	}
}
