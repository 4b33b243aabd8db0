package middleware

import (
	"net/http"
	"strings"

	"rigforge/backend/common"
	"rigforge/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func authHelper(c *gin.Context, minRole int) {
	session := sessions.Default(c)
	username := session.Get("username")
	role := session.Get("role")
	id := session.Get("id")
	status := session.Get("status")
	if username == nil {
		// No session; fall back to a bearer token.
		claims := bearerClaims(c)
		if claims == nil {
			return
		}
		username = claims.Username
		role = claims.Role
		id = claims.UserID
		status = common.UserStatusEnabled
	}
	statusInt, ok := status.(int)
	roleInt, roleOk := role.(int)
	if !ok || !roleOk {
		common.RespErrorStr(c, http.StatusUnauthorized, "session is invalid, please log in again")
		c.Abort()
		return
	}
	if statusInt == common.UserStatusDisabled {
		common.RespErrorStr(c, http.StatusForbidden, "the user is banned")
		c.Abort()
		return
	}
	if roleInt < minRole {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
		return
	}
	c.Set("username", username)
	c.Set("role", role)
	c.Set("user_id", id)
	c.Next()
}

// bearerClaims validates the Authorization header and returns its claims, or
// aborts the request and returns nil.
func bearerClaims(c *gin.Context) *service.Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		common.RespErrorStr(c, http.StatusUnauthorized, "not logged in and no token provided")
		c.Abort()
		return nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
		c.Abort()
		return nil
	}
	tokenString := parts[1]
	claims, err := service.ValidateToken(tokenString)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		c.Abort()
		return nil
	}
	if service.IsTokenBlacklisted(c, tokenString) {
		common.RespErrorStr(c, http.StatusUnauthorized, "token has been revoked")
		c.Abort()
		return nil
	}
	return claims
}

func UserAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleCommonUser)
	}
}

func AdminAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleAdminUser)
	}
}

// JWTAuth accepts bearer tokens only, for clients that do not carry the
// session cookie.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := bearerClaims(c)
		if claims == nil {
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}
