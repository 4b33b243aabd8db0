package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"rigforge/backend/common"
	"rigforge/backend/model"
	"rigforge/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var loginRequest LoginRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&loginRequest); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if loginRequest.Username == "" || loginRequest.Password == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "username or password is empty")
		return
	}
	user := model.User{
		Username: loginRequest.Username,
		Password: loginRequest.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		return
	}
	setupLogin(&user, c)
}

// setup session & tokens and then return user info
func setupLogin(user *model.User, c *gin.Context) {
	session := sessions.Default(c)
	session.Set("username", user.Username)
	session.Set("role", user.Role)
	session.Set("id", user.ID)
	session.Set("status", user.Status)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}
	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate refresh token", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func Logout(c *gin.Context) {
	// revoke the bearer token, if one was presented
	authHeader := c.GetHeader("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
		if err := service.BlacklistToken(c, parts[1]); err != nil {
			common.SysError("failed to blacklist token: " + err.Error())
		}
	}
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}
	common.RespSuccessStr(c, "logged out")
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=20"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" binding:"omitempty,email"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	taken, err := model.IsUsernameTaken(req.Username)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to check username", err)
		return
	}
	if taken {
		common.RespErrorStr(c, http.StatusOK, "username is already taken")
		return
	}
	user := model.User{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	if user.DisplayName == "" {
		user.DisplayName = req.Username
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}
	common.RespSuccessStr(c, "registered")
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	claims, err := service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "user not found")
		return
	}
	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	common.RespSuccess(c, gin.H{"access_token": accessToken})
}

func GetSelf(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		common.RespErrorStr(c, http.StatusUnauthorized, "user_id not found in context")
		return
	}
	id, ok := userID.(int64)
	if !ok {
		common.RespErrorStr(c, http.StatusUnauthorized, "invalid user_id type")
		return
	}
	user, err := model.GetUserById(id)
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	common.RespSuccess(c, user)
}
