package handler

import (
	"net/http"
	"strconv"

	"rigforge/backend/common"
	"rigforge/backend/model"

	"github.com/gin-gonic/gin"
)

// GetAllSubmissions lists saved configurations across all sessions, newest
// first. Admin only.
func GetAllSubmissions(c *gin.Context) {
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	submissions, err := model.GetAllSubmissions(p*common.ItemsPerPage, common.ItemsPerPage)
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	common.RespSuccess(c, submissions)
}

// GetMySubmissions lists the saved configurations of the caller's session.
func GetMySubmissions(c *gin.Context) {
	submissions, err := model.GetSubmissionsForSession(rigSessionID(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusOK, err.Error())
		return
	}
	common.RespSuccess(c, submissions)
}
