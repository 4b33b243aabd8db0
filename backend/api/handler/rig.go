package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rigforge/backend/builder"
	"rigforge/backend/common"
	"rigforge/backend/library/blobstore"
	"rigforge/backend/library/workshop"
	"rigforge/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	rigManager   *workshop.Manager
	rigBlobStore blobstore.Store
)

// Setup wires the handlers to their collaborators. Called once from main and
// from test setups; handlers stay plain functions the router can reference.
func Setup(manager *workshop.Manager, bs blobstore.Store) {
	rigManager = manager
	rigBlobStore = bs
}

// ActiveSessions reports how many sessions currently hold a configuration.
func ActiveSessions() int {
	if rigManager == nil {
		return 0
	}
	return rigManager.Len()
}

// rigSessionID returns the stable id of the caller's build session, minting
// one into the session cookie on first use.
func rigSessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if v, ok := session.Get("rig_session").(string); ok && v != "" {
		return v
	}
	id := uuid.New().String()
	session.Set("rig_session", id)
	if err := session.Save(); err != nil {
		common.SysError("failed to save session: " + err.Error())
	}
	return id
}

func rigStore(c *gin.Context) *builder.Store {
	return rigManager.Store(rigSessionID(c))
}

// rigView is what the rendering layer needs to draw the whole form: the
// current configuration plus the field errors of the last failed submit.
type rigView struct {
	Configuration builder.Configuration `json:"configuration"`
	Errors        builder.FieldErrors   `json:"errors"`
}

func GetRig(c *gin.Context) {
	store := rigStore(c)
	common.RespSuccess(c, rigView{
		Configuration: store.Configuration(),
		Errors:        store.LastErrors(),
	})
}

type valueRequest struct {
	Value string `json:"value"`
}

func SetRigBaseModel(c *gin.Context) {
	var req valueRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request body")
		return
	}
	store := rigStore(c)
	store.SetBaseModel(req.Value)
	common.RespSuccess(c, store.Configuration())
}

func AddRigComponent(c *gin.Context) {
	store := rigStore(c)
	index := store.AppendComponent()
	common.RespSuccess(c, gin.H{
		"index":         index,
		"configuration": store.Configuration(),
	})
}

func componentIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid component index")
		return 0, false
	}
	return index, true
}

func RemoveRigComponent(c *gin.Context) {
	index, ok := componentIndex(c)
	if !ok {
		return
	}
	store := rigStore(c)
	if err := store.RemoveComponent(index); err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	common.RespSuccess(c, store.Configuration())
}

type updateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func UpdateRigComponent(c *gin.Context) {
	index, ok := componentIndex(c)
	if !ok {
		return
	}
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	store := rigStore(c)
	err := store.UpdateComponentField(index, req.Field, req.Value)
	switch {
	case errors.Is(err, builder.ErrIndexOutOfRange):
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, builder.ErrUnknownField):
		common.RespErrorStr(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		common.RespErrorStr(c, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespSuccess(c, store.Configuration())
}

func SubmitRig(c *gin.Context) {
	store := rigStore(c)
	snap, err := store.Submit()
	if err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			common.RespErrorWithData(c, http.StatusOK, "configuration is invalid", verr.Fields)
			return
		}
		common.RespErrorStr(c, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespSuccess(c, snap)
}

func SaveRig(c *gin.Context) {
	sessionID := rigSessionID(c)
	store := rigManager.Store(sessionID)
	key := common.SubmissionBlobKey(sessionID)
	if err := store.Save(c.Request.Context(), rigBlobStore, key); err != nil {
		if errors.Is(err, builder.ErrNoSubmission) {
			common.RespErrorStr(c, http.StatusOK, "submit the configuration before saving")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to save configuration", err)
		return
	}

	// History row is best effort; the blob write above is the canonical save.
	if snap := store.LastSubmitted(); snap != nil {
		if blob, err := json.Marshal(snap); err != nil {
			common.SysError("failed to serialize submission history: " + err.Error())
		} else {
			sub := &model.Submission{
				SessionID:      sessionID,
				BaseModelName:  snap.BaseModel,
				ComponentCount: len(snap.Components),
				TotalPrice:     snap.TotalPrice,
				Blob:           string(blob),
			}
			if err := model.CreateSubmission(sub); err != nil {
				common.SysError("failed to record submission history: " + err.Error())
			}
		}
	}
	common.RespSuccessStr(c, "configuration saved")
}

func GetSavedRig(c *gin.Context) {
	sessionID := rigSessionID(c)
	blob, err := rigBlobStore.Read(c.Request.Context(), common.SubmissionBlobKey(sessionID))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			common.RespErrorStr(c, http.StatusOK, "no saved configuration")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to read saved configuration", err)
		return
	}
	common.RespSuccess(c, json.RawMessage(blob))
}
