package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/drafts"
	"github.com/vnkhanh/service-survey/middleware"
)

const maxDraftBytes = 64 << 10

func draftKey(c *gin.Context) (string, bool) {
	svc, ok := loadService(c)
	if !ok {
		return "", false
	}
	return drafts.Key(svc.ID, middleware.RespondentHash(c)), true
}

// GET /api/services/:id/draft
func GetDraft(c *gin.Context) {
	key, ok := draftKey(c)
	if !ok {
		return
	}
	payload, err := drafts.NewGormStore(config.DB).Get(c.Request.Context(), key)
	if errors.Is(err, drafts.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No saved progress"})
		return
	}
	if err != nil {
		dbError(c, err, "get draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": json.RawMessage(payload)})
}

// PUT /api/services/:id/draft
// Body là một object JSON bất kỳ (thường là {"answers": {...}, "step": n}), ghi đè bản cũ.
func SaveDraft(c *gin.Context) {
	key, ok := draftKey(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDraftBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot read body"})
		return
	}
	if len(body) > maxDraftBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Draft is too large"})
		return
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Draft must be a JSON object"})
		return
	}

	if err := drafts.NewGormStore(config.DB).Put(c.Request.Context(), key, body); err != nil {
		dbError(c, err, "save draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress saved"})
}

// DELETE /api/services/:id/draft
func DeleteDraft(c *gin.Context) {
	key, ok := draftKey(c)
	if !ok {
		return
	}
	if err := drafts.NewGormStore(config.DB).Delete(c.Request.Context(), key); err != nil {
		dbError(c, err, "delete draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress cleared"})
}
