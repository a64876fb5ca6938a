package handler

import (
	"net/http"
	"strconv"
	"time"

	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventsvc "github.com/JacobHeater/upsign/module/event/service"
	"github.com/JacobHeater/upsign/service/realtime"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/gin-gonic/gin"
)

type chatBody struct {
	Message string `json:"message" binding:"required"`
}

// ListChatMessages pages through event chat history, newest first.
// Query params: before (RFC3339), limit.
func (h *Handler) ListChatMessages(c *gin.Context) {
	var before time.Time
	if v := c.Query("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errs.ErrArgs)
			return
		}
		before = t
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := eventsvc.ListChatMessages(c.Request.Context(), c.Param("eventId"), before, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

// PostChatMessage persists a chat line and relays it to the event room. The
// live socket path stays fire-and-forget; this is the durable variant.
func (h *Handler) PostChatMessage(c *gin.Context) {
	var body chatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	eventID := c.Param("eventId")
	userID := midsec.UserID(c)
	msg, err := eventsvc.SaveChatMessage(c.Request.Context(), eventID, userID, body.Message)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToRoom(eventID, realtime.EventNewMessage, gin.H{
		"userId":    userID,
		"message":   body.Message,
		"timestamp": msg.SentAt,
	}, "")
	c.JSON(http.StatusCreated, msg)
}
