package handler

import (
	"net/http"

	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventsvc "github.com/JacobHeater/upsign/module/event/service"
	"github.com/JacobHeater/upsign/service/realtime"

	"github.com/gin-gonic/gin"
)

// JoinEvent marks the caller as attending. The change is pushed globally;
// clients filter on eventId.
func (h *Handler) JoinEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	userID := midsec.UserID(c)
	att, err := eventsvc.AddAttendee(c.Request.Context(), eventID, userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventAttendeeAdded, gin.H{"eventId": eventID, "userId": userID})
	c.JSON(http.StatusCreated, att)
}

func (h *Handler) ListAttendees(c *gin.Context) {
	out, err := eventsvc.ListAttendees(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendees": out})
}

func (h *Handler) RemoveAttendee(c *gin.Context) {
	eventID := c.Param("eventId")
	userID := c.Param("userId")
	if err := eventsvc.RemoveAttendee(c.Request.Context(), midsec.UserID(c), eventID, userID); err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventAttendeeRemoved, gin.H{"eventId": eventID, "userId": userID})
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) JoinSegment(c *gin.Context) {
	eventID := c.Param("eventId")
	segmentID := c.Param("segmentId")
	userID := midsec.UserID(c)
	if err := eventsvc.JoinSegment(c.Request.Context(), eventID, segmentID, userID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": true})
}

func (h *Handler) LeaveSegment(c *gin.Context) {
	eventID := c.Param("eventId")
	segmentID := c.Param("segmentId")
	userID := midsec.UserID(c)
	if err := eventsvc.LeaveSegment(c.Request.Context(), eventID, segmentID, userID); err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventSegmentAttendeeLeft, gin.H{
		"eventId":   eventID,
		"segmentId": segmentID,
		"userId":    userID,
	})
	c.JSON(http.StatusOK, gin.H{"left": true})
}
