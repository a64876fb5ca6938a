package handler

import (
	"net/http"

	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventsvc "github.com/JacobHeater/upsign/module/event/service"
	usersvc "github.com/JacobHeater/upsign/module/user/service"
	"github.com/JacobHeater/upsign/service/realtime"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/gin-gonic/gin"
)

type invitationBody struct {
	Phone string `json:"phone" binding:"required"`
}

type rsvpBody struct {
	Accept bool `json:"accept"`
}

// CreateInvitation invites a phone to the event. invitation-received goes
// out globally; clients filter on the payload's eventId/phone themselves.
func (h *Handler) CreateInvitation(c *gin.Context) {
	var body invitationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	eventID := c.Param("eventId")
	inv, err := eventsvc.CreateInvitation(c.Request.Context(), midsec.UserID(c), eventID, body.Phone)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventInvitationReceived, inv)
	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) ListInvitations(c *gin.Context) {
	out, err := eventsvc.ListInvitations(c.Request.Context(), midsec.UserID(c), c.Param("eventId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": out})
}

// ListMyInvitations returns pending invitations for the caller's phone.
func (h *Handler) ListMyInvitations(c *gin.Context) {
	u, err := usersvc.GetByID(c.Request.Context(), midsec.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	out, err := eventsvc.ListInvitationsForPhone(c.Request.Context(), u.Phone)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": out})
}

func (h *Handler) Rsvp(c *gin.Context) {
	var body rsvpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	userID := midsec.UserID(c)
	u, err := usersvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	inv, err := eventsvc.Rsvp(c.Request.Context(), c.Param("invitationId"), userID, u.Phone, body.Accept)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventInvitationRsvpd, gin.H{
		"eventId":      inv.EventID,
		"invitationId": inv.InvitationID,
		"userId":       userID,
		"status":       inv.Status,
	})
	if body.Accept {
		h.hub.EmitToAll(realtime.EventAttendeeAdded, gin.H{"eventId": inv.EventID, "userId": userID})
	}
	c.JSON(http.StatusOK, inv)
}
