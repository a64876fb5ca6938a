package handler

import (
	"net/http"

	mid "github.com/JacobHeater/upsign/middleware"
	"github.com/JacobHeater/upsign/service/realtime"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/gin-gonic/gin"
)

// Handler serves the event REST routes. It holds the realtime hub so every
// persisted mutation can be pushed to connected clients.
type Handler struct {
	hub *realtime.Hub
}

func New(hub *realtime.Hub) *Handler {
	return &Handler{hub: hub}
}

// respondErr maps coded errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	switch {
	case errs.ErrNotFound.Is(err):
		c.JSON(http.StatusNotFound, errs.ErrNotFound)
	case errs.ErrNoPermission.Is(err):
		c.JSON(http.StatusForbidden, errs.ErrNoPermission)
	case errs.ErrDuplicate.Is(err):
		c.JSON(http.StatusConflict, errs.ErrDuplicate)
	case errs.ErrArgs.Is(err):
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
	default:
		c.JSON(http.StatusInternalServerError, errs.ErrInternal)
	}
}

// RegisterRoutes mounts every event endpoint; all of them require auth.
func (h *Handler) RegisterRoutes(r gin.IRoutes, authOpt mid.RouteOpt) {
	mid.POST(r, "/api/events", h.CreateEvent, authOpt)
	mid.GET(r, "/api/events", h.ListEvents, authOpt)
	mid.GET(r, "/api/events/:eventId", h.GetEvent, authOpt)
	mid.PUT(r, "/api/events/:eventId", h.UpdateEvent, authOpt)
	mid.DELETE(r, "/api/events/:eventId", h.DeleteEvent, authOpt)

	mid.POST(r, "/api/events/:eventId/segments", h.CreateSegment, authOpt)
	mid.GET(r, "/api/events/:eventId/segments", h.ListSegments, authOpt)
	mid.PUT(r, "/api/events/:eventId/segments/:segmentId", h.UpdateSegment, authOpt)
	mid.DELETE(r, "/api/events/:eventId/segments/:segmentId", h.DeleteSegment, authOpt)

	mid.POST(r, "/api/events/:eventId/attendees", h.JoinEvent, authOpt)
	mid.GET(r, "/api/events/:eventId/attendees", h.ListAttendees, authOpt)
	mid.DELETE(r, "/api/events/:eventId/attendees/:userId", h.RemoveAttendee, authOpt)
	mid.POST(r, "/api/events/:eventId/segments/:segmentId/attendees", h.JoinSegment, authOpt)
	mid.DELETE(r, "/api/events/:eventId/segments/:segmentId/attendees", h.LeaveSegment, authOpt)

	mid.POST(r, "/api/events/:eventId/invitations", h.CreateInvitation, authOpt)
	mid.GET(r, "/api/events/:eventId/invitations", h.ListInvitations, authOpt)
	mid.GET(r, "/api/invitations", h.ListMyInvitations, authOpt)
	mid.POST(r, "/api/invitations/:invitationId/rsvp", h.Rsvp, authOpt)

	mid.POST(r, "/api/events/:eventId/contributions", h.CreateContribution, authOpt)
	mid.GET(r, "/api/events/:eventId/contributions", h.ListContributions, authOpt)
	mid.PUT(r, "/api/contributions/:contributionId", h.UpdateContribution, authOpt)
	mid.DELETE(r, "/api/contributions/:contributionId", h.DeleteContribution, authOpt)

	mid.GET(r, "/api/events/:eventId/messages", h.ListChatMessages, authOpt)
	mid.POST(r, "/api/events/:eventId/messages", h.PostChatMessage, authOpt)
}
