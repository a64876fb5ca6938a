package handler

import (
	"net/http"

	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventsvc "github.com/JacobHeater/upsign/module/event/service"
	"github.com/JacobHeater/upsign/service/realtime"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateContribution(c *gin.Context) {
	var in eventsvc.ContributionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	con, err := eventsvc.CreateContribution(c.Request.Context(), c.Param("eventId"), midsec.UserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventContributionAdded, con)
	c.JSON(http.StatusCreated, con)
}

func (h *Handler) ListContributions(c *gin.Context) {
	out, err := eventsvc.ListContributions(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributions": out})
}

func (h *Handler) UpdateContribution(c *gin.Context) {
	var in eventsvc.ContributionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	con, err := eventsvc.UpdateContribution(c.Request.Context(), c.Param("contributionId"), midsec.UserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventContributionUpdated, con)
	c.JSON(http.StatusOK, con)
}

func (h *Handler) DeleteContribution(c *gin.Context) {
	con, err := eventsvc.DeleteContribution(c.Request.Context(), c.Param("contributionId"), midsec.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	h.hub.EmitToAll(realtime.EventContributionDeleted, gin.H{
		"eventId":        con.EventID,
		"segmentId":      con.SegmentID,
		"contributionId": con.ContributionID,
	})
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
