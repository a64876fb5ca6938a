package handler

import (
	"net/http"

	midsec "github.com/JacobHeater/upsign/middleware/security"
	eventsvc "github.com/JacobHeater/upsign/module/event/service"
	"github.com/JacobHeater/upsign/tools/errs"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateEvent(c *gin.Context) {
	var in eventsvc.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	ev, err := eventsvc.CreateEvent(c.Request.Context(), midsec.UserID(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *Handler) ListEvents(c *gin.Context) {
	out, err := eventsvc.ListEventsForUser(c.Request.Context(), midsec.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (h *Handler) GetEvent(c *gin.Context) {
	ev, err := eventsvc.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	var in eventsvc.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	ev, err := eventsvc.UpdateEvent(c.Request.Context(), midsec.UserID(c), c.Param("eventId"), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := eventsvc.DeleteEvent(c.Request.Context(), midsec.UserID(c), c.Param("eventId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateSegment(c *gin.Context) {
	var in eventsvc.SegmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	seg, err := eventsvc.CreateSegment(c.Request.Context(), midsec.UserID(c), c.Param("eventId"), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, seg)
}

func (h *Handler) ListSegments(c *gin.Context) {
	out, err := eventsvc.ListSegments(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": out})
}

func (h *Handler) UpdateSegment(c *gin.Context) {
	var in eventsvc.SegmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	seg, err := eventsvc.UpdateSegment(c.Request.Context(), midsec.UserID(c), c.Param("eventId"), c.Param("segmentId"), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, seg)
}

func (h *Handler) DeleteSegment(c *gin.Context) {
	if err := eventsvc.DeleteSegment(c.Request.Context(), midsec.UserID(c), c.Param("eventId"), c.Param("segmentId")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
