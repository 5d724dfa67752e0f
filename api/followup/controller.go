// Package followup exposes follow-up reminders and the calendar feed.
package followup

import (
	"net/http"

	"backoffice/api/ctxutil"
	"backoffice/api/response"
	followupapp "backoffice/application/followup"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	followUpService *followupapp.Service
}

func NewController(followUpService *followupapp.Service) *Controller {
	return &Controller{followUpService: followUpService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/followups")
	{
		group.GET("/calendar", c.Calendar)
		group.POST("", c.Schedule)
		group.GET("/:id", c.GetFollowUp)
		group.PUT("/:id", c.UpdateFollowUp)
		group.DELETE("/:id", c.DeleteFollowUp)
		group.POST("/:id/done", c.MarkDone)
		group.POST("/:id/reopen", c.Reopen)
		group.POST("/:id/toggle", c.Toggle)
	}
	router.GET("/orders/:id/followups", c.ForOrder)
}

// Calendar GET /api/v1/followups/calendar?start=YYYY-MM-DD&end=YYYY-MM-DD
// The end day is included. A missing or unreadable bound is left open.
func (c *Controller) Calendar(ctx *gin.Context) {
	events, err := c.followUpService.Calendar(ctxutil.WithRequestID(ctx), ctx.Query("start"), ctx.Query("end"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	// Calendar widgets expect a bare array.
	ctx.JSON(http.StatusOK, events)
}

// Schedule POST /api/v1/followups
func (c *Controller) Schedule(ctx *gin.Context) {
	var req followupapp.FollowUpRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	f, err := c.followUpService.Schedule(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, f, "follow-up scheduled successfully")
}

func (c *Controller) GetFollowUp(ctx *gin.Context) {
	f, err := c.followUpService.Get(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, f, "follow-up retrieved successfully")
}

func (c *Controller) UpdateFollowUp(ctx *gin.Context) {
	var req followupapp.FollowUpRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	f, err := c.followUpService.Update(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, f, "follow-up updated successfully")
}

func (c *Controller) DeleteFollowUp(ctx *gin.Context) {
	if err := c.followUpService.Delete(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

func (c *Controller) MarkDone(ctx *gin.Context) {
	f, err := c.followUpService.MarkDone(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, f, "follow-up marked done")
}

func (c *Controller) Reopen(ctx *gin.Context) {
	f, err := c.followUpService.Reopen(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, f, "follow-up reopened")
}

func (c *Controller) Toggle(ctx *gin.Context) {
	f, err := c.followUpService.Toggle(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, f, "follow-up toggled")
}

// ForOrder GET /api/v1/orders/:id/followups
func (c *Controller) ForOrder(ctx *gin.Context) {
	fs, err := c.followUpService.ForOrder(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, fs, "follow-ups retrieved successfully")
}
