// Package dashboard exposes the sales summary.
package dashboard

import (
	"backoffice/api/ctxutil"
	"backoffice/api/response"
	reportapp "backoffice/application/report"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	reportService *reportapp.Service
}

func NewController(reportService *reportapp.Service) *Controller {
	return &Controller{reportService: reportService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", c.Dashboard)
}

// Dashboard GET /api/v1/dashboard
func (c *Controller) Dashboard(ctx *gin.Context) {
	d, err := c.reportService.Dashboard(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, d, "dashboard retrieved successfully")
}
