// Package client exposes the client directory over HTTP.
package client

import (
	"net/http"

	"backoffice/api/ctxutil"
	"backoffice/api/request"
	"backoffice/api/response"
	clientapp "backoffice/application/client"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	clientService *clientapp.Service
}

func NewController(clientService *clientapp.Service) *Controller {
	return &Controller{clientService: clientService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	clientGroup := router.Group("/clients")
	{
		clientGroup.GET("", c.ListClients)
		clientGroup.POST("", c.CreateClient)
		clientGroup.GET("/:id", c.GetClient)
		clientGroup.PUT("/:id", c.UpdateClient)
		clientGroup.DELETE("/:id", c.DeleteClient)
	}
}

// ListClients GET /api/v1/clients?q=&page=&page_size=
func (c *Controller) ListClients(ctx *gin.Context) {
	page, err := c.clientService.ListClients(ctxutil.WithRequestID(ctx), request.ListCriteria(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Items, response.PaginationOf(page), "clients retrieved successfully")
}

// CreateClient POST /api/v1/clients
func (c *Controller) CreateClient(ctx *gin.Context) {
	var req clientapp.ClientRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	client, err := c.clientService.CreateClient(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, client, "client created successfully")
}

// GetClient GET /api/v1/clients/:id
func (c *Controller) GetClient(ctx *gin.Context) {
	client, err := c.clientService.GetClient(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, client, "client retrieved successfully")
}

// UpdateClient PUT /api/v1/clients/:id
func (c *Controller) UpdateClient(ctx *gin.Context) {
	var req clientapp.ClientRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	client, err := c.clientService.UpdateClient(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, client, "client updated successfully")
}

// DeleteClient DELETE /api/v1/clients/:id
// The client is only marked deleted; its orders and quotes keep pointing at it.
func (c *Controller) DeleteClient(ctx *gin.Context) {
	if err := c.clientService.DeleteClient(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
