// Package quote exposes quotes over HTTP, including conversion into an
// order.
package quote

import (
	"net/http"

	"backoffice/api/ctxutil"
	"backoffice/api/request"
	"backoffice/api/response"
	quoteapp "backoffice/application/quote"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	quoteService *quoteapp.Service
}

func NewController(quoteService *quoteapp.Service) *Controller {
	return &Controller{quoteService: quoteService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	quoteGroup := router.Group("/quotes")
	{
		quoteGroup.GET("", c.ListQuotes)
		quoteGroup.POST("", c.CreateQuote)
		quoteGroup.GET("/:id", c.GetQuote)
		quoteGroup.PUT("/:id", c.UpdateQuote)
		quoteGroup.DELETE("/:id", c.DeleteQuote)
		quoteGroup.PUT("/:id/items", c.ReplaceItems)
		quoteGroup.POST("/:id/convert", c.ConvertToOrder)
	}
	router.GET("/clients/:id/quotes", c.GetClientQuotes)
}

// ListQuotes GET /api/v1/quotes?status=&q=&page=&page_size=
func (c *Controller) ListQuotes(ctx *gin.Context) {
	page, err := c.quoteService.ListQuotes(ctxutil.WithRequestID(ctx), request.ListCriteria(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Items, response.PaginationOf(page), "quotes retrieved successfully")
}

// CreateQuote POST /api/v1/quotes
func (c *Controller) CreateQuote(ctx *gin.Context) {
	var req quoteapp.CreateQuoteRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	quote, err := c.quoteService.CreateQuote(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, quote, "quote created successfully")
}

// GetQuote GET /api/v1/quotes/:id
func (c *Controller) GetQuote(ctx *gin.Context) {
	quote, err := c.quoteService.GetQuote(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, quote, "quote retrieved successfully")
}

// UpdateQuote PUT /api/v1/quotes/:id
func (c *Controller) UpdateQuote(ctx *gin.Context) {
	var req quoteapp.UpdateQuoteRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	quote, err := c.quoteService.UpdateQuote(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, quote, "quote updated successfully")
}

// DeleteQuote DELETE /api/v1/quotes/:id
func (c *Controller) DeleteQuote(ctx *gin.Context) {
	if err := c.quoteService.DeleteQuote(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ReplaceItems PUT /api/v1/quotes/:id/items
func (c *Controller) ReplaceItems(ctx *gin.Context) {
	var req quoteapp.ReplaceItemsRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	quote, err := c.quoteService.ReplaceItems(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, quote, "quote items replaced successfully")
}

// ConvertToOrder POST /api/v1/quotes/:id/convert
// A quote without items answers 422 with code NO_ITEMS.
func (c *Controller) ConvertToOrder(ctx *gin.Context) {
	order, err := c.quoteService.ConvertToOrder(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "quote converted to order")
}

// GetClientQuotes GET /api/v1/clients/:id/quotes
func (c *Controller) GetClientQuotes(ctx *gin.Context) {
	quotes, err := c.quoteService.GetClientQuotes(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, quotes, "client quotes retrieved successfully")
}
