// Package product exposes the product catalog over HTTP.
package product

import (
	"net/http"

	"backoffice/api/ctxutil"
	"backoffice/api/request"
	"backoffice/api/response"
	productapp "backoffice/application/product"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	productService *productapp.Service
}

func NewController(productService *productapp.Service) *Controller {
	return &Controller{productService: productService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", c.ListProducts)
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.PUT("/:id", c.UpdateProduct)
		productGroup.DELETE("/:id", c.DeleteProduct)
	}
}

// ListProducts GET /api/v1/products?q=&page=&page_size=
// q matches name or SKU, which is what the item picker searches with.
func (c *Controller) ListProducts(ctx *gin.Context) {
	page, err := c.productService.ListProducts(ctxutil.WithRequestID(ctx), request.ListCriteria(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Items, response.PaginationOf(page), "products retrieved successfully")
}

// CreateProduct POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.ProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, product, "product created successfully")
}

// GetProduct GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.productService.GetProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// UpdateProduct PUT /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req productapp.ProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product updated successfully")
}

// DeleteProduct DELETE /api/v1/products/:id
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.productService.DeleteProduct(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
