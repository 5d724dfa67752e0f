/*
Package order exposes orders and their payments over HTTP.

Binding failures answer 400 through response.HandleError. Everything the
services return goes through response.HandleAppError, which maps domain
errors to statuses. Item rows arrive either as a JSON "items" array or as
the parallel item_*[] form arrays.
*/
package order

import (
	"net/http"

	"backoffice/api/ctxutil"
	"backoffice/api/request"
	"backoffice/api/response"
	orderapp "backoffice/application/order"
	paymentapp "backoffice/application/payment"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService   *orderapp.Service
	paymentService *paymentapp.Service
}

func NewController(orderService *orderapp.Service, paymentService *paymentapp.Service) *Controller {
	return &Controller{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id", c.UpdateOrder)
		orderGroup.DELETE("/:id", c.DeleteOrder)
		orderGroup.PUT("/:id/items", c.ReplaceItems)
		orderGroup.PUT("/:id/status", c.ChangeStatus)
		orderGroup.GET("/:id/payments", c.ListPayments)
		orderGroup.POST("/:id/payments", c.RecordPayment)
	}
	router.DELETE("/payments/:id", c.DeletePayment)
	router.GET("/clients/:id/orders", c.GetClientOrders)
}

// ListOrders GET /api/v1/orders?status=&q=&page=&page_size=
func (c *Controller) ListOrders(ctx *gin.Context) {
	page, err := c.orderService.ListOrders(ctxutil.WithRequestID(ctx), request.ListCriteria(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Items, response.PaginationOf(page), "orders retrieved successfully")
}

// CreateOrder POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateOrder PUT /api/v1/orders/:id
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	var req orderapp.UpdateOrderRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateOrder(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order updated successfully")
}

// DeleteOrder DELETE /api/v1/orders/:id
// Items, payments and follow-ups of the order go with it.
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	if err := c.orderService.DeleteOrder(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ReplaceItems PUT /api/v1/orders/:id/items
func (c *Controller) ReplaceItems(ctx *gin.Context) {
	var req orderapp.ReplaceItemsRequest
	if err := request.Bind(ctx, &req, &req.Items); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.ReplaceItems(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order items replaced successfully")
}

// ChangeStatus PUT /api/v1/orders/:id/status
func (c *Controller) ChangeStatus(ctx *gin.Context) {
	var req orderapp.ChangeStatusRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.ChangeStatus(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order status updated successfully")
}

// GetClientOrders GET /api/v1/clients/:id/orders
func (c *Controller) GetClientOrders(ctx *gin.Context) {
	orders, err := c.orderService.GetClientOrders(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "client orders retrieved successfully")
}

// ListPayments GET /api/v1/orders/:id/payments
func (c *Controller) ListPayments(ctx *gin.Context) {
	payments, err := c.paymentService.ListPayments(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, payments, "payments retrieved successfully")
}

// RecordPayment POST /api/v1/orders/:id/payments
func (c *Controller) RecordPayment(ctx *gin.Context) {
	var req paymentapp.RecordPaymentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.paymentService.RecordPayment(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, result, "payment recorded successfully")
}

// DeletePayment DELETE /api/v1/payments/:id
// Answers with the owning order's refreshed totals.
func (c *Controller) DeletePayment(ctx *gin.Context) {
	result, err := c.paymentService.DeletePayment(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, "payment deleted successfully")
}
