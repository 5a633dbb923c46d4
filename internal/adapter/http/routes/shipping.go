package routes

import (
	"cargoflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathOrders    = "/orders"
	PathTracking  = "/tracking"
	PathUsers     = "/users"
)

func addShippingRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, orderHandler *handlers.OrderHandler, trackingHandler *handlers.TrackingHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
	}

	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/tracking", trackingHandler.GetOrderTracking)
		orders.PATCH("/:id", orderHandler.EditOrder)
		orders.PATCH("/:id/confirm", orderHandler.ConfirmOrder)
		orders.PATCH("/:id/status", orderHandler.UpdateStatus)
		orders.PATCH("/:id/cancel", orderHandler.CancelOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
	}

	tracking := rg.Group(PathTracking)
	{
		// Public lookup by tracking number or order number.
		tracking.GET("/:identifier", trackingHandler.GetPublicTracking)
	}

	users := rg.Group(PathUsers)
	{
		users.GET("/:user_id/stats", orderHandler.GetUserStats)
	}
}
