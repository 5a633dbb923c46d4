package handlers

import (
	response "cargoflow/internal/adapter/http/dto/response"
	"cargoflow/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrackingHandler handles HTTP requests for shipment tracking views.

type TrackingHandler struct {
	usecase usecase.IOrderUseCase
}

func NewTrackingHandler(uc usecase.IOrderUseCase) *TrackingHandler {
	return &TrackingHandler{usecase: uc}
}

// GetOrderTracking returns the timeline and delivery estimate for an order
// owned by the authenticated user.
func (h *TrackingHandler) GetOrderTracking(c *gin.Context) {
	order, view, err := h.usecase.TrackOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTrackingView(order, view))
}

// GetPublicTracking resolves a tracking or order number into the public
// tracking view. Addresses are reduced to their city lines.
func (h *TrackingHandler) GetPublicTracking(c *gin.Context) {
	order, view, err := h.usecase.PublicTracking(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPublicTrackingView(order, view))
}
