package handlers

import (
	request "cargoflow/internal/adapter/http/dto/request"
	response "cargoflow/internal/adapter/http/dto/response"
	"cargoflow/internal/domain/entities"
	"cargoflow/internal/domain/pricing"
	"cargoflow/internal/usecase"
	"cargoflow/pkg"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
)

// OrderHandler handles HTTP requests for the shipping order lifecycle.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// CreateOrder registers a new shipping order and prices it server side.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[order][handler] create failed user_id=%s err=%v", payload.UserID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] create success order_number=%s user_id=%s", order.OrderNumber, order.UserID)

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder returns a single order by internal id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders returns the orders of a user, optionally filtered by status.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	status := entities.OrderStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))

	var limit int32
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid limit parameter", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		limit = int32(parsed)
	}

	orders, err := h.usecase.ListByUserID(c.Request.Context(), userID, status, limit)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// ConfirmOrder moves a pending order to confirmed and assigns its tracking number.
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := h.usecase.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("[order][handler] confirm failed id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] confirm success order_number=%s tracking_number=%s", order.OrderNumber, order.TrackingNumber)

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// UpdateStatus applies an employee status change to an order.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	id := c.Param("id")
	order, err := h.usecase.UpdateStatus(c.Request.Context(), id, payload.ResolveStatus(), strings.TrimSpace(payload.TrackingNumber))
	if err != nil {
		log.Printf("[order][handler] status update failed id=%s status=%s err=%v", id, payload.Status, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] status update success order_number=%s status=%s", order.OrderNumber, order.Status)

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// EditOrder applies a partial edit to a pending or confirmed order. Edits that
// touch weight, transport mode or urgency reprice the order.
func (h *OrderHandler) EditOrder(c *gin.Context) {
	var payload request.EditOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.EditOrder(c.Request.Context(), c.Param("id"), payload.ToOrderUpdate())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// CancelOrder cancels a pending or confirmed order.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := h.usecase.CancelOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("[order][handler] cancel failed id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] cancel success order_number=%s", order.OrderNumber)

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// DeleteOrder soft deletes a pending or confirmed order.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.DeleteOrder(c.Request.Context(), id); err != nil {
		log.Printf("[order][handler] delete failed id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] delete success id=%s", id)

	c.Status(http.StatusNoContent)
}

// GetUserStats returns the dashboard summary for a user.
func (h *OrderHandler) GetUserStats(c *gin.Context) {
	stats, err := h.usecase.UserStats(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUserStats(stats))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, pricing.ErrInvalidWeight), errors.Is(err, pricing.ErrInvalidTransportMode):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrMissingRequiredField),
		errors.Is(err, usecase.ErrInvalidDimensions),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrNoFieldsToUpdate),
		errors.Is(err, usecase.ErrInvalidTrackingIdentifier):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotPending),
		errors.Is(err, usecase.ErrOrderNotEditable),
		errors.Is(err, usecase.ErrOrderNotDeletable),
		errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainError("ORDER_STATE_CONFLICT", err.Error(), err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
