package handlers

import (
	request "cargoflow/internal/adapter/http/dto/request"
	response "cargoflow/internal/adapter/http/dto/response"
	"cargoflow/internal/usecase"
	"cargoflow/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for shipping cost estimates.

type EstimateHandler struct {
	usecase usecase.IOrderUseCase
}

func NewEstimateHandler(uc usecase.IOrderUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate prices a prospective shipment without persisting anything.
//
// The order form calls this endpoint on every change so the customer sees a
// live cost preview before submitting.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	breakdown, err := h.usecase.EstimateCost(c.Request.Context(), payload.ToShipmentRequest())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCostBreakdown(breakdown))
}
