package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cargoflow/internal/adapter/http/handlers/mocks"
	"cargoflow/internal/domain/entities"
	"cargoflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func sampleTrackingView(order entities.Order) entities.TrackingView {
	created := order.CreatedAt
	confirmed := created.Add(3 * time.Hour)
	estimate := created.Add(72 * time.Hour)
	return entities.TrackingView{
		Timeline: []entities.TimelineEvent{
			{Status: entities.StatusPending, Label: "Pending Confirmation", Icon: "📋", Location: "Origin Facility", Timestamp: created, HasHappened: true},
			{Status: entities.StatusConfirmed, Label: "Confirmed", Icon: "✅", Location: "Origin Facility", Timestamp: confirmed, HasHappened: true, IsCurrent: true},
		},
		Estimate: entities.DeliveryEstimate{
			State:         entities.EstimateStateEstimated,
			Message:       "Estimated delivery",
			Date:          &estimate,
			DayName:       estimate.Weekday().String(),
			IsEstimate:    true,
			DaysRemaining: 3,
		},
	}
}

func TestTrackingHandler_GetOrderTracking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewTrackingHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:id/tracking", h.GetOrderTracking)

		uc.EXPECT().TrackOrder(gomock.Any(), "missing").
			Return(entities.Order{}, entities.TrackingView{}, usecase.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/missing/tracking", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewTrackingHandler(uc)

		r := gin.New()
		r.GET("/v1/orders/:id/tracking", h.GetOrderTracking)

		order := sampleOrder()
		order.Status = entities.StatusConfirmed
		view := sampleTrackingView(order)
		uc.EXPECT().TrackOrder(gomock.Any(), order.ID).Return(order, view, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders/"+order.ID+"/tracking", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Order struct {
				OrderNumber string `json:"order_number"`
			} `json:"order"`
			Timeline []map[string]any `json:"timeline"`
			Estimate map[string]any   `json:"estimate"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Order.OrderNumber != order.OrderNumber {
			t.Fatalf("unexpected order in response: %s", w.Body.String())
		}
		if len(body.Timeline) != 2 {
			t.Fatalf("expected 2 timeline events, got %d", len(body.Timeline))
		}
		if body.Timeline[1]["is_current"] != true {
			t.Fatalf("expected second event current: %s", w.Body.String())
		}
		if body.Timeline[0]["date"] != "Mar 10, 2024" {
			t.Fatalf("unexpected event date: %s", w.Body.String())
		}
		if body.Estimate["days_remaining"] != 3.0 {
			t.Fatalf("unexpected estimate: %s", w.Body.String())
		}
	})
}

func TestTrackingHandler_GetPublicTracking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid identifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewTrackingHandler(uc)

		r := gin.New()
		r.GET("/v1/tracking/:identifier", h.GetPublicTracking)

		uc.EXPECT().PublicTracking(gomock.Any(), " ").
			Return(entities.PublicOrder{}, entities.TrackingView{}, usecase.ErrInvalidTrackingIdentifier)

		req := httptest.NewRequest(http.MethodGet, "/v1/tracking/%20", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewTrackingHandler(uc)

		r := gin.New()
		r.GET("/v1/tracking/:identifier", h.GetPublicTracking)

		uc.EXPECT().PublicTracking(gomock.Any(), "TRK-2024-9999").
			Return(entities.PublicOrder{}, entities.TrackingView{}, usecase.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/tracking/TRK-2024-9999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success hides private fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewTrackingHandler(uc)

		r := gin.New()
		r.GET("/v1/tracking/:identifier", h.GetPublicTracking)

		order := sampleOrder()
		order.Status = entities.StatusConfirmed
		order.TrackingNumber = "TRK-2024-0042"
		public := order.PublicView()
		view := sampleTrackingView(order)
		uc.EXPECT().PublicTracking(gomock.Any(), "TRK-2024-0042").Return(public, view, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/tracking/TRK-2024-0042", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Order map[string]any `json:"order"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Order["tracking_number"] != "TRK-2024-0042" {
			t.Fatalf("unexpected order in response: %s", w.Body.String())
		}
		if _, ok := body.Order["total_cost"]; ok {
			t.Fatalf("public view must not expose costs: %s", w.Body.String())
		}
		if _, ok := body.Order["user_id"]; ok {
			t.Fatalf("public view must not expose user id: %s", w.Body.String())
		}
	})
}
