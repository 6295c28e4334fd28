package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rezensionsheld/backend/cache"
	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/services"
	"github.com/rezensionsheld/backend/utils"
	"gorm.io/datatypes"
)

type stubOrderReader struct {
	orders []*models.Order
	count  int64
	err    error
}

func (s *stubOrderReader) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func (s *stubOrderReader) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, order := range s.orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, services.ErrOrderNotFound
}

func (s *stubOrderReader) Count(ctx context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.count > 0 {
		return s.count, nil
	}
	return int64(len(s.orders)), nil
}

type stubProvider struct {
	page *models.ReviewPage
	err  error
}

func (s *stubProvider) FetchReviews(ctx context.Context, placeID string, offset int, sort string) (*models.ReviewPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func adminRouter(handler *AdminHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/admin/orders", handler.HandleListOrders).Methods("GET")
	router.HandleFunc("/api/admin/orders-detailed", handler.HandleListOrdersDetailed).Methods("GET")
	router.HandleFunc("/api/admin/order/{orderId}", handler.HandleGetOrder).Methods("GET")
	return router
}

func TestAdminHandler_NoStoreConfiguredReturns503(t *testing.T) {
	handler := NewAdminHandler(services.NewReportService(nil))
	router := adminRouter(handler)

	paths := []string{
		"/api/admin/orders",
		"/api/admin/orders-detailed",
		"/api/admin/order/RH-1-abc",
	}

	for _, path := range paths {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s status = %d, want %d", path, w.Code, http.StatusServiceUnavailable)
		}
	}
}

func TestAdminHandler_UnknownOrderReturns404(t *testing.T) {
	handler := NewAdminHandler(services.NewReportService(&stubOrderReader{}))
	router := adminRouter(handler)

	req := httptest.NewRequest("GET", "/api/admin/order/RH-404-missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Message != utils.ErrOrderNotFound.Message {
		t.Errorf("message = %q, want %q", resp.Message, utils.ErrOrderNotFound.Message)
	}
}

func TestAdminHandler_QueryFailureReturns500(t *testing.T) {
	reader := &stubOrderReader{err: errors.New("relation does not exist")}
	handler := NewAdminHandler(services.NewReportService(reader))
	router := adminRouter(handler)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestAdminHandler_ListOrdersReturnsRawRows(t *testing.T) {
	reader := &stubOrderReader{orders: []*models.Order{{
		OrderID:         "RH-1700000000000-abc123def",
		BusinessPlaceID: "place123",
		SelectedReviews: datatypes.JSON(`[{"id":"1","rating":1,"text":"mies","reviewer":"Max"}]`),
		TotalPrice:      39.99,
		ReviewCount:     1,
		Status:          models.OrderStatusPending,
	}}}
	handler := NewAdminHandler(services.NewReportService(reader))
	router := adminRouter(handler)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp listOrdersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success || resp.Total != 1 || len(resp.Orders) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAdminHandler_TotalReflectsStoreCountNotPageLength(t *testing.T) {
	reader := &stubOrderReader{
		orders: []*models.Order{{
			OrderID:         "RH-1700000000000-abc123def",
			BusinessPlaceID: "place123",
			SelectedReviews: datatypes.JSON(`[{"id":"1","rating":1,"text":"mies","reviewer":"Max"}]`),
			ReviewCount:     1,
			Status:          models.OrderStatusPending,
		}},
		count: 42,
	}
	handler := NewAdminHandler(services.NewReportService(reader))
	router := adminRouter(handler)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp listOrdersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Total != 42 {
		t.Errorf("total = %d, want 42", resp.Total)
	}
	if len(resp.Orders) != 1 {
		t.Errorf("orders length = %d, want 1", len(resp.Orders))
	}
}

func TestOrderHandler_MissingFieldsReturn400(t *testing.T) {
	handler := NewOrderHandler(services.NewOrderService(nil, nil))

	body := []byte(`{"businessName":"Testcafe","selectedReviews":[]}`)
	req := httptest.NewRequest("POST", "/api/submit-order", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.HandleSubmitOrder(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOrderHandler_InvalidBodyReturns400(t *testing.T) {
	handler := NewOrderHandler(services.NewOrderService(nil, nil))

	req := httptest.NewRequest("POST", "/api/submit-order", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	handler.HandleSubmitOrder(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOrderHandler_SubmitSucceedsWithoutCollaborators(t *testing.T) {
	handler := NewOrderHandler(services.NewOrderService(nil, nil))

	body := []byte(`{
		"businessName": "Testcafe",
		"businessPlaceId": "place123",
		"customerEmail": "erika@example.com",
		"selectedReviews": [{"id":"1","rating":1,"text":"mies","reviewer":"Max"}],
		"totalPrice": 0.01
	}`)
	req := httptest.NewRequest("POST", "/api/submit-order", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.HandleSubmitOrder(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp models.SubmitOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.OrderID == "" {
		t.Error("orderId is empty")
	}
	if resp.TotalPrice != 39.99 {
		t.Errorf("totalPrice = %v, want 39.99", resp.TotalPrice)
	}
	if resp.ReviewCount != 1 {
		t.Errorf("reviewCount = %d, want 1", resp.ReviewCount)
	}
}

func TestReviewHandler_UpstreamErrorReturns500WithMappedMessage(t *testing.T) {
	provider := &stubProvider{err: &utils.UpstreamError{
		StatusCode: http.StatusForbidden,
		Message:    utils.MsgUpstreamQuota,
		Detail:     "quota exceeded for key",
	}}
	svc := services.NewReviewService(provider, cache.NewMemory())

	tests := []struct {
		name       string
		echoDetail bool
		wantDetail string
	}{
		{"development echoes detail", true, "quota exceeded for key"},
		{"production hides detail", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReviewHandler(svc, tt.echoDetail)
			router := mux.NewRouter()
			router.HandleFunc("/api/reviews/{placeId}", handler.HandleGetReviews).Methods("GET")

			req := httptest.NewRequest("GET", "/api/reviews/place123", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Message != utils.MsgUpstreamQuota {
				t.Errorf("message = %q, want %q", resp.Message, utils.MsgUpstreamQuota)
			}
			if resp.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", resp.Detail, tt.wantDetail)
			}
		})
	}
}

func TestReviewHandler_ReturnsPage(t *testing.T) {
	provider := &stubProvider{page: &models.ReviewPage{
		Success: true,
		Reviews: []models.Review{{ID: "1", Rating: 1, Text: "mies", Reviewer: "Max"}},
		Offset:  0,
	}}
	handler := NewReviewHandler(services.NewReviewService(provider, cache.NewMemory()), true)

	router := mux.NewRouter()
	router.HandleFunc("/api/reviews/{placeId}", handler.HandleGetReviews).Methods("GET")

	req := httptest.NewRequest("GET", "/api/reviews/place123?offset=0&sort=lowest_rating", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var page models.ReviewPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !page.Success || len(page.Reviews) != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler("development", true, false)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	handler.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Environment != "development" {
		t.Errorf("environment = %q, want %q", resp.Environment, "development")
	}
	if resp.Database != "configured" {
		t.Errorf("database = %q, want %q", resp.Database, "configured")
	}
	if resp.Email != "not_configured" {
		t.Errorf("email = %q, want %q", resp.Email, "not_configured")
	}
}

func TestMiscHandler_TestEmailWithoutMailer(t *testing.T) {
	handler := NewMiscHandler(nil, services.NewReportService(nil), nil)

	req := httptest.NewRequest("GET", "/api/test-email", nil)
	w := httptest.NewRecorder()
	handler.HandleTestEmail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp testEmailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Error == "" {
		t.Error("error message is empty")
	}
}

func TestMiscHandler_DebugOrdersRawFoldsErrors(t *testing.T) {
	handler := NewMiscHandler(nil, services.NewReportService(nil), nil)

	req := httptest.NewRequest("GET", "/api/debug/orders-raw", nil)
	w := httptest.NewRecorder()
	handler.HandleDebugOrdersRaw(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp debugOrdersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Cache != nil {
		t.Errorf("cache stats = %+v, want omitted without a stats-capable cache", resp.Cache)
	}
}

func TestMiscHandler_DebugOrdersRawReportsCacheStats(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()
	if _, err := store.Get(ctx, "place123:0:lowest_rating"); err == nil {
		t.Fatal("expected a miss on the empty cache")
	}
	if err := store.Put(ctx, "place123:0:lowest_rating", []byte(`{}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, err := store.Get(ctx, "place123:0:lowest_rating"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	handler := NewMiscHandler(nil, services.NewReportService(&stubOrderReader{}), store)

	req := httptest.NewRequest("GET", "/api/debug/orders-raw", nil)
	w := httptest.NewRecorder()
	handler.HandleDebugOrdersRaw(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp debugOrdersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Cache == nil {
		t.Fatal("cache stats missing from debug response")
	}
	if resp.Cache.Hits != 1 || resp.Cache.Misses != 1 || resp.Cache.Sets != 1 {
		t.Errorf("cache stats = %+v, want one hit, one miss, one set", resp.Cache)
	}
}

func TestMiscHandler_BusinessPlaceholder(t *testing.T) {
	handler := NewMiscHandler(nil, services.NewReportService(nil), nil)

	router := mux.NewRouter()
	router.HandleFunc("/api/business/{placeId}", handler.HandleGetBusiness).Methods("GET")

	req := httptest.NewRequest("GET", "/api/business/place123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp businessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success || resp.Business.PlaceID != "place123" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
