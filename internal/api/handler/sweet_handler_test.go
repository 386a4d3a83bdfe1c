package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

type stubSweetService struct {
	createFn   func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error)
	getFn      func(ctx context.Context, id int64) (*domain.Sweet, error)
	listFn     func(ctx context.Context) ([]*domain.Sweet, error)
	searchFn   func(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error)
	updateFn   func(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error)
	deleteFn   func(ctx context.Context, id int64) (*domain.Sweet, error)
	purchaseFn func(ctx context.Context, id int64) (*domain.Sweet, error)
	restockFn  func(ctx context.Context, id int64, amount int64) (*domain.Sweet, error)
}

func (s *stubSweetService) CreateSweet(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	return s.createFn(ctx, input)
}

func (s *stubSweetService) GetSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	return s.getFn(ctx, id)
}

func (s *stubSweetService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	return s.listFn(ctx)
}

func (s *stubSweetService) SearchSweets(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error) {
	return s.searchFn(ctx, input)
}

func (s *stubSweetService) UpdateSweet(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubSweetService) DeleteSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubSweetService) PurchaseSweet(ctx context.Context, id int64) (*domain.Sweet, error) {
	return s.purchaseFn(ctx, id)
}

func (s *stubSweetService) RestockSweet(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
	return s.restockFn(ctx, id, amount)
}

func sampleSweet() *domain.Sweet {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Sweet{
		ID:         1,
		Name:       "Caramel",
		Category:   "Candy",
		PriceCents: 300,
		Quantity:   10,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestSweetHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
			if input.Name != "Caramel" || input.Price != 3.0 || input.Quantity != 10 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleSweet(), nil
		},
	}
	handler := NewSweetHandler(stub)

	body := strings.NewReader(`{"name":"Caramel","category":"Candy","price":3.0,"quantity":10}`)
	req := httptest.NewRequest(http.MethodPost, "/sweets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["price"] != 3.0 {
		t.Fatalf("expected decimal price 3, got %v", resp["price"])
	}
	if _, exposed := resp["price_cents"]; exposed {
		t.Fatalf("internal cents representation leaked: %+v", resp)
	}
}

func TestSweetHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		createFn: func(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	cases := []string{
		`{"category":"Candy","price":3.0}`,              // missing name
		`{"name":"Caramel","price":3.0}`,                // missing category
		`{"name":"Caramel","category":"Candy"}`,         // missing price
		`{"name":"Caramel","category":"Candy","price":-1}`,              // negative price
		`{"name":"Caramel","category":"Candy","price":1,"quantity":-2}`, // negative quantity
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/sweets", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Create(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestSweetHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		listFn: func(ctx context.Context) ([]*domain.Sweet, error) {
			return []*domain.Sweet{sampleSweet()}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/sweets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["name"] != "Caramel" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSweetHandler_Search_ForwardsCriteria(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error) {
			if input.Name != "car" || input.Category != "Candy" {
				t.Fatalf("unexpected criteria: %+v", input)
			}
			if input.MinPrice == nil || *input.MinPrice != 2 {
				t.Fatalf("expected minPrice 2, got %v", input.MinPrice)
			}
			if input.MaxPrice == nil || *input.MaxPrice != 5.5 {
				t.Fatalf("expected maxPrice 5.5, got %v", input.MaxPrice)
			}
			return []*domain.Sweet{sampleSweet()}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/sweets/search?name=car&category=Candy&minPrice=2&maxPrice=5.5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Search_AbsentBoundsAreNil(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error) {
			if input.MinPrice != nil || input.MaxPrice != nil {
				t.Fatalf("expected nil bounds, got %+v", input)
			}
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/sweets/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Search_InvalidPrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, input ports.SearchSweetsInput) ([]*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/sweets/search?minPrice=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Search(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSweetHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error) {
			if id != 1 {
				t.Fatalf("unexpected id: %d", id)
			}
			if input.Price == nil || *input.Price != 3.5 {
				t.Fatalf("expected price 3.5, got %v", input.Price)
			}
			if input.Name != nil || input.Category != nil || input.Quantity != nil {
				t.Fatalf("expected only price set, got %+v", input)
			}
			s := sampleSweet()
			s.PriceCents = 350
			return s, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/sweets/1", strings.NewReader(`{"price":3.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/sweets/42", strings.NewReader(`{"price":3.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	_ = handler.Update(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSweetHandler_Update_InvalidID(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, id int64, input ports.UpdateSweetInput) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/sweets/abc", strings.NewReader(`{"price":3.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSweetHandler_Delete_ReturnsSnapshot(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id int64) (*domain.Sweet, error) {
			if id != 1 {
				t.Fatalf("unexpected id: %d", id)
			}
			return sampleSweet(), nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/sweets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "Caramel" {
		t.Fatalf("expected removed snapshot, got %+v", resp)
	}
}

func TestSweetHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id int64) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/sweets/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSweetHandler_Purchase_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id int64) (*domain.Sweet, error) {
			s := sampleSweet()
			s.Quantity = 9
			return s, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/1/purchase", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["quantity"] != 9.0 {
		t.Fatalf("expected quantity 9, got %v", resp["quantity"])
	}
}

func TestSweetHandler_Purchase_OutOfStock(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id int64) (*domain.Sweet, error) {
			return nil, domain.ErrOutOfStock
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/1/purchase", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.Purchase(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "out of stock" {
		t.Fatalf("unexpected error message: %v", resp["error"])
	}
}

func TestSweetHandler_Purchase_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id int64) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/42/purchase", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	_ = handler.Purchase(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSweetHandler_Restock_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
			if id != 1 || amount != 5 {
				t.Fatalf("unexpected args: id=%d amount=%d", id, amount)
			}
			s := sampleSweet()
			s.Quantity = 15
			return s, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/1/restock", strings.NewReader(`{"amount":5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Restock_StockLimit(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
			return nil, domain.ErrStockLimitExceeded
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/1/restock", strings.NewReader(`{"amount":1000000001}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.Restock(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "stock limit exceeded" {
		t.Fatalf("unexpected error message: %v", resp["error"])
	}
}

func TestSweetHandler_Restock_InvalidAmount(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id int64, amount int64) (*domain.Sweet, error) {
			return nil, domain.ErrInvalidAmount
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/sweets/1/restock", strings.NewReader(`{"amount":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.Restock(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
