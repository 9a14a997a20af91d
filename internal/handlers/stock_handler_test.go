package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/models"
	"finwatch/internal/pagination"
	"finwatch/internal/services"
)

type mockStockService struct {
	queryFn       func(q services.StockQuery) (*pagination.PageResponse[models.Stock], error)
	getByIDFn     func(id uint) (*models.Stock, error)
	getBySymbolFn func(symbol string) (*models.Stock, error)
	createFn      func(symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error)
	updateFn      func(id uint, symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error)
	deleteFn      func(id uint) error
}

func (m *mockStockService) Query(q services.StockQuery) (*pagination.PageResponse[models.Stock], error) {
	if m.queryFn != nil {
		return m.queryFn(q)
	}
	return &pagination.PageResponse[models.Stock]{Items: []models.Stock{}}, nil
}

func (m *mockStockService) GetByID(id uint) (*models.Stock, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) GetBySymbol(symbol string) (*models.Stock, error) {
	if m.getBySymbolFn != nil {
		return m.getBySymbolFn(symbol)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) Create(symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error) {
	if m.createFn != nil {
		return m.createFn(symbol, companyName, purchase, lastDiv, industry, marketCap)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) Update(id uint, symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error) {
	if m.updateFn != nil {
		return m.updateFn(id, symbol, companyName, purchase, lastDiv, industry, marketCap)
	}
	return &models.Stock{}, nil
}

func (m *mockStockService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func setupStockRouter(handler *StockHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/stock", handler.Query)
	r.GET("/api/stock/:id", handler.GetByID)
	r.GET("/api/stock/symbol/:symbol", handler.GetBySymbol)
	r.POST("/api/stock", handler.Create)
	r.PUT("/api/stock/:id", handler.Update)
	r.DELETE("/api/stock/:id", handler.Delete)
	return r
}

const nflxPayload = `{"symbol":"NFLX","company_name":"Netflix","purchase":120.5,"last_div":0,"industry":"Entertainment","market_cap":200000000}`

func TestStockHandler_Query(t *testing.T) {
	t.Run("binds query params and returns page envelope", func(t *testing.T) {
		var captured services.StockQuery
		stockSvc := &mockStockService{
			queryFn: func(q services.StockQuery) (*pagination.PageResponse[models.Stock], error) {
				captured = q
				return &pagination.PageResponse[models.Stock]{
					Items:      []models.Stock{{Base: models.Base{ID: 3}, Symbol: "MSFT"}},
					PageNumber: 2,
					PageSize:   2,
					TotalCount: 5,
					TotalPages: 3,
				}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "GET", "/api/stock?symbol=ms&sortBy=Symbol&isDescending=true&pageNumber=2&pageSize=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Symbol != "ms" || captured.SortBy != "Symbol" || !captured.IsDescending {
			t.Errorf("query params not bound: %+v", captured)
		}
		if captured.PageNumber != 2 || captured.PageSize != 2 {
			t.Errorf("pagination params not bound: %+v", captured.PageRequest)
		}

		result := parseJSON(t, rec)
		if result["totalCount"] != float64(5) || result["pageNumber"] != float64(2) {
			t.Errorf("unexpected envelope: %v", result)
		}
		items := result["items"].([]interface{})
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
	})
}

func TestStockHandler_GetByID(t *testing.T) {
	t.Run("returns 200 with stock", func(t *testing.T) {
		stockSvc := &mockStockService{
			getByIDFn: func(id uint) (*models.Stock, error) {
				return &models.Stock{Base: models.Base{ID: id}, Symbol: "NFLX", CompanyName: "Netflix"}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "GET", "/api/stock/9", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["symbol"] != "NFLX" || result["id"] != float64(9) {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		stockSvc := &mockStockService{
			getByIDFn: func(uint) (*models.Stock, error) {
				return nil, apperrors.ErrStockNotFound
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "GET", "/api/stock/9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertProblemTitle(t, parseJSON(t, rec), "STOCK_NOT_FOUND")
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		r := setupStockRouter(NewStockHandler(&mockStockService{}))

		rec := doRequest(r, "GET", "/api/stock/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStockHandler_Create(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		stockSvc := &mockStockService{
			createFn: func(symbol, companyName string, purchase, _ float64, _ string, _ int64) (*models.Stock, error) {
				return &models.Stock{Base: models.Base{ID: 1}, Symbol: symbol, CompanyName: companyName, Purchase: purchase}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "POST", "/api/stock", nflxPayload)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["symbol"] != "NFLX" {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 400 on invalid ticker", func(t *testing.T) {
		r := setupStockRouter(NewStockHandler(&mockStockService{}))

		rec := doRequest(r, "POST", "/api/stock",
			`{"symbol":"NOT A TICKER","company_name":"X","purchase":1,"industry":"Y"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertProblemTitle(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-positive purchase", func(t *testing.T) {
		r := setupStockRouter(NewStockHandler(&mockStockService{}))

		rec := doRequest(r, "POST", "/api/stock",
			`{"symbol":"NFLX","company_name":"Netflix","purchase":0,"industry":"Entertainment"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate symbol", func(t *testing.T) {
		stockSvc := &mockStockService{
			createFn: func(string, string, float64, float64, string, int64) (*models.Stock, error) {
				return nil, apperrors.ErrDuplicateSymbol
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "POST", "/api/stock", nflxPayload)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertProblemTitle(t, parseJSON(t, rec), "DUPLICATE_SYMBOL")
	})
}

func TestStockHandler_Update(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		stockSvc := &mockStockService{
			updateFn: func(uint, string, string, float64, float64, string, int64) (*models.Stock, error) {
				return nil, apperrors.ErrStockNotFound
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "PUT", "/api/stock/42", nflxPayload)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		stockSvc := &mockStockService{
			updateFn: func(id uint, symbol, companyName string, purchase, lastDiv float64, industry string, marketCap int64) (*models.Stock, error) {
				return &models.Stock{Base: models.Base{ID: id}, Symbol: symbol, CompanyName: companyName}, nil
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "PUT", "/api/stock/42", nflxPayload)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(42) {
			t.Errorf("unexpected body: %v", result)
		}
	})
}

func TestStockHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deleted uint
		stockSvc := &mockStockService{
			deleteFn: func(id uint) error {
				deleted = id
				return nil
			},
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "DELETE", "/api/stock/7", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deleted != 7 {
			t.Errorf("expected id 7 passed to service, got %d", deleted)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		stockSvc := &mockStockService{
			deleteFn: func(uint) error { return apperrors.ErrStockNotFound },
		}
		r := setupStockRouter(NewStockHandler(stockSvc))

		rec := doRequest(r, "DELETE", "/api/stock/7", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
