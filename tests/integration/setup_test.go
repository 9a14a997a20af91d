package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finwatch/internal/handlers"
	"finwatch/internal/logger"
	"finwatch/internal/middleware"
	"finwatch/internal/models"
	"finwatch/internal/services"
	"finwatch/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Stock{},
		&models.Comment{},
		&models.PortfolioItem{},
		&models.RefreshToken{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db, "integration-pepper")
	refreshTokenService := services.NewRefreshTokenService(db, 7, middleware.GenerateAccessToken)
	stockService := services.NewStockService(db)
	commentService := services.NewCommentService(db)
	portfolioService := services.NewPortfolioService(db, stockService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, refreshTokenService)
	stockHandler := handlers.NewStockHandler(stockService)
	commentHandler := handlers.NewCommentHandler(commentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	account := api.Group("/account")
	account.POST("/register", authHandler.Register)
	account.POST("/login", authHandler.Login)
	account.POST("/refresh", authHandler.Refresh)
	account.POST("/revoke", middleware.AuthMiddleware(), authHandler.Revoke)

	stock := api.Group("/stock")
	stock.GET("", stockHandler.Query)
	stock.GET("/:id", stockHandler.GetByID)
	stock.GET("/symbol/:symbol", stockHandler.GetBySymbol)
	stock.POST("", middleware.AuthMiddleware(), stockHandler.Create)
	stock.PUT("/:id", middleware.AuthMiddleware(), stockHandler.Update)
	stock.DELETE("/:id", middleware.AuthMiddleware(), stockHandler.Delete)

	comment := api.Group("/comment")
	comment.GET("", commentHandler.GetAll)
	comment.GET("/:id", commentHandler.GetByID)
	comment.POST("/:stockId", middleware.AuthMiddleware(), commentHandler.Create)
	comment.PUT("/:id", middleware.AuthMiddleware(), commentHandler.Update)
	comment.DELETE("/:id", middleware.AuthMiddleware(), commentHandler.Delete)

	portfolio := api.Group("/portfolio", middleware.AuthMiddleware())
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Add)
	portfolio.DELETE("", portfolioHandler.Remove)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a list of maps.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, username string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@test.com","password":"password123"}`, username, username)
	rec := app.request("POST", "/api/account/register", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/account/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createStock creates a stock via the API and returns its ID.
func (app *testApp) createStock(t *testing.T, token, symbol string, purchase float64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"symbol":%q,"company_name":"Company %s","purchase":%g,"last_div":0,"industry":"Technology","market_cap":1000000}`,
		symbol, symbol, purchase)
	rec := app.request("POST", "/api/stock", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("create stock failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}
