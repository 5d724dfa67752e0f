package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"backoffice/config"
	"backoffice/infrastructure/persistence/rdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "backoffice", Version: "test", Env: "test"},
		Server: config.ServerConfig{Port: "0", ShutdownTimeout: time.Second},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       600,
		},
		Database: config.DatabaseConfig{
			Retry: config.RetryConfig{MaxAttempts: 1},
		},
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), rdb.GormConfig(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, rdb.AutoMigrate(db))

	app, err := NewBuilder(testConfig()).WithDB(db).Build()
	require.NoError(t, err)
	return app.GetEngine()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
	Code    int             `json:"code"`
}

func send(t *testing.T, engine *gin.Engine, method, path, contentType string, body io.Reader) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func sendJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return send(t, engine, method, path, "application/json", bytes.NewReader(body))
}

func sendForm(t *testing.T, engine *gin.Engine, method, path string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return send(t, engine, method, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idOnly struct {
	ID string `json:"id"`
}

type orderBody struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	PaidTotal string `json:"paid_total"`
	Balance   string `json:"balance"`
	Items     []struct {
		Description string `json:"description"`
	} `json:"items"`
}

func createClient(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w, env := sendJSON(t, engine, http.MethodPost, "/api/v1/clients", map[string]string{
		"first_name": "Ana",
		"last_name":  "García",
		"email":      "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[idOnly](t, env.Data).ID
}

func TestHealthAndRoot(t *testing.T) {
	engine := newTestEngine(t)

	w, _ := send(t, engine, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database"`)

	w, _ = send(t, engine, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOrderFormFlowWithPayments(t *testing.T) {
	engine := newTestEngine(t)
	clientID := createClient(t, engine)

	form := url.Values{
		"client_id":          {clientID},
		"notes":              {" deliver friday "},
		"item_description[]": {"Screws", "Box", ""},
		"item_qty[]":         {"0.1", "3"},
		"item_price[]":       {"0.2", "1.5"},
		"item_product_id[]":  {"", ""},
	}
	w, env := sendForm(t, engine, http.MethodPost, "/api/v1/orders", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[orderBody](t, env.Data)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "4.52", created.Total)
	assert.Len(t, created.Items, 2)

	w, env = sendJSON(t, engine, http.MethodPost, "/api/v1/orders/"+created.ID+"/payments", map[string]string{"amount": "-5", "reference": "REF-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", env.Error)
	echoed := decode[struct {
		Input struct {
			Amount    string `json:"amount"`
			Reference string `json:"reference"`
		} `json:"input"`
	}](t, env.Details)
	assert.Equal(t, "-5", echoed.Input.Amount)
	assert.Equal(t, "REF-1", echoed.Input.Reference)

	w, env = sendJSON(t, engine, http.MethodPost, "/api/v1/orders/"+created.ID+"/payments", map[string]string{"amount": "2", "method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := decode[struct {
		Payment idOnly `json:"payment"`
		Balance string `json:"balance"`
	}](t, env.Data)
	assert.Equal(t, "2.52", result.Balance)

	w, env = send(t, engine, http.MethodGet, "/api/v1/orders/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[orderBody](t, env.Data)
	assert.Equal(t, "2.00", fetched.PaidTotal)

	w, env = send(t, engine, http.MethodDelete, "/api/v1/payments/"+result.Payment.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4.52", decode[struct {
		Balance string `json:"balance"`
	}](t, env.Data).Balance)

	w, _ = send(t, engine, http.MethodDelete, "/api/v1/orders/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = send(t, engine, http.MethodGet, "/api/v1/orders/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestOrderValidationEchoesInput(t *testing.T) {
	engine := newTestEngine(t)
	clientID := createClient(t, engine)

	w, env := sendJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"client_id": clientID,
		"items": []map[string]string{
			{"description": "Screws", "quantity": "-1", "unit_price": "2"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, "VALIDATION_ERROR", env.Error)

	details := decode[struct {
		Violations []struct {
			Field string `json:"field"`
		} `json:"violations"`
		Input struct {
			ClientID string `json:"client_id"`
		} `json:"input"`
	}](t, env.Details)
	require.NotEmpty(t, details.Violations)
	assert.Equal(t, clientID, details.Input.ClientID)
}

func TestQuoteConversion(t *testing.T) {
	engine := newTestEngine(t)
	clientID := createClient(t, engine)

	w, env := sendJSON(t, engine, http.MethodPost, "/api/v1/quotes", map[string]any{
		"client_id":   clientID,
		"valid_until": "2030-01-31",
		"items": []map[string]string{
			{"description": "Design", "quantity": "2", "unit_price": "100"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	quoteID := decode[idOnly](t, env.Data).ID

	w, env = send(t, engine, http.MethodPost, "/api/v1/quotes/"+quoteID+"/convert", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[orderBody](t, env.Data)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "200.00", order.Total)

	w, env = send(t, engine, http.MethodGet, "/api/v1/quotes/"+quoteID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", decode[struct {
		Status string `json:"status"`
	}](t, env.Data).Status)

	w, env = send(t, engine, http.MethodPost, "/api/v1/quotes/missing/convert", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestListingAndCalendar(t *testing.T) {
	engine := newTestEngine(t)
	clientID := createClient(t, engine)

	for i := 0; i < 3; i++ {
		w, _ := sendJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]any{"client_id": clientID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders?q=gar&page=1&page_size=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data       []idOnly `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	w2, env := sendJSON(t, engine, http.MethodPost, "/api/v1/followups", map[string]string{
		"client_id": clientID,
		"kind":      "delivery",
		"title":     "Drop off",
		"when_at":   "2030-02-10T09:30",
	})
	require.Equal(t, http.StatusCreated, w2.Code, w2.Body.String())
	followUpID := decode[idOnly](t, env.Data).ID

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/followups/calendar?start=2030-02-01&end=2030-02-10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var events []struct {
		ID              string `json:"id"`
		BackgroundColor string `json:"backgroundColor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, followUpID, events[0].ID)
	assert.Equal(t, "#28a745", events[0].BackgroundColor)
}

func TestDashboard(t *testing.T) {
	engine := newTestEngine(t)
	clientID := createClient(t, engine)

	w, _ := sendJSON(t, engine, http.MethodPost, "/api/v1/orders", map[string]any{
		"client_id": clientID,
		"items": []map[string]string{
			{"description": "Screws", "quantity": "4", "unit_price": "2.50"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := send(t, engine, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	type period struct {
		Period  string `json:"period"`
		Revenue string `json:"revenue"`
	}
	d := decode[struct {
		ActiveClients  int64    `json:"active_clients"`
		Orders         int64    `json:"orders"`
		PendingOrders  int64    `json:"pending_orders"`
		Revenue        string   `json:"revenue"`
		DailyRevenue   []period `json:"daily_revenue"`
		MonthlyRevenue []period `json:"monthly_revenue"`
		TopClients     []struct {
			ClientID string `json:"client_id"`
			Revenue  string `json:"revenue"`
		} `json:"top_clients"`
		TopProductsByQuantity []struct {
			Name     string `json:"name"`
			Quantity string `json:"quantity"`
		} `json:"top_products_by_quantity"`
	}](t, env.Data)

	assert.Equal(t, int64(1), d.ActiveClients)
	assert.Equal(t, int64(1), d.Orders)
	assert.Equal(t, int64(1), d.PendingOrders)
	assert.Equal(t, "10.00", d.Revenue)
	require.Len(t, d.DailyRevenue, 30)
	assert.Equal(t, "10.00", d.DailyRevenue[29].Revenue)
	assert.Equal(t, "0.00", d.DailyRevenue[0].Revenue)
	require.Len(t, d.MonthlyRevenue, 6)
	assert.Equal(t, "10.00", d.MonthlyRevenue[5].Revenue)
	require.Len(t, d.TopClients, 1)
	assert.Equal(t, clientID, d.TopClients[0].ClientID)
	require.Len(t, d.TopProductsByQuantity, 1)
	assert.Equal(t, "Uncatalogued", d.TopProductsByQuantity[0].Name)
	assert.Equal(t, "4", d.TopProductsByQuantity[0].Quantity)
}

func TestBindingErrorIsBadRequest(t *testing.T) {
	engine := newTestEngine(t)

	w, env := send(t, engine, http.MethodPost, "/api/v1/clients", "application/json", strings.NewReader("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error)
}
