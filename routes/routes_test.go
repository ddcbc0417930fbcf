package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.WishlistEntry{},
		&models.ViewedEntry{},
	))
	require.NoError(t, models.SeedRoles(db))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, db)
	return r, db
}

func request(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r http.Handler, email, username string) (token, userID string) {
	t.Helper()
	w := request(r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":     email,
		"password":  "hunter22",
		"username":  username,
		"full_name": "Test User",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session.Token, session.User.ID
}

func TestStorefrontFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, db := newTestServer(t)

	adminToken, adminID := signUp(t, r, "admin@example.com", "admin")
	require.NoError(t, models.GrantRole(db, adminID, models.RoleAdmin))
	shopperToken, _ := signUp(t, r, "shopper@example.com", "shopper")

	// admin builds the catalog
	w := request(r, http.MethodPost, "/api/admin/categories", adminToken, gin.H{"name": "Peripherals"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))

	w = request(r, http.MethodGet, "/api/admin/categories", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)

	w = request(r, http.MethodPost, "/api/admin/products", adminToken, gin.H{
		"name":        "Mechanical Keyboard",
		"price":       "50.00",
		"category_id": category.ID,
		"stock":       10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

	// catalog is public
	w = request(r, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// shopper places an order
	w = request(r, http.MethodPost, "/api/orders", shopperToken, gin.H{
		"payment_method": "card",
		"shipping_address": gin.H{
			"full_name":     "Shopper",
			"phone":         "555-0100",
			"address_line1": "1 Main St",
			"city":          "Springfield",
			"state":         "IL",
			"postal_code":   "62701",
		},
		"items": []gin.H{{"product_id": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = request(r, http.MethodGet, "/api/orders/"+created.ID, shopperToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("100.00")), "got %s", order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// admin completes it
	w = request(r, http.MethodPut, "/api/admin/orders/"+created.ID+"/status", adminToken, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouteAuthorization(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := newTestServer(t)

	shopperToken, _ := signUp(t, r, "shopper@example.com", "shopper")

	// no token
	w := request(r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = request(r, http.MethodGet, "/api/orders", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token without the admin role
	w = request(r, http.MethodGet, "/api/admin/orders", shopperToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// catalog stays public
	w = request(r, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := newTestServer(t)

	token, userID := signUp(t, r, "jane@example.com", "jane")

	w := request(r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, []string{"user"}, resp.Roles)
}
