package adminControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func newAdminRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/analytics", GetAnalytics(db))
	r.GET("/overview", GetOverview(db))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type analyticsResponse struct {
	Orders struct {
		Total  int64 `json:"total"`
		Last30 int64 `json:"last_30d"`
		Last7  int64 `json:"last_7d"`
	} `json:"orders"`
	Revenue struct {
		Total decimal.Decimal `json:"total"`
	} `json:"revenue"`
	Users struct {
		Total int64 `json:"total"`
	} `json:"users"`
	Products struct {
		Total      int64 `json:"total"`
		Featured   int64 `json:"featured"`
		OutOfStock int64 `json:"out_of_stock"`
	} `json:"products"`
	ConversionRate float64 `json:"conversion_rate"`
	TopCategories  []struct {
		CategoryName  string `json:"category_name"`
		TotalQuantity int    `json:"total_quantity"`
	} `json:"top_categories"`
	AbandonedCarts int64 `json:"abandoned_carts"`
}

func TestAnalyticsEmptyStore(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	w := get(r, "/analytics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Orders.Total)
	assert.True(t, resp.Revenue.Total.IsZero())
	// no users means no conversion rate, not a division error
	assert.Zero(t, resp.ConversionRate)
	assert.Empty(t, resp.TopCategories)
	assert.Zero(t, resp.AbandonedCarts)
}

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, total string, age time.Duration) models.Order {
	t.Helper()
	order := models.Order{
		ID:          uuid.NewString(),
		UserID:      "user-1",
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
	}
	require.NoError(t, db.Create(&order).Error)
	if age > 0 {
		created := time.Now().UTC().Add(-age)
		require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]any{"created_at": created}).Error)
	}
	return order
}

func TestAnalyticsRevenueCountsOnlyCompletedOrders(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	seedOrder(t, db, models.OrderStatusCompleted, "100.00", 0)
	seedOrder(t, db, models.OrderStatusCompleted, "50.00", 0)
	seedOrder(t, db, models.OrderStatusPending, "999.00", 0)
	seedOrder(t, db, models.OrderStatusCancelled, "888.00", 0)

	w := get(r, "/analytics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 4, resp.Orders.Total)
	assert.True(t, resp.Revenue.Total.Equal(decimal.RequireFromString("150.00")),
		"got %s", resp.Revenue.Total)
}

func TestAnalyticsConversionRateAndWindows(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.User{
			ID: uuid.NewString(), Email: fmt.Sprintf("u%d@example.com", i), PasswordHash: "x",
		}).Error)
	}
	seedOrder(t, db, models.OrderStatusPending, "10.00", 0)
	seedOrder(t, db, models.OrderStatusPending, "10.00", 40*24*time.Hour)

	w := get(r, "/analytics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Orders.Total)
	assert.EqualValues(t, 1, resp.Orders.Last30)
	// 2 orders / 3 users * 100, rounded to 2 decimal places
	assert.InDelta(t, 66.67, resp.ConversionRate, 0.001)
	// pending and older than 24h
	assert.EqualValues(t, 1, resp.AbandonedCarts)
	assert.EqualValues(t, 3, resp.Users.Total)
}

func TestAnalyticsTopCategories(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	category := models.Category{ID: uuid.NewString(), Name: "Peripherals", Slug: "peripherals", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	keyboard := models.Product{
		ID: uuid.NewString(), Name: "Keyboard", Slug: "keyboard",
		Price: decimal.RequireFromString("10.00"), CategoryID: &category.ID,
	}
	require.NoError(t, db.Create(&keyboard).Error)

	order := seedOrder(t, db, models.OrderStatusCompleted, "30.00", 0)
	require.NoError(t, db.Create(&models.OrderItem{
		ID: uuid.NewString(), OrderID: order.ID, ProductID: keyboard.ID,
		ProductName: "Keyboard", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00"),
	}).Error)

	w := get(r, "/analytics")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TopCategories, 1)
	assert.Equal(t, "Peripherals", resp.TopCategories[0].CategoryName)
	assert.Equal(t, 3, resp.TopCategories[0].TotalQuantity)
}

func TestOverviewTopProducts(t *testing.T) {
	db := newTestDB(t)
	r := newAdminRouter(db)

	keyboard := models.Product{
		ID: uuid.NewString(), Name: "Keyboard", Slug: "keyboard",
		Price: decimal.RequireFromString("10.00"),
	}
	mouse := models.Product{
		ID: uuid.NewString(), Name: "Mouse", Slug: "mouse",
		Price: decimal.RequireFromString("5.00"),
	}
	require.NoError(t, db.Create(&keyboard).Error)
	require.NoError(t, db.Create(&mouse).Error)

	order := seedOrder(t, db, models.OrderStatusCompleted, "40.00", 0)
	require.NoError(t, db.Create(&models.OrderItem{
		ID: uuid.NewString(), OrderID: order.ID, ProductID: keyboard.ID,
		ProductName: "Keyboard", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00"),
	}).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		ID: uuid.NewString(), OrderID: order.ID, ProductID: mouse.ID,
		ProductName: "Mouse", Quantity: 2, UnitPrice: decimal.RequireFromString("5.00"),
	}).Error)

	w := get(r, "/overview")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		TotalOrders  int64           `json:"total_orders"`
		TotalRevenue decimal.Decimal `json:"total_revenue"`
		TopProducts  []struct {
			ProductName   string `json:"product_name"`
			TotalQuantity int    `json:"total_quantity"`
		} `json:"top_products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.TotalOrders)
	assert.True(t, resp.TotalRevenue.Equal(decimal.RequireFromString("40.00")))
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, "Keyboard", resp.TopProducts[0].ProductName)
	assert.Equal(t, 3, resp.TopProducts[0].TotalQuantity)
}
