package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
		&models.Role{},
		&models.Profile{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{ID: uuid.NewString(), Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	profile := models.Profile{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Email:    user.Email,
		Username: username,
		FullName: "Test User",
	}
	require.NoError(t, db.Create(&profile).Error)
	require.NoError(t, models.GrantRole(db, user.ID, models.RoleUser))
	return user
}

func newUserRouter(db *gorm.DB, actorID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", actorID) })
	r.GET("/me", GetMe(db))
	r.PUT("/me/profile", UpdateProfile(db))
	r.GET("/users", GetAllUsers(db))
	r.PUT("/users/:userID/admin", SetAdminRole(db))
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	user := seedAccount(t, db, "jane")
	r := newUserRouter(db, user.ID)

	w := doJSON(r, http.MethodPut, "/me/profile", gin.H{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "555-0100", profile.Phone)
	assert.Equal(t, "Test User", profile.FullName)
}

func TestSetAdminRoleGrantAndRevoke(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin")
	target := seedAccount(t, db, "target")
	require.NoError(t, models.GrantRole(db, admin.ID, models.RoleAdmin))
	r := newUserRouter(db, admin.ID)

	w := doJSON(r, http.MethodPut, "/users/"+target.ID+"/admin", gin.H{"is_admin": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ok, err := models.UserHasRole(db, target.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	w = doJSON(r, http.MethodPut, "/users/"+target.ID+"/admin", gin.H{"is_admin": false})
	require.Equal(t, http.StatusOK, w.Code)

	ok, err = models.UserHasRole(db, target.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetAdminRoleRejectsSelfChange(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin")
	require.NoError(t, models.GrantRole(db, admin.ID, models.RoleAdmin))
	r := newUserRouter(db, admin.ID)

	w := doJSON(r, http.MethodPut, "/users/"+admin.ID+"/admin", gin.H{"is_admin": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ok, err := models.UserHasRole(db, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetAdminRoleUnknownUser(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin")
	r := newUserRouter(db, admin.ID)

	w := doJSON(r, http.MethodPut, "/users/"+uuid.NewString()+"/admin", gin.H{"is_admin": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllUsersIncludesRoles(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin")
	seedAccount(t, db, "shopper")
	require.NoError(t, models.GrantRole(db, admin.ID, models.RoleAdmin))
	r := newUserRouter(db, admin.ID)

	w := doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	for _, u := range users {
		if u.Username == "admin" {
			assert.Contains(t, u.Roles, "admin")
		}
	}
}
