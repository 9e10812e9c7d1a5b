package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cocomarket/shop/internal/hash"
	"github.com/cocomarket/shop/internal/models"
)

var testSecret = []byte("test-secret")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Goods{},
		&models.QList{},
		&models.Reply{},
		&models.Review{},
		&models.OrderList{},
	))
	return db
}

func newJSONContext(t *testing.T, e *echo.Echo, method, target string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func seedUser(t *testing.T, db *gorm.DB, email, username, role string) models.User {
	t.Helper()

	passwordHash, err := hash.HashPassword("1234")
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedGoods(t *testing.T, db *gorm.DB, name string, price, stock int) models.Goods {
	t.Helper()

	g := models.Goods{
		GoodsName:  name,
		GoodsImg:   "file",
		GoodsPrice: price,
		Stock:      stock,
		InfoImg:    "file",
	}
	require.NoError(t, db.Create(&g).Error)
	return g
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["message"]
}

// requireExactKeys asserts the fixed-key projection contract of the
// read endpoints: no extra fields may leak.
func requireExactKeys(t *testing.T, obj map[string]interface{}, keys ...string) {
	t.Helper()

	require.Len(t, obj, len(keys))
	for _, k := range keys {
		require.Contains(t, obj, k)
	}
}
