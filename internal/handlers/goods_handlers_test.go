package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/cocomarket/shop/internal/models"
	"github.com/cocomarket/shop/internal/mykafka"
)

func newGoodsHandler(t *testing.T) *GoodsHandler {
	return &GoodsHandler{
		DB:        newTestDB(t),
		Producer:  &mykafka.Producer{},
		JWTSecret: testSecret,
	}
}

func TestGetListsFiltersByPriceRange(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seedGoods(t, h.DB, "freesia", 13000, 20)
	seedGoods(t, h.DB, "rose", 60000, 5)

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/lists?min=1000&max=50000", nil)
	require.NoError(t, h.GetLists(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	requireExactKeys(t, rows[0], "goods_id", "goods_name", "goods_img", "goods_price")
	require.Equal(t, "freesia", rows[0]["goods_name"])
	require.Equal(t, float64(13000), rows[0]["goods_price"])
}

func TestGetListsNoMatches(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seedGoods(t, h.DB, "freesia", 13000, 20)

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/lists?min=50000", nil)
	require.NoError(t, h.GetLists(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgNoSearchResult, messageOf(t, rec))
}

func TestGetListsRepeatedReadIsIdentical(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seedGoods(t, h.DB, "freesia", 13000, 20)
	seedGoods(t, h.DB, "tulip", 22000, 3)

	rec1, c1 := newJSONContext(t, e, http.MethodGet, "/goods/lists?min=1000", nil)
	require.NoError(t, h.GetLists(c1))
	rec2, c2 := newJSONContext(t, e, http.MethodGet, "/goods/lists?min=1000", nil)
	require.NoError(t, h.GetLists(c2))

	require.Equal(t, rec1.Body.String(), rec2.Body.String())
}

func TestGetInfo(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seedGoods(t, h.DB, "freesia", 13000, 20)

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/info?goods_id=1", nil)
	require.NoError(t, h.GetInfo(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	requireExactKeys(t, detail, "goods_name", "goods_img", "goods_price", "info_img")
}

func TestGetInfoMissingGoods(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/info?goods_id=5", nil)
	require.NoError(t, h.GetInfo(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgNoGoods, messageOf(t, rec))
}

func TestRegisterGoods(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seller := seedUser(t, h.DB, "coco@naver.com", "coco", "seller")

	body := map[string]interface{}{
		"goods_name":  "freesia",
		"goods_img":   "file",
		"goods_price": 13000,
		"stock":       20,
		"info_img":    "file",
	}
	rec, c := newJSONContext(t, e, http.MethodPost, "/goods/registration", body)
	c.Set("userID", seller.ID)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, MsgGoodsCreated, messageOf(t, rec))

	var g models.Goods
	require.NoError(t, h.DB.Where("goods_name = ? AND goods_price = ? AND stock = ?", "freesia", 13000, 20).First(&g).Error)
}

func TestRegisterGoodsMissingField(t *testing.T) {
	h := newGoodsHandler(t)
	e := echo.New()

	seller := seedUser(t, h.DB, "coco@naver.com", "coco", "seller")

	body := map[string]interface{}{
		"goods_name":  "freesia",
		"goods_price": 13000,
		"stock":       20,
		"info_img":    "file",
	}
	rec, c := newJSONContext(t, e, http.MethodPost, "/goods/registration", body)
	c.Set("userID", seller.ID)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgGoodsFailed, messageOf(t, rec))

	var count int64
	require.NoError(t, h.DB.Model(&models.Goods{}).Count(&count).Error)
	require.Zero(t, count)
}
