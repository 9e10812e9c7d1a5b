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

func newReviewHandler(t *testing.T) *ReviewHandler {
	return &ReviewHandler{
		DB:        newTestDB(t),
		Producer:  &mykafka.Producer{},
		JWTSecret: testSecret,
	}
}

func TestGetReviews(t *testing.T) {
	h := newReviewHandler(t)
	e := echo.New()

	g := seedGoods(t, h.DB, "freesia", 13000, 20)
	review := models.Review{
		Title:     "hello",
		Username:  "coco",
		Contents:  "It is good bro!",
		Star:      4,
		ReviewImg: "file",
		GoodsID:   g.ID,
	}
	require.NoError(t, h.DB.Create(&review).Error)

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/info/review?goods_id=1", nil)
	require.NoError(t, h.GetReviews(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	requireExactKeys(t, rows[0], "title", "username", "contents", "star", "review_img")
	require.Equal(t, float64(4), rows[0]["star"])
}

func TestGetReviewsEmpty(t *testing.T) {
	h := newReviewHandler(t)
	e := echo.New()

	seedGoods(t, h.DB, "freesia", 13000, 20)

	rec, c := newJSONContext(t, e, http.MethodGet, "/goods/info/review?goods_id=1", nil)
	require.NoError(t, h.GetReviews(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgNoReviews, messageOf(t, rec))
}

func TestCreateReview(t *testing.T) {
	h := newReviewHandler(t)
	e := echo.New()

	user := seedUser(t, h.DB, "coco@naver.com", "coco", "user")
	g := seedGoods(t, h.DB, "freesia", 13000, 20)

	body := map[string]interface{}{
		"title":      "hello",
		"username":   "coco",
		"contents":   "It is good bro!",
		"star":       4,
		"review_img": "file",
		"goods_id":   g.ID,
	}
	rec, c := newJSONContext(t, e, http.MethodPost, "/goods/info/review", body)
	c.Set("userID", user.ID)

	require.NoError(t, h.CreateReview(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, MsgPostCreated, messageOf(t, rec))

	var r models.Review
	require.NoError(t, h.DB.Where("title = ? AND username = ? AND star = ?", "hello", "coco", 4).First(&r).Error)
	require.Equal(t, g.ID, r.GoodsID)
}

func TestCreateReviewWithoutContents(t *testing.T) {
	h := newReviewHandler(t)
	e := echo.New()

	user := seedUser(t, h.DB, "coco@naver.com", "coco", "user")
	g := seedGoods(t, h.DB, "freesia", 13000, 20)

	body := map[string]interface{}{
		"title":      "hello",
		"username":   "coco",
		"star":       4,
		"review_img": "file",
		"goods_id":   g.ID,
	}
	rec, c := newJSONContext(t, e, http.MethodPost, "/goods/info/review", body)
	c.Set("userID", user.ID)

	require.NoError(t, h.CreateReview(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, MsgNoContents, messageOf(t, rec))

	var count int64
	require.NoError(t, h.DB.Model(&models.Review{}).Count(&count).Error)
	require.Zero(t, count)
}
