package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cocomarket/shop/internal/models"
	"github.com/cocomarket/shop/internal/mykafka"
)

type ReviewHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte
}

type reviewEntry struct {
	Title     string `json:"title"`
	Username  string `json:"username"`
	Contents  string `json:"contents"`
	Star      int    `json:"star"`
	ReviewImg string `json:"review_img"`
}

func (h *ReviewHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "review_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("goods_id"))
	if err != nil || id <= 0 {
		return respondFail(c, failNotFound, MsgNoReviews)
	}

	var rows []reviewEntry
	if err := h.DB.Model(&models.Review{}).
		Select("title, username, contents, star, review_img").
		Where("goods_id = ?", id).
		Order("id ASC").
		Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(rows) == 0 {
		return respondFail(c, failNotFound, MsgNoReviews)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Title     string `json:"title"`
		Username  string `json:"username"`
		Contents  string `json:"contents"`
		Star      int    `json:"star"`
		ReviewImg string `json:"review_img"`
		GoodsID   uint   `json:"goods_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(req.Contents) == "" {
		return respondFail(c, failValidation, MsgNoContents)
	}

	if err := h.DB.First(&models.Goods{}, req.GoodsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondFail(c, failNotFound, MsgNoGoods)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	r := models.Review{
		Title:     req.Title,
		Username:  req.Username,
		Contents:  req.Contents,
		Star:      req.Star,
		ReviewImg: req.ReviewImg,
		GoodsID:   req.GoodsID,
	}
	if err := h.DB.Create(&r).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":     "review_created",
		"userID":   userID,
		"goodsID":  req.GoodsID,
		"reviewID": r.ID,
		"star":     r.Star,
	})

	return respondMessage(c, MsgPostCreated)
}
