package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cocomarket/shop/internal/es"
	"github.com/cocomarket/shop/internal/models"
	"github.com/cocomarket/shop/internal/mykafka"
)

type GoodsHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	ES        *elasticsearch.Client
	ESIndex   string
	JWTSecret []byte
}

// goodsSummary is the listing projection: exactly these four keys, no
// stock or detail image leaking into list responses.
type goodsSummary struct {
	GoodsID    uint   `json:"goods_id"`
	GoodsName  string `json:"goods_name"`
	GoodsImg   string `json:"goods_img"`
	GoodsPrice int    `json:"goods_price"`
}

type goodsDetail struct {
	GoodsName  string `json:"goods_name"`
	GoodsImg   string `json:"goods_img"`
	GoodsPrice int    `json:"goods_price"`
	InfoImg    string `json:"info_img"`
}

func (h *GoodsHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "goods_events", fmt.Sprint(event["goodsID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// GetLists returns goods filtered by the optional min/max price bounds.
func (h *GoodsHandler) GetLists(c echo.Context) error {
	q := h.DB.Model(&models.Goods{})

	if raw := c.QueryParam("min"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid min price")
		}
		q = q.Where("goods_price >= ?", v)
	}
	if raw := c.QueryParam("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid max price")
		}
		q = q.Where("goods_price <= ?", v)
	}

	var rows []goodsSummary
	if err := q.
		Select("id AS goods_id, goods_name, goods_img, goods_price").
		Order("id ASC").
		Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(rows) == 0 {
		return respondFail(c, failNotFound, MsgNoSearchResult)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *GoodsHandler) GetInfo(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("goods_id"))
	if err != nil || id <= 0 {
		return respondFail(c, failNotFound, MsgNoGoods)
	}

	var g models.Goods
	if err := h.DB.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondFail(c, failNotFound, MsgNoGoods)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, goodsDetail{
		GoodsName:  g.GoodsName,
		GoodsImg:   g.GoodsImg,
		GoodsPrice: g.GoodsPrice,
		InfoImg:    g.InfoImg,
	})
}

// Register stores a new goods row for the authenticated seller. All
// fields are required together; a positive price and non-negative
// stock are part of the contract.
func (h *GoodsHandler) Register(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		GoodsName  string `json:"goods_name"`
		GoodsImg   string `json:"goods_img"`
		GoodsPrice int    `json:"goods_price"`
		Stock      *int   `json:"stock"`
		InfoImg    string `json:"info_img"`
	}
	if err := c.Bind(&req); err != nil {
		return respondFail(c, failValidation, MsgGoodsFailed)
	}

	if req.GoodsName == "" || req.GoodsImg == "" || req.InfoImg == "" ||
		req.GoodsPrice <= 0 || req.Stock == nil || *req.Stock < 0 {
		return respondFail(c, failValidation, MsgGoodsFailed)
	}

	g := models.Goods{
		GoodsName:  req.GoodsName,
		GoodsImg:   req.GoodsImg,
		GoodsPrice: req.GoodsPrice,
		Stock:      *req.Stock,
		InfoImg:    req.InfoImg,
	}
	if err := h.DB.Create(&g).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.ES != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		if err := es.IndexGoods(ctx, h.ES, h.ESIndex, &g); err != nil {
			c.Logger().Errorf("ES index error: %v", err)
		}
		cancel()
	}

	h.publish(c, map[string]any{
		"type":    "goods_registered",
		"goodsID": g.ID,
		"name":    g.GoodsName,
		"userID":  userID,
	})

	return respondMessage(c, MsgGoodsCreated)
}
