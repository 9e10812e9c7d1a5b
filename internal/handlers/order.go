package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cocomarket/shop/internal/models"
	"github.com/cocomarket/shop/internal/mykafka"
)

type OrderHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte
}

var (
	errGoodsNotFound     = errors.New("goods not found")
	errInsufficientStock = errors.New("insufficient stock")
)

type orderEntry struct {
	OrderID       uint      `json:"order_id"`
	GoodsID       uint      `json:"goods_id"`
	GoodsName     string    `json:"goods_name"`
	GoodsQuantity int       `json:"goods_quantity"`
	OrderDate     time.Time `json:"order_date"`
	OrderState    int       `json:"order_state"`
	RecName       string    `json:"rec_name"`
	RecPhone      string    `json:"rec_phone"`
	RecAddress    string    `json:"rec_address"`
	InvoiceNumber int       `json:"invoice_number"`
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// MakeOrder places one order: the stock check and decrement ride the
// same transaction as the order insert.
func (h *OrderHandler) MakeOrder(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		GoodsID       uint   `json:"goods_id"`
		GoodsQuantity int    `json:"goods_quantity"`
		RecName       string `json:"rec_name"`
		RecPhone      string `json:"rec_phone"`
		RecAddress    string `json:"rec_address"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.GoodsQuantity < 1 {
		req.GoodsQuantity = 1
	}
	if req.RecName == "" || req.RecPhone == "" || req.RecAddress == "" {
		return respondFail(c, failValidation, MsgNoRecipient)
	}

	var order models.OrderList
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var g models.Goods
		if err := tx.First(&g, req.GoodsID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errGoodsNotFound
			}
			return err
		}

		if g.Stock < req.GoodsQuantity {
			return errInsufficientStock
		}
		g.Stock -= req.GoodsQuantity
		if err := tx.Save(&g).Error; err != nil {
			return err
		}

		order = models.OrderList{
			UserID:        userID,
			GoodsID:       req.GoodsID,
			GoodsQuantity: req.GoodsQuantity,
			OrderDate:     time.Now(),
			RecName:       req.RecName,
			RecPhone:      req.RecPhone,
			RecAddress:    req.RecAddress,
			OrderState:    models.OrderStatePending,
		}
		return tx.Create(&order).Error
	})

	switch {
	case errors.Is(txErr, errGoodsNotFound):
		return respondFail(c, failNotFound, MsgNoGoods)
	case errors.Is(txErr, errInsufficientStock):
		return respondFail(c, failValidation, MsgNoStock)
	case txErr != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	h.publish(c, map[string]any{
		"type":     "order_created",
		"userID":   userID,
		"orderID":  order.ID,
		"goodsID":  order.GoodsID,
		"quantity": order.GoodsQuantity,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":  MsgOrderCreated,
		"order_id": order.ID,
	})
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var rows []orderEntry
	if err := h.DB.Table("order_lists").
		Select("order_lists.id AS order_id, order_lists.goods_id, goods.goods_name, order_lists.goods_quantity, order_lists.order_date, order_lists.order_state, order_lists.rec_name, order_lists.rec_phone, order_lists.rec_address, order_lists.invoice_number").
		Joins("JOIN goods ON goods.id = order_lists.goods_id").
		Where("order_lists.user_id = ?", userID).
		Order("order_lists.id DESC").
		Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(rows) == 0 {
		return respondFail(c, failNotFound, MsgNoOrders)
	}
	return c.JSON(http.StatusOK, rows)
}
