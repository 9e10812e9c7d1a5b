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

type QAHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte
}

// qaEntry joins a question with the asking user's name and the reply
// text, null while unanswered.
type qaEntry struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Username string  `json:"username"`
	Contents string  `json:"contents"`
	Reply    *string `json:"reply"`
}

func (h *QAHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "qa_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *QAHandler) GetQALists(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("goods_id"))
	if err != nil || id <= 0 {
		return respondFail(c, failNotFound, MsgNoQuestions)
	}

	var rows []qaEntry
	if err := h.DB.Table("q_lists").
		Select("q_lists.id, q_lists.title, users.username, q_lists.contents, reply.text AS reply").
		Joins("JOIN users ON users.id = q_lists.user_id").
		Joins("LEFT JOIN reply ON reply.qa_list_id = q_lists.id").
		Where("q_lists.goods_id = ?", id).
		Order("q_lists.id ASC").
		Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(rows) == 0 {
		return respondFail(c, failNotFound, MsgNoQuestions)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *QAHandler) CreateQuestion(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Title    string `json:"title"`
		Contents string `json:"contents"`
		GoodsID  uint   `json:"goods_id"`
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

	q := models.QList{
		UserID:   userID,
		GoodsID:  req.GoodsID,
		Title:    req.Title,
		Contents: req.Contents,
	}
	if err := h.DB.Create(&q).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":    "question_created",
		"userID":  userID,
		"goodsID": req.GoodsID,
		"qaID":    q.ID,
	})

	return respondMessage(c, MsgPostCreated)
}

func (h *QAHandler) CreateReply(c echo.Context) error {
	userID, err := sessionUserID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		Text     string `json:"text"`
		QAListID uint   `json:"qa_list_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if strings.TrimSpace(req.Text) == "" {
		return respondFail(c, failValidation, MsgReplyFailed)
	}

	if err := h.DB.First(&models.QList{}, req.QAListID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondFail(c, failNotFound, MsgReplyFailed)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	r := models.Reply{
		Text:     req.Text,
		QAListID: req.QAListID,
	}
	if err := h.DB.Create(&r).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":    "reply_created",
		"userID":  userID,
		"qaID":    req.QAListID,
		"replyID": r.ID,
	})

	return respondMessage(c, MsgReplyCreated)
}
