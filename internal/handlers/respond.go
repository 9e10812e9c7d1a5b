package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// User-facing messages. These strings are the API contract of the shop
// frontend and must not be reworded.
const (
	MsgNoSearchResult = "검색 결과가 없습니다."
	MsgNoGoods        = "해당 제품 정보가 없습니다."
	MsgNoQuestions    = "질문이 존재하지 않습니다."
	MsgNoContents     = "내용이 없습니다."
	MsgPostCreated    = "성공적으로 글이 작성 되었습니다."
	MsgReplyFailed    = "리플 실패"
	MsgReplyCreated   = "리플 성공"
	MsgNoReviews      = "리뷰가 존재하지 않습니다."
	MsgGoodsCreated   = "정상적으로 상품이 등록 되었습니다."
	MsgGoodsFailed    = "상품 등록이 실패 되었습니다."
	MsgNoStock        = "재고가 부족합니다."
	MsgNoRecipient    = "배송 정보가 없습니다."
	MsgOrderCreated   = "주문이 완료 되었습니다."
	MsgNoOrders       = "주문 내역이 없습니다."
	MsgLoggedOut      = "로그아웃 되었습니다."
)

type failKind int

const (
	failNotFound failKind = iota
	failValidation
)

// The API reports domain absence and rejected input through the same
// transport status; only the message tells them apart.
var failStatus = map[failKind]int{
	failNotFound:   http.StatusNotFound,
	failValidation: http.StatusNotFound,
}

func respondFail(c echo.Context, kind failKind, msg string) error {
	return c.JSON(failStatus[kind], echo.Map{"message": msg})
}

func respondMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}
