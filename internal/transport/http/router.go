package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cocomarket/shop/internal/handlers"
	"github.com/cocomarket/shop/internal/service/token"
)

type Deps struct {
	DB            *gorm.DB
	AuthHandler   *handlers.AuthHandler
	GoodsHandler  *handlers.GoodsHandler
	QAHandler     *handlers.QAHandler
	ReviewHandler *handlers.ReviewHandler
	OrderHandler  *handlers.OrderHandler
	SearchHandler *handlers.SearchHandler
	TokenService  *token.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	user := e.Group("/user")
	user.POST("/register", d.AuthHandler.Register)
	user.POST("/login", d.AuthHandler.Login)
	user.POST("/logout", d.AuthHandler.LogOut)

	goods := e.Group("/goods")
	goods.GET("/lists", d.GoodsHandler.GetLists)
	goods.GET("/info", d.GoodsHandler.GetInfo)
	goods.GET("/info/qa_lists", d.QAHandler.GetQALists)
	goods.GET("/info/review", d.ReviewHandler.GetReviews)
	goods.GET("/search", d.SearchHandler.Search)

	authed := goods.Group("", d.TokenService.AutoRefresh)
	authed.POST("/info/qa_lists", d.QAHandler.CreateQuestion)
	authed.POST("/info/reply", d.QAHandler.CreateReply)
	authed.POST("/info/review", d.ReviewHandler.CreateReview)

	seller := goods.Group("/registration", d.TokenService.AutoRefreshSeller)
	seller.POST("", d.GoodsHandler.Register)

	order := e.Group("/order", d.TokenService.AutoRefresh)
	order.POST("", d.OrderHandler.MakeOrder)
	order.GET("/lists", d.OrderHandler.GetOrders)
}
