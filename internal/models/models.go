package models

import (
	"time"
)

// Table names are pinned to the original shop schema, so TableName is
// implemented explicitly instead of relying on gorm pluralization
// (notably "reply" and "q_lists").

type Goods struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"    json:"goods_id"`
	GoodsName  string    `gorm:"column:goods_name;not null"  json:"goods_name"`
	GoodsImg   string    `gorm:"column:goods_img;not null"   json:"goods_img"`
	GoodsPrice int       `gorm:"column:goods_price;not null" json:"goods_price"`
	Stock      int       `gorm:"not null;default:0"          json:"stock"`
	InfoImg    string    `gorm:"column:info_img"             json:"info_img"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Goods) TableName() string { return "goods" }

type QList struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	GoodsID   uint      `gorm:"index;not null"           json:"goods_id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (QList) TableName() string { return "q_lists" }

type Reply struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"         json:"id"`
	Text      string    `gorm:"not null"                         json:"text"`
	QAListID  uint      `gorm:"column:qa_list_id;index;not null" json:"qa_list_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Reply) TableName() string { return "reply" }

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Contents  string    `json:"contents"`
	Star      int       `json:"star"`
	ReviewImg string    `gorm:"column:review_img"        json:"review_img"`
	GoodsID   uint      `gorm:"index;not null"           json:"goods_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Review) TableName() string { return "reviews" }

const (
	OrderStatePending = iota
	OrderStatePaid
	OrderStateShipping
	OrderStateDelivered
)

type OrderList struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint      `gorm:"index;not null"           json:"user_id"`
	GoodsID           uint      `gorm:"index;not null"           json:"goods_id"`
	GoodsQuantity     int       `gorm:"not null"                 json:"goods_quantity"`
	OrderDate         time.Time `gorm:"not null"                 json:"order_date"`
	RecName           string    `json:"rec_name"`
	RecPhone          string    `json:"rec_phone"`
	RecAddress        string    `json:"rec_address"`
	DeliveryCompanyID int       `json:"delivery_company_id"`
	InvoiceNumber     int       `json:"invoice_number"`
	OrderState        int       `gorm:"default:0"                json:"order_state"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

func (OrderList) TableName() string { return "order_lists" }

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	Username     string `gorm:"not null"                 json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
