package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// API payloads carry prices as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var ALL_ORDER_TABLES []interface{} = []interface{}{
	Customer{}, Item{}, Order{}, OrderLine{},
}

type Customer struct {
	ID    uint   `json:"customer_id" gorm:"column:customer_id;primary_key;auto_increment"`
	Name  string `json:"name" gorm:"not null"`
	Phone string `json:"phone" gorm:"uniqueIndex;not null"`
}

type Item struct {
	ID    uint            `json:"item_id" gorm:"column:item_id;primary_key;auto_increment"`
	Name  string          `json:"name" gorm:"uniqueIndex;not null"`
	Price decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
}

type Order struct {
	ID          uint            `json:"order_id" gorm:"column:order_id;primary_key;auto_increment"`
	CustomerID  uint            `json:"customer_id" gorm:"index;not null"`
	Customer    *Customer       `json:"-" gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:RESTRICT"`
	OrderDate   int64           `json:"order_date" gorm:"not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Notes       string          `json:"notes" gorm:"default:''"`
	Lines       []OrderLine     `json:"-" gorm:"foreignKey:OrderID;references:ID"`
}

// OrderLine aggregates repeated raw entries of one item within one order.
// At most one row per (order, item); repeats are carried by Quantity.
type OrderLine struct {
	OrderID     uint            `json:"order_id" gorm:"column:order_id;primary_key;auto_increment:false"`
	ItemID      uint            `json:"item_id" gorm:"column:item_id;primary_key;auto_increment:false"`
	Item        *Item           `json:"-" gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:RESTRICT"`
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity >= 1"`
	PriceAtTime decimal.Decimal `json:"price_at_time" gorm:"type:decimal(10,2);not null"`
}

func (OrderLine) TableName() string {
	return "order_items"
}
