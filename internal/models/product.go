package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors a row of the products table.
type Product struct {
	ProductID    int64           `db:"product_id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	Price        decimal.Decimal `db:"price"`
	Stock        int             `db:"stock"`
	ImageURL     *string         `db:"image_url"`
	CreatedDate  time.Time       `db:"created_date"`
	ModifiedDate time.Time       `db:"modified_date"`
	IsActive     bool            `db:"is_active"`
}
