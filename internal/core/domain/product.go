package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product in the domain.
type Product struct {
	ProductID    int64           `json:"productID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     *string         `json:"imageURL,omitempty"`
	CreatedDate  time.Time       `json:"createdDate"`
	ModifiedDate time.Time       `json:"modifiedDate"`
	IsActive     bool            `json:"isActive"`
}
