// Package domain holds the product entity and catalog contracts
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a persisted catalog item
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Version         int64           `json:"version"`
	DateCreated     time.Time       `json:"date_created"`
	DateLastUpdated time.Time       `json:"date_last_updated"`
}

// ProductInput is the payload for creating a product
type ProductInput struct {
	Name        string          `json:"name" validate:"notblank,max=120"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" validate:"money"`
}

// ProductUpdate replaces the editable fields of a product at a known version
type ProductUpdate struct {
	ProductInput
	Version int64 `json:"version" validate:"min=0"`
}

// ImportResult reports what a catalog import did
type ImportResult struct {
	Created []Product `json:"created"`
	Skipped []string  `json:"skipped"`
}

// ImportInput is the payload for a bulk catalog import
type ImportInput struct {
	Products []ProductInput `json:"products" validate:"required,min=1,dive"`
}
