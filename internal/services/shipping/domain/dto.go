// Package domain holds the shipping address entity and its http and service contracts
package domain

import "time"

// ShippingAddress is a persisted delivery address
type ShippingAddress struct {
	ID              int64     `json:"id"`
	Address         string    `json:"address"`
	Address2        string    `json:"address2,omitempty"`
	State           string    `json:"state,omitempty"`
	Zip             string    `json:"zip,omitempty"`
	Country         string    `json:"country"`
	MobileNumber    string    `json:"mobile_number,omitempty"`
	Version         int64     `json:"version"`
	DateCreated     time.Time `json:"date_created"`
	DateLastUpdated time.Time `json:"date_last_updated"`
}

// AddressInput is the payload for creating an address
type AddressInput struct {
	Address      string `json:"address" validate:"notblank,max=255"`
	Address2     string `json:"address2,omitempty" validate:"omitempty,max=255"`
	State        string `json:"state,omitempty" validate:"omitempty,max=64"`
	Zip          string `json:"zip,omitempty" validate:"omitempty,max=16,printascii"`
	Country      string `json:"country" validate:"notblank,max=64"`
	MobileNumber string `json:"mobile_number,omitempty" validate:"omitempty,max=32,printascii"`
}

// AddressUpdate replaces the editable fields of an address at a known version
type AddressUpdate struct {
	AddressInput
	Version int64 `json:"version" validate:"min=0"`
}
