// Package estimates holds the estimate wire shapes and the line total
// arithmetic shown on the estimate form.
package estimates

import (
	"fmt"

	"github.com/jrsteele09/wave-console/paging"
)

// Customer is the customer summary embedded in an estimate.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type LineItem struct {
	ItemID    int64   `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type Estimate struct {
	ID             int64      `json:"id"`
	EstimateNumber string     `json:"estimate_number"`
	UserID         int64      `json:"user_id"`
	CustomerID     int64      `json:"customer_id"`
	Customer       Customer   `json:"customer"`
	IssueDate      string     `json:"issue_date"`
	ExpiryDate     string     `json:"expiry_date"`
	Notes          string     `json:"notes"`
	FooterNote     string     `json:"footer_note,omitempty"`
	Total          float64    `json:"total"`
	Items          []LineItem `json:"items"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// Page is one page of GET /estimates.
type Page struct {
	Estimates []Estimate `json:"estimates"`
	paging.Meta
}

// NewLineItem is a line of POST /estimates.
type NewLineItem struct {
	ItemID    int64   `json:"item_id" validate:"gt=0"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// NewEstimate is the body of POST /estimates. Optional fields are omitted when nil.
type NewEstimate struct {
	CustomerID int64         `json:"customer_id"`
	IssueDate  *string       `json:"issue_date,omitempty"`
	ExpiryDate *string       `json:"expiry_date,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
	FooterNote *string       `json:"footer_note,omitempty"`
	Items      []NewLineItem `json:"items" validate:"dive"`
}

// Created is the response of POST /estimates.
type Created struct {
	Message  string   `json:"message"`
	Estimate Estimate `json:"estimate"`
}

// Amount is anything with a quantity and a unit price.
type Amount interface {
	LineQuantity() float64
	LinePrice() float64
}

func (l NewLineItem) LineQuantity() float64 { return l.Quantity }
func (l NewLineItem) LinePrice() float64    { return l.UnitPrice }
func (l LineItem) LineQuantity() float64    { return l.Quantity }
func (l LineItem) LinePrice() float64       { return l.UnitPrice }

// LineTotal is quantity × unit price, unrounded.
func LineTotal(a Amount) float64 {
	return a.LineQuantity() * a.LinePrice()
}

// Subtotal sums the unrounded line totals. Rounding happens only in FormatAmount.
func Subtotal[T Amount](lines []T) float64 {
	var sum float64
	for _, l := range lines {
		sum += LineTotal(l)
	}
	return sum
}

// FormatAmount renders v with two decimals for display.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
