package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
)

// Validate implements the enum contract used by the struct validator.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return nil
	default:
		return fmt.Errorf("unknown payment method: %q", string(m))
	}
}

// ParsePaymentMethod accepts any letter case ("cash", "CARD").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

// CartItem is a product snapshot plus the transaction-specific quantity and
// discount. Sale items are frozen CartItems, so later catalog edits never
// change a recorded sale.
type CartItem struct {
	Product
	Quantity int             `json:"quantity" validate:"gte=0"`
	Discount decimal.Decimal `json:"discount" validate:"gte=0,lte=100"` // percent
}

type Sale struct {
	ID            string          `json:"id" validate:"required"`
	Timestamp     int64           `json:"timestamp" validate:"gt=0"` // epoch millis
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" validate:"enum"`
	Discount      decimal.Decimal `json:"discount" validate:"gte=0"` // absolute currency value
	Items         []CartItem      `json:"items" validate:"required,min=1,dive"`
}

func (s Sale) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}
