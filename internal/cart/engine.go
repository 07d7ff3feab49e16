// Package cart holds the in-memory checkout basket of a single terminal.
package cart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

// Field names a keypad-editable attribute of the active line.
type Field string

const (
	FieldQuantity Field = "quantity"
	FieldDiscount Field = "discount"
	FieldPrice    Field = "price"
)

// ParseField accepts the long names and the keypad labels (QTY, DISC, PRICE).
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quantity", "qty":
		return FieldQuantity, nil
	case "discount", "disc":
		return FieldDiscount, nil
	case "price":
		return FieldPrice, nil
	default:
		return "", apperr.Validation("INVALID_CART_FIELD", fmt.Sprintf("unknown cart field %q", s))
	}
}

// Cart is an ordered list of lines with at most one line per product and an
// optional active line. It is not safe for concurrent use.
type Cart struct {
	lines  []model.CartItem
	active int // -1 when nothing is selected
}

func New() *Cart {
	return &Cart{active: -1}
}

// Add puts one unit of product in the cart. Out-of-stock products are
// ignored. Stock is only checked here, later quantity edits may exceed it.
func (c *Cart) Add(product model.Product) {
	if product.StockQty <= 0 {
		return
	}

	for i := range c.lines {
		if c.lines[i].ID == product.ID {
			c.lines[i].Quantity++
			c.active = i
			return
		}
	}

	c.lines = append(c.lines, model.CartItem{Product: product, Quantity: 1, Discount: decimal.Zero})
	c.active = len(c.lines) - 1
}

// Remove drops the line at index and keeps the selection on the same
// logical line.
func (c *Cart) Remove(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}

	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	switch {
	case c.active == index:
		c.active = -1
	case c.active > index:
		c.active--
	}
}

func (c *Cart) Select(index int) error {
	if index < 0 || index >= len(c.lines) {
		return apperr.Validation("INVALID_CART_LINE", fmt.Sprintf("cart has no line %d", index))
	}
	c.active = index
	return nil
}

// Active returns the selected line index.
func (c *Cart) Active() (int, bool) {
	return c.active, c.active >= 0
}

// SetActiveField applies a keypad entry to the active line. Unparseable
// input counts as 0. A quantity of 0 resets to 1, discounts are clamped to
// [0, 100] and prices are taken as entered.
func (c *Cart) SetActiveField(field Field, raw string) error {
	if c.active < 0 {
		return nil
	}

	line := &c.lines[c.active]
	switch field {
	case FieldQuantity:
		line.Quantity = parseQuantity(raw)
	case FieldDiscount:
		line.Discount = decimal.Min(decimal.Max(parseNumber(raw), decimal.Zero), hundred)
	case FieldPrice:
		line.SellingPrice = parseNumber(raw)
	default:
		return apperr.Validation("INVALID_CART_FIELD", fmt.Sprintf("unknown cart field %q", string(field)))
	}
	return nil
}

func (c *Cart) Lines() []model.CartItem {
	out := make([]model.CartItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Total is recomputed from the current lines on every call.
func (c *Cart) Total() decimal.Decimal {
	return Sum(c.lines).Amount
}

func (c *Cart) Clear() {
	c.lines = nil
	c.active = -1
}

// LineView is a cart line with its derived amounts.
type LineView struct {
	model.CartItem
	LineTotal     decimal.Decimal `json:"lineTotal"`
	LineProfit    decimal.Decimal `json:"lineProfit"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

type Summary struct {
	Lines  []LineView `json:"lines"`
	Active *int       `json:"active"`
	Totals
}

func (c *Cart) Summary() Summary {
	s := Summary{Lines: make([]LineView, 0, len(c.lines)), Totals: Sum(c.lines)}
	for _, line := range c.lines {
		s.Lines = append(s.Lines, LineView{
			CartItem:      line,
			LineTotal:     LineTotal(line),
			LineProfit:    LineProfit(line),
			DiscountValue: LineDiscountValue(line),
		})
	}
	if idx, ok := c.Active(); ok {
		s.Active = &idx
	}
	return s
}

func parseNumber(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQuantity(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	q := int(math.Trunc(math.Max(math.Min(f, math.MaxInt32), math.MinInt32)))
	switch {
	case q == 0:
		return 1
	case q < 0:
		return 0
	default:
		return q
	}
}
