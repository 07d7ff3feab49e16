package cart

import (
	"github.com/shopspring/decimal"

	"quicksell-pos/internal/model"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice is the selling price after the line discount.
func UnitPrice(line model.CartItem) decimal.Decimal {
	return line.SellingPrice.Mul(decimal.NewFromInt(1).Sub(line.Discount.Div(hundred)))
}

// LineTotal = sellingPrice * (1 - discount/100) * quantity.
func LineTotal(line model.CartItem) decimal.Decimal {
	return UnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineProfit = (sellingPrice * (1 - discount/100) - costPrice) * quantity.
func LineProfit(line model.CartItem) decimal.Decimal {
	return UnitPrice(line).Sub(line.CostPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineDiscountValue = sellingPrice * (discount/100) * quantity.
func LineDiscountValue(line model.CartItem) decimal.Decimal {
	return line.SellingPrice.Mul(line.Discount.Div(hundred)).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Totals aggregates the line functions over a sequence of lines.
type Totals struct {
	Amount   decimal.Decimal `json:"totalAmount"`
	Profit   decimal.Decimal `json:"profit"`
	Discount decimal.Decimal `json:"discount"`
	Units    int             `json:"units"`
}

func Sum(lines []model.CartItem) Totals {
	t := Totals{Amount: decimal.Zero, Profit: decimal.Zero, Discount: decimal.Zero}
	for _, line := range lines {
		t.Amount = t.Amount.Add(LineTotal(line))
		t.Profit = t.Profit.Add(LineProfit(line))
		t.Discount = t.Discount.Add(LineDiscountValue(line))
		t.Units += line.Quantity
	}
	return t
}
