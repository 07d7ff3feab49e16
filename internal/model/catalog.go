package model

import "github.com/shopspring/decimal"

// DefaultProducts is the stationery catalog a fresh store starts with.
func DefaultProducts() []Product {
	p := func(id, name, sku, category, company string, cost, price int64, stock, reorder int) Product {
		return Product{
			ID:           id,
			Name:         name,
			SKU:          sku,
			Category:     category,
			Company:      company,
			CostPrice:    decimal.NewFromInt(cost),
			SellingPrice: decimal.NewFromInt(price),
			StockQty:     stock,
			ReorderLevel: reorder,
		}
	}

	return []Product{
		p("P-001", "Executive Fountain Pen", "EP-FONT-01", "Writing", "Luxor", 450, 899, 12, 5),
		p("P-002", "Premium A5 Leather Notebook", "NB-A5-PREM", "Paper", "Classmate", 120, 350, 45, 10),
		p("P-003", "Charcoal Sketching Set (12pcs)", "ART-SK-12", "Art Supplies", "Faber-Castell", 300, 750, 3, 5),
		p("P-004", "Neon Sticky Notes (400 Sheets)", "OFF-STK-NEO", "Office", "3M", 45, 120, 80, 20),
		p("P-005", "Pro-Grip Gel Pens (Pack of 5)", "PEN-GEL-PRO", "Writing", "Cello", 60, 150, 120, 25),
		p("P-006", "Correction Tape Pro 10m", "OFF-CORR-TAP", "Office", "Deli", 35, 95, 4, 10),
		p("P-007", "Acrylic Paint Set (24 Colors)", "ART-ACR-24", "Art Supplies", "Camlin", 280, 590, 18, 8),
		p("P-008", "Highlighter Set (Pastel Edition)", "MARK-HIGH-PAST", "Markers", "Stabilo", 180, 420, 25, 10),
	}
}
