package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
)

const maxAlerts = 5

var half = decimal.NewFromFloat(0.5)

type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type DashboardStats struct {
	DailyRevenue   decimal.Decimal  `json:"dailyRevenue"`
	DailyProfit    decimal.Decimal  `json:"dailyProfit"`
	YearlyRevenue  decimal.Decimal  `json:"yearlyRevenue"`
	YearlyProfit   decimal.Decimal  `json:"yearlyProfit"`
	TodaySales     int              `json:"todaySales"`
	AlertCount     int              `json:"alertCount"`
	Alerts         []model.Product  `json:"alerts"`
	Monthly        []MonthlyRevenue `json:"monthly"`
	TotalProducts  int              `json:"totalProducts"`
	TotalValuation decimal.Decimal  `json:"totalValuation"` // Σ stockQty * costPrice
	Year           int              `json:"year"`
}

type TimelinePoint struct {
	Time   string `json:"time"`
	Total  int64  `json:"total"`
	Profit int64  `json:"profit"`
}

type Report struct {
	Year            int             `json:"year"`
	YearSales       int             `json:"yearSales"`
	YearRevenue     decimal.Decimal `json:"yearRevenue"`
	YearProfit      decimal.Decimal `json:"yearProfit"`
	YearAvgOrder    decimal.Decimal `json:"yearAvgOrder"`
	LifetimeRevenue decimal.Decimal `json:"lifetimeRevenue"`
	LifetimeProfit  decimal.Decimal `json:"lifetimeProfit"`
	Timeline        []TimelinePoint `json:"timeline"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetReport(ctx context.Context) (*Report, error)
}

type dashboardService struct {
	store repository.Store
	clock Clock
}

func NewDashboardService(store repository.Store, clock Clock) DashboardService {
	return &dashboardService{store: store, clock: orNow(clock)}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		products []model.Product
		sales    []model.Sale
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.store.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.store.ListSales(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).UnixMilli()

	stats := &DashboardStats{
		Alerts:        []model.Product{},
		Monthly:       make([]MonthlyRevenue, 12),
		TotalProducts: len(products),
		Year:          now.Year(),
	}
	for m := range stats.Monthly {
		stats.Monthly[m].Month = time.Month(m + 1).String()[:3]
	}

	for _, sale := range sales {
		if sale.Timestamp >= startOfToday {
			stats.DailyRevenue = stats.DailyRevenue.Add(sale.TotalAmount)
			stats.DailyProfit = stats.DailyProfit.Add(sale.Profit)
			stats.TodaySales++
		}
		if sale.Timestamp >= startOfYear {
			stats.YearlyRevenue = stats.YearlyRevenue.Add(sale.TotalAmount)
			stats.YearlyProfit = stats.YearlyProfit.Add(sale.Profit)
		}
		if t := sale.Time().In(now.Location()); t.Year() == now.Year() {
			b := &stats.Monthly[t.Month()-1]
			b.Revenue = b.Revenue.Add(sale.TotalAmount)
		}
	}

	for _, p := range products {
		stats.TotalValuation = stats.TotalValuation.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQty))))
		if p.IsLowStock() {
			stats.AlertCount++
			if len(stats.Alerts) < maxAlerts {
				stats.Alerts = append(stats.Alerts, p)
			}
		}
	}

	return stats, nil
}

func (s *dashboardService) GetReport(ctx context.Context) (*Report, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).UnixMilli()

	r := &Report{Year: now.Year(), Timeline: make([]TimelinePoint, 0, len(sales))}
	for _, sale := range sales {
		r.LifetimeRevenue = r.LifetimeRevenue.Add(sale.TotalAmount)
		r.LifetimeProfit = r.LifetimeProfit.Add(sale.Profit)
		if sale.Timestamp >= startOfYear {
			r.YearSales++
			r.YearRevenue = r.YearRevenue.Add(sale.TotalAmount)
			r.YearProfit = r.YearProfit.Add(sale.Profit)
		}
	}
	if r.YearSales > 0 {
		r.YearAvgOrder = r.YearRevenue.Div(decimal.NewFromInt(int64(r.YearSales)))
	}

	ordered := append([]model.Sale(nil), sales...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestamp < ordered[j].Timestamp })
	for _, sale := range ordered {
		r.Timeline = append(r.Timeline, TimelinePoint{
			Time:   sale.Time().In(now.Location()).Format("Jan 2"),
			Total:  roundHalfUp(sale.TotalAmount),
			Profit: roundHalfUp(sale.Profit),
		})
	}
	return r, nil
}

// roundHalfUp rounds to the nearest whole unit, halves toward +inf.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}
