// Package report assembles the sales dashboard from the report queries.
package report

import (
	"context"
	"time"

	"backoffice/domain/report"
	"backoffice/domain/shared"

	"golang.org/x/sync/errgroup"
)

const (
	// DailyDays is the length of the daily series, today included.
	DailyDays = 30
	// MonthlyMonths is the length of the monthly series, the current month
	// included.
	MonthlyMonths = 6
	// TopN caps every leaderboard.
	TopN = 5

	UncataloguedLabel = "Uncatalogued"
)

type PeriodRevenue struct {
	Period  string       `json:"period"`
	Revenue shared.Money `json:"revenue"`
}

type ClientRevenue struct {
	ClientID string       `json:"client_id"`
	FullName string       `json:"full_name"`
	Revenue  shared.Money `json:"revenue"`
}

type ProductSales struct {
	ProductID *string      `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  string       `json:"quantity"`
	Revenue   shared.Money `json:"revenue"`
}

type Dashboard struct {
	ActiveClients         int64           `json:"active_clients"`
	Orders                int64           `json:"orders"`
	PendingOrders         int64           `json:"pending_orders"`
	Revenue               shared.Money    `json:"revenue"`
	DailyRevenue          []PeriodRevenue `json:"daily_revenue"`
	MonthlyRevenue        []PeriodRevenue `json:"monthly_revenue"`
	TopClients            []ClientRevenue `json:"top_clients"`
	TopProductsByQuantity []ProductSales  `json:"top_products_by_quantity"`
	TopProductsByRevenue  []ProductSales  `json:"top_products_by_revenue"`
}

type Service struct {
	reader report.Reader
	now    func() time.Time
}

func NewService(reader report.Reader) *Service {
	return &Service{reader: reader, now: time.Now}
}

// Dashboard runs the report queries concurrently. Both revenue series are
// zero-filled so every period of the window is present, oldest first.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayFrom := today.AddDate(0, 0, -(DailyDays - 1))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthFrom := month.AddDate(0, -(MonthlyMonths - 1), 0)

	var (
		totals     report.Totals
		daily      []report.Bucket
		monthly    []report.Bucket
		clients    []report.ClientRevenue
		byQuantity []report.ProductSales
		byRevenue  []report.ProductSales
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.reader.Totals(ctx)
		return err
	})
	g.Go(func() (err error) {
		daily, err = s.reader.RevenueByPeriod(ctx, report.Daily, dayFrom, today.AddDate(0, 0, 1))
		return err
	})
	g.Go(func() (err error) {
		monthly, err = s.reader.RevenueByPeriod(ctx, report.Monthly, monthFrom, month.AddDate(0, 1, 0))
		return err
	})
	g.Go(func() (err error) {
		clients, err = s.reader.TopClients(ctx, TopN)
		return err
	})
	g.Go(func() (err error) {
		byQuantity, err = s.reader.TopProducts(ctx, report.ByQuantity, TopN)
		return err
	})
	g.Go(func() (err error) {
		byRevenue, err = s.reader.TopProducts(ctx, report.ByRevenue, TopN)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		ActiveClients:         totals.ActiveClients,
		Orders:                totals.Orders,
		PendingOrders:         totals.PendingOrders,
		Revenue:               totals.Revenue,
		DailyRevenue:          fill(report.Daily, dayFrom, DailyDays, daily),
		MonthlyRevenue:        fill(report.Monthly, monthFrom, MonthlyMonths, monthly),
		TopClients:            toClientRevenue(clients),
		TopProductsByQuantity: toProductSales(byQuantity),
		TopProductsByRevenue:  toProductSales(byRevenue),
	}, nil
}

// fill lays buckets over n consecutive periods starting at from.
func fill(g report.Granularity, from time.Time, n int, buckets []report.Bucket) []PeriodRevenue {
	found := make(map[string]shared.Money, len(buckets))
	for _, b := range buckets {
		found[b.Period] = b.Revenue
	}

	out := make([]PeriodRevenue, n)
	for i := range out {
		period := from.AddDate(0, 0, i)
		if g == report.Monthly {
			period = from.AddDate(0, i, 0)
		}
		label := period.Format(g.Layout())
		revenue, ok := found[label]
		if !ok {
			revenue = shared.Zero()
		}
		out[i] = PeriodRevenue{Period: label, Revenue: revenue}
	}
	return out
}

func toClientRevenue(rows []report.ClientRevenue) []ClientRevenue {
	out := make([]ClientRevenue, len(rows))
	for i, r := range rows {
		out[i] = ClientRevenue{
			ClientID: r.ClientID,
			FullName: r.FirstName + " " + r.LastName,
			Revenue:  r.Revenue,
		}
	}
	return out
}

func toProductSales(rows []report.ProductSales) []ProductSales {
	out := make([]ProductSales, len(rows))
	for i, r := range rows {
		name := r.Name
		if r.ProductID == nil {
			name = UncataloguedLabel
		}
		out[i] = ProductSales{
			ProductID: r.ProductID,
			Name:      name,
			Quantity:  r.Quantity.String(),
			Revenue:   r.Revenue,
		}
	}
	return out
}
