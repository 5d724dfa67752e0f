// Package report holds the figures of the sales dashboard and the
// read-only queries behind them. Nothing here is an aggregate; rows are
// computed from orders, clients and catalog products on every read.
package report

import (
	"context"
	"time"

	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
)

// Totals are the headline counters. Revenue sums order totals whatever the
// order status.
type Totals struct {
	ActiveClients int64
	Orders        int64
	PendingOrders int64
	Revenue       shared.Money
}

type Granularity string

const (
	Daily   Granularity = "day"
	Monthly Granularity = "month"
)

// Layout is the period label format: 2006-01-02 for days, 2006-01 for
// months.
func (g Granularity) Layout() string {
	if g == Monthly {
		return "2006-01"
	}
	return "2006-01-02"
}

// Bucket is the revenue of the orders created in one period.
type Bucket struct {
	Period  string
	Revenue shared.Money
}

type ClientRevenue struct {
	ClientID  string
	FirstName string
	LastName  string
	Revenue   shared.Money
}

// ProductSales sums the order lines sold as one catalog product.
// ProductID is nil for the single group of lines with no catalog product
// behind them, including lines whose product was deleted.
type ProductSales struct {
	ProductID *string
	Name      string
	Quantity  decimal.Decimal
	Revenue   shared.Money
}

// Ranking orders the product leaderboard.
type Ranking string

const (
	ByQuantity Ranking = "quantity"
	ByRevenue  Ranking = "revenue"
)

type Reader interface {
	Totals(ctx context.Context) (Totals, error)

	// RevenueByPeriod groups the orders created in [from, to) by UTC
	// period, oldest first. Periods without orders are absent.
	RevenueByPeriod(ctx context.Context, g Granularity, from, to time.Time) ([]Bucket, error)

	// TopClients ranks clients with at least one order by revenue.
	TopClients(ctx context.Context, limit int) ([]ClientRevenue, error)

	TopProducts(ctx context.Context, by Ranking, limit int) ([]ProductSales, error)
}
