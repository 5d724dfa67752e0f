package rdb

import (
	"context"
	"time"

	"backoffice/domain/order"
	"backoffice/domain/report"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository GORM implementation of report.Reader. Every figure is one
// aggregate statement; nothing is cached.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Totals(ctx context.Context) (report.Totals, error) {
	db := dbFrom(ctx, r.db)

	var clients int64
	if err := db.Model(&po.ClientPO{}).Where("is_deleted = ?", false).Count(&clients).Error; err != nil {
		return report.Totals{}, err
	}

	var row struct {
		Orders  int64
		Pending int64
		Revenue decimal.Decimal
	}
	err := db.Model(&po.OrderPO{}).
		Select("COUNT(*) AS orders, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
			"COALESCE(SUM(total), 0) AS revenue", string(order.StatusPending)).
		Scan(&row).Error
	if err != nil {
		return report.Totals{}, err
	}

	return report.Totals{
		ActiveClients: clients,
		Orders:        row.Orders,
		PendingOrders: row.Pending,
		Revenue:       shared.NewMoney(row.Revenue),
	}, nil
}

func (r *ReportRepository) RevenueByPeriod(ctx context.Context, g report.Granularity, from, to time.Time) ([]report.Bucket, error) {
	db := dbFrom(ctx, r.db)

	var rows []struct {
		Period  string
		Revenue decimal.Decimal
	}
	err := db.Model(&po.OrderPO{}).
		Select(periodExpr(db.Dialector.Name(), g)+" AS period, COALESCE(SUM(total), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Group("period").
		Order("period").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]report.Bucket, len(rows))
	for i, row := range rows {
		buckets[i] = report.Bucket{Period: row.Period, Revenue: shared.NewMoney(row.Revenue)}
	}
	return buckets, nil
}

// periodExpr formats created_at as the period label on each dialect.
func periodExpr(dialect string, g report.Granularity) string {
	switch dialect {
	case DriverPostgres:
		if g == report.Monthly {
			return "to_char(created_at, 'YYYY-MM')"
		}
		return "to_char(created_at, 'YYYY-MM-DD')"
	case DriverMySQL:
		if g == report.Monthly {
			return "DATE_FORMAT(created_at, '%Y-%m')"
		}
		return "DATE_FORMAT(created_at, '%Y-%m-%d')"
	default:
		if g == report.Monthly {
			return "strftime('%Y-%m', created_at)"
		}
		return "strftime('%Y-%m-%d', created_at)"
	}
}

func (r *ReportRepository) TopClients(ctx context.Context, limit int) ([]report.ClientRevenue, error) {
	db := dbFrom(ctx, r.db)

	var rows []struct {
		ClientID  string
		FirstName string
		LastName  string
		Revenue   decimal.Decimal
	}
	err := db.Table(po.OrderPO{}.TableName()).
		Select("clients.id AS client_id, clients.first_name, clients.last_name, COALESCE(SUM(orders.total), 0) AS revenue").
		Joins("JOIN clients ON clients.id = orders.client_id").
		Group("clients.id, clients.first_name, clients.last_name").
		Order("revenue DESC, clients.last_name, clients.first_name").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.ClientRevenue, len(rows))
	for i, row := range rows {
		out[i] = report.ClientRevenue{
			ClientID:  row.ClientID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Revenue:   shared.NewMoney(row.Revenue),
		}
	}
	return out, nil
}

// TopProducts groups order lines on the joined catalog row, so lines
// without a product and lines pointing at a deleted product fall into the
// same NULL group.
func (r *ReportRepository) TopProducts(ctx context.Context, by report.Ranking, limit int) ([]report.ProductSales, error) {
	db := dbFrom(ctx, r.db)

	rank := "quantity DESC, revenue DESC"
	if by == report.ByRevenue {
		rank = "revenue DESC, quantity DESC"
	}

	var rows []struct {
		ProductID *string
		Name      *string
		Quantity  decimal.Decimal
		Revenue   decimal.Decimal
	}
	err := db.Table(po.OrderItemPO{}.TableName()).
		Select("products.id AS product_id, products.name AS name, " +
			"COALESCE(SUM(order_items.quantity), 0) AS quantity, " +
			"COALESCE(SUM(order_items.quantity * order_items.unit_price), 0) AS revenue").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Group("products.id, products.name").
		Order(rank + ", products.name").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.ProductSales, len(rows))
	for i, row := range rows {
		sales := report.ProductSales{
			ProductID: row.ProductID,
			Quantity:  row.Quantity.Round(3),
			Revenue:   shared.NewMoney(row.Revenue),
		}
		if row.Name != nil {
			sales.Name = *row.Name
		}
		out[i] = sales
	}
	return out, nil
}

var _ report.Reader = (*ReportRepository)(nil)
