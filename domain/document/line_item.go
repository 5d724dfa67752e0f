/*
Package document holds what orders and quotes have in common: the line
item value object, the rules that turn raw form rows into line items, and
the reference checks both documents run against the client roster and the
product catalog.
*/
package document

import (
	"strconv"
	"strings"

	"backoffice/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one priced line of an order or a quote. It has no identity
// of its own: item sets are replaced wholesale, never patched.
type LineItem struct {
	description string
	quantity    decimal.Decimal
	unitPrice   shared.Money
	productID   *string
}

// NewLineItem builds an item from already parsed values.
func NewLineItem(description string, quantity decimal.Decimal, unitPrice shared.Money, productID *string) LineItem {
	return LineItem{
		description: description,
		quantity:    quantity,
		unitPrice:   unitPrice,
		productID:   copyString(productID),
	}
}

func (li LineItem) Description() string       { return li.description }
func (li LineItem) Quantity() decimal.Decimal { return li.quantity }
func (li LineItem) UnitPrice() shared.Money   { return li.unitPrice }

// ProductID returns a copy of the optional catalog reference.
func (li LineItem) ProductID() *string { return copyString(li.productID) }

// Amount is quantity * unit price. It is derived, never stored.
func (li LineItem) Amount() shared.Money { return shared.Multiply(li.quantity, li.unitPrice) }

// Total sums the item amounts and quantizes the result.
func Total(items []LineItem) shared.Money {
	amounts := make([]shared.Money, len(items))
	for i, item := range items {
		amounts[i] = item.Amount()
	}
	return shared.Sum(amounts...).Quantize()
}

// Clone deep-copies an item set so the copy shares no references with
// the source.
func Clone(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = NewLineItem(item.description, item.quantity, item.unitPrice, item.productID)
	}
	return out
}

// HasDescribedItem reports whether at least one item carries a description.
func HasDescribedItem(items []LineItem) bool {
	for _, item := range items {
		if item.description != "" {
			return true
		}
	}
	return false
}

// ProductIDs lists the distinct catalog references of an item set.
func ProductIDs(items []LineItem) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, item := range items {
		if item.productID == nil {
			continue
		}
		if _, ok := seen[*item.productID]; ok {
			continue
		}
		seen[*item.productID] = struct{}{}
		ids = append(ids, *item.productID)
	}
	return ids
}

// ============================================================================
// Raw rows
// ============================================================================

// ItemRow is one row of a repeating item form, exactly as submitted.
type ItemRow struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	ProductID   string `json:"product_id"`
}

// isBlank reports a trailing empty form row.
func (r ItemRow) isBlank(productID *string) bool {
	return strings.TrimSpace(r.Description) == "" &&
		productID == nil &&
		strings.TrimSpace(r.Quantity) == "" &&
		strings.TrimSpace(r.UnitPrice) == ""
}

// ParseItemRows turns submitted rows into line items.
//
// Blank rows are dropped silently. Blank or malformed quantities and
// prices become zero. A malformed product reference is ignored and the row
// is kept. A row that survives without a description or a product, or
// with a negative number, is rejected; the error carries the submitted
// rows unchanged.
func ParseItemRows(entity string, rows []ItemRow) ([]LineItem, error) {
	items := make([]LineItem, 0, len(rows))
	var violations shared.Violations

	for i, row := range rows {
		productID := parseProductID(row.ProductID)
		if row.isBlank(productID) {
			continue
		}

		field := "items[" + strconv.Itoa(i) + "]"
		description := strings.TrimSpace(row.Description)
		if description == "" && productID == nil {
			violations.Add(field+".description", "description is required")
		}

		quantity := shared.ParseDecimal(row.Quantity)
		switch {
		case quantity.IsNegative():
			violations.Add(field+".quantity", "quantity must not be negative")
		case !shared.WithinLimit(quantity, maxQuantity):
			violations.Add(field+".quantity", "quantity is too large")
		}
		unitPrice := shared.ParseMoney(row.UnitPrice)
		switch {
		case unitPrice.IsNegative():
			violations.Add(field+".unit_price", "unit price must not be negative")
		case !unitPrice.Fits():
			violations.Add(field+".unit_price", "unit price is too large")
		}

		items = append(items, NewLineItem(description, quantity, unitPrice, productID))
	}

	if violations.Empty() && !Total(items).Fits() {
		violations.Add("items", "total is too large")
	}

	if err := violations.Err(entity, rows); err != nil {
		return nil, err
	}
	return items, nil
}

// maxQuantity matches the decimal(12,3) quantity column.
var maxQuantity = decimal.New(1, 9)

func parseProductID(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	s := id.String()
	return &s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
