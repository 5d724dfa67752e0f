// Package request reads the query and form conventions shared by the
// controllers.
package request

import (
	"strconv"
	"strings"

	"backoffice/domain/document"
	"backoffice/domain/shared"

	"github.com/gin-gonic/gin"
)

// Form field names of the repeating item rows.
const (
	FieldItemDescription = "item_description[]"
	FieldItemQuantity    = "item_qty[]"
	FieldItemPrice       = "item_price[]"
	FieldItemProductID   = "item_product_id[]"
)

// ListCriteria reads status, q, page and page_size. Unreadable numbers
// fall back to the listing defaults.
func ListCriteria(c *gin.Context) shared.ListCriteria {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return shared.ListCriteria{
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("q")),
		Page:     page,
		PageSize: pageSize,
	}.Normalize()
}

// ItemRows zips the parallel item arrays of a form post. The arrays may
// have different lengths; missing cells read as empty so no submitted row
// is lost.
func ItemRows(c *gin.Context) []document.ItemRow {
	descriptions := c.PostFormArray(FieldItemDescription)
	quantities := c.PostFormArray(FieldItemQuantity)
	prices := c.PostFormArray(FieldItemPrice)
	products := c.PostFormArray(FieldItemProductID)

	n := max(len(descriptions), len(quantities), len(prices), len(products))
	rows := make([]document.ItemRow, n)
	for i := range rows {
		rows[i] = document.ItemRow{
			Description: at(descriptions, i),
			Quantity:    at(quantities, i),
			UnitPrice:   at(prices, i),
			ProductID:   at(products, i),
		}
	}
	return rows
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// Bind fills dst from a JSON body or a form post. For forms, items
// receives the submitted item rows.
func Bind(c *gin.Context, dst any, items *[]document.ItemRow) error {
	if err := c.ShouldBind(dst); err != nil {
		return err
	}
	if items != nil && c.ContentType() != gin.MIMEJSON {
		*items = ItemRows(c)
	}
	return nil
}
