package shared

// DefaultPageSize is the listing page size used across the back office.
const DefaultPageSize = 10

// ListCriteria filters and pages a document listing.
// Search matches the client's first name, last name or email.
type ListCriteria struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps paging values to usable defaults.
func (c ListCriteria) Normalize() ListCriteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		c.PageSize = DefaultPageSize
	}
	return c
}

func (c ListCriteria) Offset() int { return (c.Page - 1) * c.PageSize }
