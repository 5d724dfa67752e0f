/*
Package response renders every API reply in one envelope.

HTTP statuses are decided here and nowhere else. Error replies never carry
stacks or internal messages; those go to the log with the request id.

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", details: {...}, code: 4xx/5xx, request_id: "..." }
*/
package response

import "backoffice/application/listing"

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   any    `json:"details,omitempty"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
	Code       int        `json:"code"`
	RequestID  string     `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PaginationOf describes a listing page.
func PaginationOf[T any](p listing.Page[T]) Pagination {
	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.Total,
		TotalPages: p.TotalPages(),
	}
}
