package order

import (
	"backoffice/application/lineitem"
	"backoffice/domain/order"
)

func ToOrderResponse(o *order.Order) *OrderResponse {
	payments := o.Payments()
	paymentResponses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = ToPaymentResponse(p)
	}

	return &OrderResponse{
		ID:        o.ID(),
		ClientID:  o.ClientID(),
		Status:    string(o.Status()),
		Notes:     o.Notes(),
		Items:     lineitem.ToResponses(o.Items()),
		Total:     o.Total(),
		PaidTotal: o.PaidTotal(),
		Balance:   o.Balance(),
		Payments:  paymentResponses,
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func ToPaymentResponse(p *order.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID(),
		OrderID:   p.OrderID(),
		Amount:    p.Amount(),
		Method:    string(p.Method()),
		Reference: p.Reference(),
		Notes:     p.Notes(),
		PaidAt:    p.PaidAt(),
		CreatedAt: p.CreatedAt(),
	}
}
