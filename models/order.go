package models

import "time"

// Order status ids as defined by the backend. The external gateway
// mutates orders asynchronously; the client only confirms via callback.
const (
	OrderPending    = 1
	OrderPaid       = 2
	OrderProcessing = 3
	OrderCancelled  = 4
)

// Order is a payment record reconciled via gateway redirect plus
// callback confirmation.
type Order struct {
	OrderID       string    `json:"orderId"`
	OrderCode     string    `json:"orderCode"`
	AccountID     string    `json:"accountId"`
	PostID        string    `json:"postId"`
	Amount        float64   `json:"amount"`
	OrderStatusID int       `json:"orderStatusId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentLink is the response of the create-payment-link call: the
// external checkout URL the user must visit plus the order code the
// gateway echoes back on redirect.
type PaymentLink struct {
	CheckoutURL string `json:"checkoutUrl"`
	OrderCode   string `json:"orderCode"`
}

// OrderStatusName maps an order status id to its display label.
func OrderStatusName(id int) string {
	switch id {
	case OrderPending:
		return "pending"
	case OrderPaid:
		return "paid"
	case OrderProcessing:
		return "processing"
	case OrderCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
