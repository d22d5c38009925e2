package api

import (
	"context"
	"net/url"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// CreatePaymentLinkRequest is the payload for the create-payment-link
// call. ReturnURL and CancelURL point at the local redirect listener.
type CreatePaymentLinkRequest struct {
	AccountID string  `json:"accountId"`
	PostID    string  `json:"postId"`
	Amount    float64 `json:"amount"`
	ReturnURL string  `json:"returnUrl"`
	CancelURL string  `json:"cancelUrl"`
}

// CallbackParams are the query parameters the gateway appends to the
// redirect URL. They are forwarded to the backend verbatim.
type CallbackParams struct {
	Code      string
	ID        string
	Cancel    string
	Status    string
	OrderCode string
}

// CreatePaymentLink asks the backend for an external checkout URL.
func (c *Client) CreatePaymentLink(ctx context.Context, req CreatePaymentLinkRequest) (*models.PaymentLink, error) {
	var link models.PaymentLink
	if _, err := c.post(ctx, "Payment/create-payment-link", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ConfirmPayment issues the single confirmation GET after a gateway
// redirect, carrying the gateway's parameters unchanged. Never retried.
func (c *Client) ConfirmPayment(ctx context.Context, p CallbackParams) error {
	q := url.Values{}
	q.Set("code", p.Code)
	q.Set("id", p.ID)
	q.Set("cancel", p.Cancel)
	q.Set("status", p.Status)
	q.Set("orderCode", p.OrderCode)

	_, err := c.get(ctx, "Payment/payment-callback", q, nil)
	return err
}

// OrdersOf fetches the payment records of an account.
func (c *Client) OrdersOf(ctx context.Context, accountID string) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.get(ctx, "Order/GetByAccountId/"+url.PathEscape(accountID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
