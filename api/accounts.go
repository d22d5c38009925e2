package api

import (
	"context"
	"net/url"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// AccountByID fetches the public profile of an account. Used to resolve
// counterpart display names in the chat view.
func (c *Client) AccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	var acc models.Account
	if _, err := c.get(ctx, "Account/GetById/"+url.PathEscape(accountID), nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}
