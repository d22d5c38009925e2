package api

import (
	"context"
	"net/url"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

type likeRequest struct {
	AccountID string `json:"accountId"`
	AptID     string `json:"aptId"`
}

// LikedApts fetches the raw liked-apartment join records of an account.
// The list may contain duplicate apartment ids; deduplication is the
// favorites service's job.
func (c *Client) LikedApts(ctx context.Context, accountID string) ([]models.LikedApt, error) {
	var liked []models.LikedApt
	if _, err := c.get(ctx, "AccountLikedApt/GetByAccountId/"+url.PathEscape(accountID), nil, &liked); err != nil {
		return nil, err
	}
	return liked, nil
}

// Like marks an apartment as a favorite of the account.
func (c *Client) Like(ctx context.Context, accountID, aptID string) error {
	_, err := c.post(ctx, "AccountLikedApt", likeRequest{AccountID: accountID, AptID: aptID}, nil)
	return err
}

// Unlike removes an apartment from the account's favorites.
func (c *Client) Unlike(ctx context.Context, accountID, aptID string) error {
	_, err := c.post(ctx, "AccountLikedApt/Unlike", likeRequest{AccountID: accountID, AptID: aptID}, nil)
	return err
}
