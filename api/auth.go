package api

import (
	"context"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	Account     models.Account `json:"account"`
	RoleID      int            `json:"roleId"`
}

// Login authenticates against the backend and returns the session to
// persist: token, minimal account object and role id.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var out loginResponse
	if _, err := c.post(ctx, "Auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}

	return &session.Session{
		AccessToken: out.AccessToken,
		Account:     out.Account,
		RoleID:      out.RoleID,
	}, nil
}
