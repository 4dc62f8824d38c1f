package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/urmu/storefront/domain"
)

var _ domain.AuthAPI = (*Client)(nil)

func (c *Client) SendOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return c.send(ctx, http.MethodPost, "/auth/otp/send", "", body, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (*domain.OTPVerification, error) {
	body := map[string]string{"phone": phone, "code": code}
	var out domain.OTPVerification
	if err := c.send(ctx, http.MethodPost, "/auth/otp/verify", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges a short-term token for the long-lived access token
func (c *Client) Login(ctx context.Context, shortTermToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.send(ctx, http.MethodPost, "/auth/login", shortTermToken, nil, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("backend login returned an empty access token")
	}
	return out.AccessToken, nil
}

func (c *Client) Signup(ctx context.Context, shortTermToken, firstName, lastName string) error {
	body := map[string]string{"firstName": firstName, "lastName": lastName}
	return c.send(ctx, http.MethodPost, "/auth/signup", shortTermToken, body, nil)
}

func (c *Client) Profile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.get(ctx, "/users/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
