package backend

import (
	"context"
	"net/http"

	"github.com/urmu/storefront/domain"
)

var _ domain.WholesaleAPI = (*Client)(nil)

func (c *Client) SubmitWholesaleApplication(ctx context.Context, accessToken string, app domain.WholesaleApplication) (*domain.WholesaleApplication, error) {
	body := struct {
		NationalCode  string `json:"nationalCode"`
		BusinessName  string `json:"businessName"`
		LicenseNumber string `json:"licenseNumber"`
		Province      string `json:"province"`
		City          string `json:"city"`
		Address       string `json:"address"`
	}{app.NationalCode, app.BusinessName, app.LicenseNumber, app.Province, app.City, app.Address}

	var out domain.WholesaleApplication
	if err := c.send(ctx, http.MethodPost, "/wholesale-sellers", accessToken, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetWholesaleApplication(ctx context.Context, accessToken string) (*domain.WholesaleApplication, error) {
	var out domain.WholesaleApplication
	if err := c.get(ctx, "/wholesale-sellers/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
