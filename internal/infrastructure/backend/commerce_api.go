package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/urmu/storefront/domain"
)

var (
	_ domain.CartAPI    = (*Client)(nil)
	_ domain.OrderAPI   = (*Client)(nil)
	_ domain.AddressAPI = (*Client)(nil)
)

func (c *Client) GetCart(ctx context.Context, accessToken string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.get(ctx, "/cart", accessToken, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, accessToken, productID, variantID string, quantity int) (*domain.Cart, error) {
	body := struct {
		ProductID string `json:"productId"`
		VariantID string `json:"variantId,omitempty"`
		Quantity  int    `json:"quantity"`
	}{productID, variantID, quantity}

	var cart domain.Cart
	if err := c.send(ctx, http.MethodPost, "/cart/items", accessToken, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, accessToken, itemID string, quantity int) (*domain.Cart, error) {
	body := map[string]int{"quantity": quantity}
	var cart domain.Cart
	if err := c.send(ctx, http.MethodPatch, "/cart/items/"+url.PathEscape(itemID), accessToken, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, accessToken, itemID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.send(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), accessToken, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ListOrders(ctx context.Context, accessToken string, skip, limit int) (*domain.Page[domain.Order], error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var page domain.Page[domain.Order]
	if err := c.get(ctx, "/orders", accessToken, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetOrder(ctx context.Context, accessToken, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(id), accessToken, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, accessToken string, input domain.CreateOrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.send(ctx, http.MethodPost, "/orders", accessToken, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreatePayment(ctx context.Context, accessToken, orderID string) (*domain.Payment, error) {
	body := map[string]string{"orderId": orderID}
	var payment domain.Payment
	if err := c.send(ctx, http.MethodPost, "/payments", accessToken, body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) ListAddresses(ctx context.Context, accessToken string) ([]domain.Address, error) {
	var page domain.Page[domain.Address]
	if err := c.get(ctx, "/addresses", accessToken, nil, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		return []domain.Address{}, nil
	}
	return page.Data, nil
}

func (c *Client) CreateAddress(ctx context.Context, accessToken string, address domain.Address) (*domain.Address, error) {
	address.ID = ""
	var out domain.Address
	if err := c.send(ctx, http.MethodPost, "/addresses", accessToken, address, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, accessToken, id string) error {
	return c.send(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(id), accessToken, nil, nil)
}
