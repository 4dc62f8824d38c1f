package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/urmu/storefront/domain"
)

// AddressServiceImpl implements domain.AddressService
type AddressServiceImpl struct {
	api            domain.AddressAPI
	phoneMinLength int
}

func NewAddressService(api domain.AddressAPI, phoneMinLength int) domain.AddressService {
	return &AddressServiceImpl{api: api, phoneMinLength: phoneMinLength}
}

func (s *AddressServiceImpl) List(ctx context.Context, session *domain.Session) ([]domain.Address, error) {
	addresses, err := s.api.ListAddresses(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// Create validates the address the same way checkout does before saving it
func (s *AddressServiceImpl) Create(ctx context.Context, session *domain.Session, address domain.Address) (*domain.Address, error) {
	if err := domain.ValidateAddress(address, s.phoneMinLength); err != nil {
		return nil, err
	}
	created, err := s.api.CreateAddress(ctx, session.AccessToken, address)
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return created, nil
}

func (s *AddressServiceImpl) Delete(ctx context.Context, session *domain.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.FieldError{Field: "id", Err: domain.ErrMissingField}
	}
	if err := s.api.DeleteAddress(ctx, session.AccessToken, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}
