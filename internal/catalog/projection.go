package catalog

import (
	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/pricing"
)

// FinalPrice applies the product's percentage discount. Malformed discounts
// are ignored rather than failing the whole listing.
func FinalPrice(p domain.Product) float64 {
	final, err := pricing.DiscountedPrice(p.BasePrice, p.BaseDiscount)
	if err != nil {
		final, err = pricing.DiscountedPrice(p.BasePrice, 0)
		if err != nil {
			return 0
		}
	}
	return final
}

// Project adds the display fields to a product
func Project(p domain.Product, currencyLabel string) domain.ProductView {
	final := FinalPrice(p)
	return domain.ProductView{
		Product:       p,
		FinalPrice:    final,
		HasDiscount:   final < p.BasePrice,
		InStock:       p.StockQuantity > 0 || p.HasVariants,
		CurrencyLabel: currencyLabel,
	}
}

func ProjectAll(products []domain.Product, currencyLabel string) []domain.ProductView {
	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, Project(p, currencyLabel))
	}
	return views
}
