package checkout

import (
	"fmt"

	"monsavonvert/internal/domain"
)

// Shop pricing policy, in cents. Standard shipping is waived at or above the
// free-shipping threshold; express never is; pickup is always free.
const (
	FreeShippingThresholdCents int64 = 2900
	StandardShippingCents      int64 = 495
	ExpressShippingCents       int64 = 995
)

// SubtotalCents sums price × quantity over the cart.
func SubtotalCents(cart domain.Cart) int64 {
	var total int64
	for _, item := range cart.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// ShippingCents returns the delivery cost for the cart and method.
func ShippingCents(cart domain.Cart, method domain.ShippingMethod) int64 {
	switch method {
	case domain.ShippingExpress:
		return ExpressShippingCents
	case domain.ShippingPickup:
		return 0
	default:
		if SubtotalCents(cart) >= FreeShippingThresholdCents {
			return 0
		}
		return StandardShippingCents
	}
}

// TotalCents is subtotal plus shipping.
func TotalCents(cart domain.Cart, method domain.ShippingMethod) int64 {
	return SubtotalCents(cart) + ShippingCents(cart, method)
}

// FormatEuros renders cents as the storefront displays amounts: "29,95 €".
// All arithmetic stays in cents; this is strictly a boundary formatter.
func FormatEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d €", sign, cents/100, cents%100)
}
