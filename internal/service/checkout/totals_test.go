package checkout

import (
	"testing"

	"monsavonvert/internal/domain"
)

func cartOf(items ...domain.CartItem) domain.Cart {
	return domain.Cart{Items: items}
}

func line(id string, priceCents int64, qty int) domain.CartItem {
	return domain.CartItem{ID: id, Name: id, PriceCents: priceCents, Quantity: qty}
}

func TestSubtotal(t *testing.T) {
	cart := cartOf(line("lavande", 450, 2), line("argan", 620, 3))
	if got := SubtotalCents(cart); got != 450*2+620*3 {
		t.Fatalf("unexpected subtotal: %d", got)
	}
}

func TestSubtotalStableUnderReordering(t *testing.T) {
	a := cartOf(line("lavande", 450, 2), line("argan", 620, 3), line("calendula", 390, 1))
	b := cartOf(line("calendula", 390, 1), line("lavande", 450, 2), line("argan", 620, 3))
	if SubtotalCents(a) != SubtotalCents(b) {
		t.Fatalf("subtotal must not depend on item order")
	}
}

func TestShippingStandardBelowThreshold(t *testing.T) {
	cart := cartOf(line("lavande", 2500, 1)) // 25,00 €
	if got := ShippingCents(cart, domain.ShippingStandard); got != StandardShippingCents {
		t.Fatalf("expected %d, got %d", StandardShippingCents, got)
	}
	if got := TotalCents(cart, domain.ShippingStandard); got != 2995 {
		t.Fatalf("expected total 2995, got %d", got)
	}
}

func TestShippingStandardAtThreshold(t *testing.T) {
	cart := cartOf(line("coffret", 3000, 1)) // 30,00 €
	if got := ShippingCents(cart, domain.ShippingStandard); got != 0 {
		t.Fatalf("expected free standard shipping, got %d", got)
	}
	if got := TotalCents(cart, domain.ShippingStandard); got != 3000 {
		t.Fatalf("expected total 3000, got %d", got)
	}

	exact := cartOf(line("coffret", 2900, 1))
	if got := ShippingCents(exact, domain.ShippingStandard); got != 0 {
		t.Fatalf("threshold is inclusive, got %d", got)
	}
}

func TestShippingExpressIgnoresThreshold(t *testing.T) {
	small := cartOf(line("lavande", 450, 1))
	big := cartOf(line("coffret", 9900, 1))
	if ShippingCents(small, domain.ShippingExpress) != ExpressShippingCents {
		t.Fatalf("express must cost %d on a small cart", ExpressShippingCents)
	}
	if ShippingCents(big, domain.ShippingExpress) != ExpressShippingCents {
		t.Fatalf("express must cost %d regardless of subtotal", ExpressShippingCents)
	}
}

func TestShippingPickupAlwaysFree(t *testing.T) {
	if ShippingCents(cartOf(line("lavande", 450, 1)), domain.ShippingPickup) != 0 {
		t.Fatalf("pickup must be free")
	}
	if ShippingCents(cartOf(line("coffret", 9900, 2)), domain.ShippingPickup) != 0 {
		t.Fatalf("pickup must be free regardless of subtotal")
	}
}

func TestFormatEuros(t *testing.T) {
	cases := map[int64]string{
		2995: "29,95 €",
		3000: "30,00 €",
		0:    "0,00 €",
		5:    "0,05 €",
		-450: "-4,50 €",
	}
	for cents, want := range cases {
		if got := FormatEuros(cents); got != want {
			t.Fatalf("FormatEuros(%d) = %q, want %q", cents, got, want)
		}
	}
}
