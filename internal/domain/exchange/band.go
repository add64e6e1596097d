package exchange

import "math"

// PurchaseBand is the client-side sanity range for direct purchase offers,
// as ratios of the player's sale price.
type PurchaseBand struct {
	Lower float64
	Upper float64
}

func DefaultPurchaseBand() PurchaseBand {
	return PurchaseBand{Lower: 0.75, Upper: 1.15}
}

// Range returns [floor(v*Lower), ceil(v*Upper)].
func (b PurchaseBand) Range(salePrice int64) (int64, int64) {
	v := float64(salePrice)
	return int64(math.Floor(v * b.Lower)), int64(math.Ceil(v * b.Upper))
}

func (b PurchaseBand) Contains(salePrice, amount int64) bool {
	lo, hi := b.Range(salePrice)
	return amount >= lo && amount <= hi
}
