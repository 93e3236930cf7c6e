package services

import "math"

// Points earned per kilogram of submitted material. Unknown materials fall
// back to the "other" rate.
var materialPointRates = map[string]int64{
	"plastic":    10,
	"paper":      8,
	"glass":      12,
	"metal":      15,
	"organic":    5,
	"electronic": 20,
	"clothing":   6,
	"other":      3,
}

const (
	defaultMaterialRate = 3

	// PointValueLKR is the redemption value of one eco-point.
	PointValueLKR = 3.00

	// maxDiscountRatio caps a points discount at half the pre-discount
	// purchase total, regardless of the user's balance.
	maxDiscountRatio = 0.5

	pickupBonusRatio = 0.2
)

// MaterialRate returns the points-per-kg rate for a material tag.
func MaterialRate(material string) int64 {
	if rate, ok := materialPointRates[material]; ok {
		return rate
	}
	return defaultMaterialRate
}

// CalculateWastePoints computes the points earned from a set of submitted
// materials. Each material present in both the list and the quantity map
// contributes floor(kg × rate); zero or missing quantities contribute
// nothing. Pure and deterministic.
func CalculateWastePoints(materials []string, quantities map[string]float64) int64 {
	var total int64
	for _, material := range materials {
		kg, ok := quantities[material]
		if !ok || kg <= 0 {
			continue
		}
		total += int64(math.Floor(kg * float64(MaterialRate(material))))
	}
	return total
}

// PickupBonus is the scheduling incentive added on top of base points for
// formal pickup requests: floor(base × 0.2).
func PickupBonus(basePoints int64) int64 {
	return int64(math.Floor(float64(basePoints) * pickupBonusRatio))
}

// CalculatePickupPoints is the accrual for a scheduled recyclable pickup:
// the base waste points plus the 20% scheduling bonus.
func CalculatePickupPoints(materials []string, quantities map[string]float64) int64 {
	base := CalculateWastePoints(materials, quantities)
	return base + PickupBonus(base)
}

// CalculatePointsDiscount converts an available points balance into the LKR
// discount applicable to a purchase: min(points × 3.00, amount × 0.5). The
// 50% cap holds even when the balance alone would justify more.
func CalculatePointsDiscount(availablePoints int64, purchaseAmount float64) float64 {
	if availablePoints <= 0 || purchaseAmount <= 0 {
		return 0
	}
	byPoints := float64(availablePoints) * PointValueLKR
	byCap := purchaseAmount * maxDiscountRatio
	return math.Min(byPoints, byCap)
}

// PointsForDiscount converts an LKR discount back into the points to debit,
// rounding up so a partial point is still charged.
func PointsForDiscount(discount float64) int64 {
	if discount <= 0 {
		return 0
	}
	return int64(math.Ceil(discount / PointValueLKR))
}
