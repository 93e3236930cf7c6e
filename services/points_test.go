package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWastePoints(t *testing.T) {
	tests := []struct {
		name       string
		materials  []string
		quantities map[string]float64
		want       int64
	}{
		{
			name:       "plastic and glass",
			materials:  []string{"plastic", "glass"},
			quantities: map[string]float64{"plastic": 2.5, "glass": 1},
			want:       37, // floor(2.5*10) + floor(1*12)
		},
		{
			name:       "unknown material uses other rate",
			materials:  []string{"styrofoam"},
			quantities: map[string]float64{"styrofoam": 4},
			want:       12,
		},
		{
			name:       "missing quantity contributes nothing",
			materials:  []string{"plastic", "paper"},
			quantities: map[string]float64{"plastic": 1},
			want:       10,
		},
		{
			name:       "zero and negative quantities contribute nothing",
			materials:  []string{"metal", "glass"},
			quantities: map[string]float64{"metal": 0, "glass": -2},
			want:       0,
		},
		{
			name:       "fractional kilograms floor per material",
			materials:  []string{"paper", "organic"},
			quantities: map[string]float64{"paper": 1.9, "organic": 3.9},
			want:       34, // floor(15.2) + floor(19.5)
		},
		{
			name:       "empty inputs",
			materials:  nil,
			quantities: nil,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWastePoints(tt.materials, tt.quantities)
			assert.Equal(t, tt.want, got)

			// Deterministic: same input, same output
			assert.Equal(t, got, CalculateWastePoints(tt.materials, tt.quantities))
		})
	}
}

func TestCalculatePickupPoints(t *testing.T) {
	materials := []string{"plastic", "glass"}
	quantities := map[string]float64{"plastic": 2.5, "glass": 1}

	// base 37, bonus floor(7.4) = 7
	assert.Equal(t, int64(7), PickupBonus(37))
	assert.Equal(t, int64(44), CalculatePickupPoints(materials, quantities))
}

func TestCalculatePointsDiscount(t *testing.T) {
	// 1000 points are worth LKR 3000 but the cap is half the purchase
	assert.Equal(t, 50.0, CalculatePointsDiscount(1000, 100))

	// Balance is the binding constraint for small balances
	assert.Equal(t, 30.0, CalculatePointsDiscount(10, 1000))

	// Degenerate inputs
	assert.Equal(t, 0.0, CalculatePointsDiscount(0, 100))
	assert.Equal(t, 0.0, CalculatePointsDiscount(100, 0))
	assert.Equal(t, 0.0, CalculatePointsDiscount(-5, 100))
}

func TestCalculatePointsDiscountBounds(t *testing.T) {
	points := []int64{0, 1, 7, 100, 1000, 99999}
	amounts := []float64{0.01, 1, 99.99, 1500, 100000}

	for _, p := range points {
		for _, a := range amounts {
			discount := CalculatePointsDiscount(p, a)
			assert.LessOrEqual(t, discount, a*0.5, "discount exceeds 50%% cap for points=%d amount=%f", p, a)
			assert.LessOrEqual(t, discount, float64(p)*PointValueLKR, "discount exceeds balance for points=%d amount=%f", p, a)
			assert.GreaterOrEqual(t, discount, 0.0)
		}
	}
}

func TestPointsForDiscount(t *testing.T) {
	assert.Equal(t, int64(0), PointsForDiscount(0))
	assert.Equal(t, int64(1), PointsForDiscount(0.01))
	assert.Equal(t, int64(10), PointsForDiscount(30))
	assert.Equal(t, int64(11), PointsForDiscount(30.01))
}

func TestMaterialRate(t *testing.T) {
	assert.Equal(t, int64(10), MaterialRate("plastic"))
	assert.Equal(t, int64(20), MaterialRate("electronic"))
	assert.Equal(t, int64(3), MaterialRate("anything-else"))
}
