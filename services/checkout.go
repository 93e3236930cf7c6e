package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"ecorecycle-server/database"
	"ecorecycle-server/models"

	"github.com/google/uuid"
)

// CustomerInfo is the delivery contact captured at checkout and copied onto
// every purchase row of the batch.
type CustomerInfo struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
}

// CheckoutService converts carts into purchase records and settles the
// points discount against the ledger.
type CheckoutService struct {
	db     *database.DB
	cart   *CartService
	ledger *LedgerService
}

func NewCheckoutService(db *database.DB, cart *CartService, ledger *LedgerService) *CheckoutService {
	return &CheckoutService{db: db, cart: cart, ledger: ledger}
}

// PurchaseCartItems turns the user's cart into one pending purchase per
// line item, all created in a single transaction, with the requested points
// discount distributed proportionally across lines.
//
// The requested discount is clamped to what the user's balance and the 50%
// cap allow, never rejected. The purchase batch is all-or-nothing; the
// points debit and the cart clear that follow are best-effort — if either
// fails the purchases stand and the failure is only logged. A successful
// order with a stale points balance beats a lost order.
func (s *CheckoutService) PurchaseCartItems(userID uuid.UUID, info CustomerInfo, pointsDiscountRequested float64) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	cartItems, err := s.cart.GetUserCartItems(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var totalOriginalAmount float64
	for _, item := range cartItems {
		totalOriginalAmount += item.TotalAmount
	}

	// Clamp rather than reject an over-limit discount
	discount := pointsDiscountRequested
	if discount < 0 {
		discount = 0
	}
	if maxDiscount := CalculatePointsDiscount(s.ledger.GetUserPoints(userID), totalOriginalAmount); discount > maxDiscount {
		discount = maxDiscount
	}

	lineDiscounts := distributeDiscount(cartItems, totalOriginalAmount, discount)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	purchaseDate := now.Format("2006-01-02")
	purchaseIDs := make([]uuid.UUID, 0, len(cartItems))

	for i, item := range cartItems {
		purchaseID := uuid.New()
		purchaseIDs = append(purchaseIDs, purchaseID)

		_, err := tx.Exec(
			`INSERT INTO fertilizer_purchases
			 (id, user_id, fertilizer_id, fertilizer_name, quantity, original_amount, points_discount, total_amount,
			  purchase_date, status, delivery_address, customer_name, customer_phone, customer_email, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			purchaseID, userID, item.FertilizerID, item.FertilizerName, item.Quantity,
			item.TotalAmount, lineDiscounts[i], item.TotalAmount-lineDiscounts[i],
			purchaseDate, string(models.PurchasePending), info.DeliveryAddress,
			info.CustomerName, info.CustomerPhone, info.CustomerEmail, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create purchase record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	// Best-effort follow-ups: the order already exists
	if discount > 0 {
		points := PointsForDiscount(discount)
		description := fmt.Sprintf("Spent %d points for LKR %.2f discount", points, discount)
		_, err := s.ledger.AddPointsTransaction(userID, -points, models.TransactionSpentDiscount, description, &purchaseIDs[0])
		if err != nil {
			log.Printf("points debit failed after checkout for user %s: %v", userID, err)
		}
	}

	if err := s.cart.ClearCart(userID); err != nil {
		log.Printf("cart clear failed after checkout for user %s: %v", userID, err)
	}

	return purchaseIDs, nil
}

// distributeDiscount splits the discount across line items in proportion to
// each line's share of the total, rounded to cents. The last line absorbs
// the rounding residue so the parts always sum exactly to the discount, and
// every line stays inside [0, line total].
func distributeDiscount(items []models.CartItem, total, discount float64) []float64 {
	discounts := make([]float64, len(items))
	if total <= 0 || discount <= 0 {
		return discounts
	}

	var allocated float64
	for i, item := range items {
		if i == len(items)-1 {
			discounts[i] = roundCents(discount - allocated)
			break
		}
		share := roundCents(item.TotalAmount * (discount / total))
		discounts[i] = share
		allocated += share
	}

	// Cent rounding across many lines can leave the last line with a
	// residue it cannot absorb: negative when the per-line shares
	// over-allocated, or above its own total when they under-allocated.
	// Walk backwards shifting the overflow onto earlier lines so every
	// line lands in [0, line total] without changing the sum.
	for i := len(items) - 1; i > 0; i-- {
		if discounts[i] < 0 {
			discounts[i-1] = roundCents(discounts[i-1] + discounts[i])
			discounts[i] = 0
		} else if lineMax := items[i].TotalAmount; discounts[i] > lineMax {
			discounts[i-1] = roundCents(discounts[i-1] + discounts[i] - lineMax)
			discounts[i] = lineMax
		}
	}
	if discounts[0] < 0 {
		discounts[0] = 0
	} else if discounts[0] > items[0].TotalAmount {
		discounts[0] = items[0].TotalAmount
	}
	return discounts
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
