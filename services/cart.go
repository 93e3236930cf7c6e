package services

import (
	"database/sql"
	"fmt"
	"time"

	"ecorecycle-server/database"
	"ecorecycle-server/models"

	"github.com/google/uuid"
)

// CartService manages the per-user pending fertilizer line items.
type CartService struct {
	db *database.DB
}

func NewCartService(db *database.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart inserts a new line item. The line total is computed here from
// quantity and unit price, never taken from the caller.
func (s *CartService) AddToCart(userID, fertilizerID uuid.UUID, name string, unitPrice float64, unit string, quantity int) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	item := &models.CartItem{
		ID:                  uuid.New(),
		UserID:              userID,
		FertilizerID:        fertilizerID,
		FertilizerName:      name,
		FertilizerUnitPrice: unitPrice,
		FertilizerUnit:      unit,
		Quantity:            quantity,
		TotalAmount:         float64(quantity) * unitPrice,
		CreatedAt:           time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO cart_items (id, user_id, fertilizer_id, fertilizer_name, fertilizer_unit_price, fertilizer_unit, quantity, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.UserID, item.FertilizerID, item.FertilizerName,
		item.FertilizerUnitPrice, item.FertilizerUnit, item.Quantity, item.TotalAmount, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// GetUserCartItems returns the user's cart, most recently added first.
func (s *CartService) GetUserCartItems(userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, fertilizer_id, fertilizer_name, fertilizer_unit_price, fertilizer_unit, quantity, total_amount, created_at
		 FROM cart_items WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(&item.ID, &item.UserID, &item.FertilizerID, &item.FertilizerName,
			&item.FertilizerUnitPrice, &item.FertilizerUnit, &item.Quantity, &item.TotalAmount, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateCartItemQuantity sets a new quantity and recomputes the line total
// from the stored unit price. A quantity of zero or less removes the item.
func (s *CartService) UpdateCartItemQuantity(userID, cartItemID uuid.UUID, quantity int) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}
	if quantity <= 0 {
		return s.RemoveFromCart(userID, cartItemID)
	}

	var unitPrice float64
	err := s.db.QueryRow(
		`SELECT fertilizer_unit_price FROM cart_items WHERE id = $1 AND user_id = $2`,
		cartItemID, userID,
	).Scan(&unitPrice)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read cart item: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE cart_items SET quantity = $1, total_amount = $2 WHERE id = $3 AND user_id = $4`,
		quantity, float64(quantity)*unitPrice, cartItemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// RemoveFromCart deletes a single line item.
func (s *CartService) RemoveFromCart(userID, cartItemID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}

	result, err := s.db.Exec(`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, cartItemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCart deletes every cart item for the user as one atomic batch.
func (s *CartService) ClearCart(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}

	_, err := s.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
