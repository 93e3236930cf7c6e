package handlers

import (
	"ecorecycle-server/database"
	"ecorecycle-server/services"
)

var (
	DB       *database.DB
	Ledger   *services.LedgerService
	Carts    *services.CartService
	Checkout *services.CheckoutService
)

// InitializeHandlers wires the shared database handle and the core services
// used by the route handlers.
func InitializeHandlers(db *database.DB) {
	DB = db
	Ledger = services.NewLedgerService(db)
	Carts = services.NewCartService(db)
	Checkout = services.NewCheckoutService(db, Carts, Ledger)
}
