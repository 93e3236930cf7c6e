package services

import "errors"

var (
	// ErrNotAuthenticated means the operation needs an identified user and
	// none was supplied.
	ErrNotAuthenticated = errors.New("user must be authenticated")

	// ErrNotFound means a referenced cart item, purchase or profile does
	// not exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyCart means checkout was attempted with no cart items; no
	// partial effects occur.
	ErrEmptyCart = errors.New("cart is empty")
)
