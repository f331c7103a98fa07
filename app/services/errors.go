package services

import "errors"

// Validation errors surfaced synchronously by ledger operations. The HTTP
// layer maps these to client error statuses with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyPurchase     = errors.New("purchase has no valid lines")
	ErrEmptyRecipe       = errors.New("product recipe is empty")
	ErrEmptyCart         = errors.New("order has no items")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrOrderFinalized    = errors.New("order is completed or cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidBackup     = errors.New("backup document is not valid")
)
