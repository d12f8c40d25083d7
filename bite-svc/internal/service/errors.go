package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidSignUp      = errors.New("name and a valid email are required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrNotCreator         = errors.New("only creators can do this")
	ErrNoRestaurant       = errors.New("creator has no restaurant yet")
	ErrNotOwner           = errors.New("resource belongs to another restaurant")
	ErrNoWizard           = errors.New("no onboarding in progress")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is no longer available")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrOrderNotOnBoard    = errors.New("order is not on this restaurant's board")
	ErrMissingAddress     = errors.New("delivery address is incomplete")
)
