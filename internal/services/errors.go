package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrProjectRequired    = errors.New("project is required")
	ErrPeriodRequired     = errors.New("period is required")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidExpenseType = errors.New("invalid expense type")
	ErrRecalcInProgress   = errors.New("profit recalculation already in progress")
)
