package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrVersionConflict    = errors.New("version conflict")

	ErrInvalidTransition    = errors.New("invalid transition")
	ErrInvalidParty         = errors.New("invalid party")
	ErrTransportNotResolved = errors.New("transport not resolved")
	ErrNotTracked           = errors.New("payment leg not tracked")
	ErrAlreadyPaid          = errors.New("payment leg already paid")

	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidLine       = errors.New("invalid cart line")
	ErrEmptyCart         = errors.New("empty cart")
	ErrInvalidDates      = errors.New("invalid rental dates")
	ErrInsufficientStock = errors.New("insufficient stock")
)
