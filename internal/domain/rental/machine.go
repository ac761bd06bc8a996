package rental

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

// Confirm moves a PENDING order to CONFIRMED and schedules its payments.
func Confirm(order *model.RentalOrder) error {
	if err := expectStatus(order, "confirm", model.OrderStatusPending); err != nil {
		return err
	}
	switch order.Transport.Status {
	case model.TransportStatusAccepted, model.TransportStatusNotRequired:
	default:
		return fmt.Errorf("%w: transport is %s", domainErrors.ErrTransportNotResolved, order.Transport.Status)
	}

	Reprice(order)
	OnConfirm(order)
	order.Status = model.OrderStatusConfirmed
	return nil
}

// Start moves a CONFIRMED order with a start date to IN_PROGRESS.
func Start(order *model.RentalOrder) error {
	if err := expectStatus(order, "start", model.OrderStatusConfirmed); err != nil {
		return err
	}
	if order.StartDate == nil {
		return fmt.Errorf("%w: start date is not set", domainErrors.ErrInvalidTransition)
	}
	order.Status = model.OrderStatusInProgress
	return nil
}

// Complete moves an IN_PROGRESS order to COMPLETED.
func Complete(order *model.RentalOrder) error {
	if err := expectStatus(order, "complete", model.OrderStatusInProgress); err != nil {
		return err
	}
	order.Status = model.OrderStatusCompleted
	return nil
}

// Cancel cancels a PENDING or CONFIRMED order. Renters may only cancel while
// the order is still PENDING.
func Cancel(order *model.RentalOrder, by model.Party) error {
	if err := checkParty(by); err != nil {
		return err
	}
	allowed := []model.OrderStatus{model.OrderStatusPending}
	if by == model.PartyAdmin {
		allowed = append(allowed, model.OrderStatusConfirmed)
	}
	if err := expectStatus(order, "cancel", allowed...); err != nil {
		return err
	}
	order.Status = model.OrderStatusCancelled
	return nil
}

// ReplaceLines swaps the whole line list of a PENDING order and reprices it.
func ReplaceLines(order *model.RentalOrder, lines []model.CartLine) error {
	if err := expectStatus(order, "replace lines", model.OrderStatusPending); err != nil {
		return err
	}
	if err := ValidateLines(lines); err != nil {
		return err
	}
	order.Lines = append([]model.CartLine(nil), lines...)
	Reprice(order)
	return nil
}

// ValidateLines checks that a cart is non-empty and every line is billable.
func ValidateLines(lines []model.CartLine) error {
	if len(lines) == 0 {
		return domainErrors.ErrEmptyCart
	}
	for i, line := range lines {
		switch {
		case line.ProductID == "":
			return fmt.Errorf("%w: line %d has no product", domainErrors.ErrInvalidLine, i)
		case line.Quantity < 1:
			return fmt.Errorf("%w: line %d quantity must be at least 1", domainErrors.ErrInvalidLine, i)
		case line.RentalDays < 1:
			return fmt.Errorf("%w: line %d rental days must be at least 1", domainErrors.ErrInvalidLine, i)
		case line.UnitPrice.LessThan(decimal.Zero):
			return fmt.Errorf("%w: line %d price must not be negative", domainErrors.ErrInvalidLine, i)
		}
	}
	return nil
}

// Reschedule sets the rental period of a PENDING or CONFIRMED order. Line
// day counts are snapshots and are not touched.
func Reschedule(order *model.RentalOrder, start, end time.Time) error {
	if err := expectStatus(order, "reschedule", model.OrderStatusPending, model.OrderStatusConfirmed); err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("%w: start %s is after end %s", domainErrors.ErrInvalidDates, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	s, e := start, end
	order.StartDate = &s
	order.EndDate = &e
	return nil
}

// RentalDays counts whole days between start and end, never less than one.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func expectStatus(order *model.RentalOrder, op string, allowed ...model.OrderStatus) error {
	for _, s := range allowed {
		if order.Status == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s order in status %s", domainErrors.ErrInvalidTransition, op, order.Status)
}
