package rental

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

// Operation names a legal mutator of a rental order.
type Operation string

const (
	OpReplaceLines     Operation = "replace_lines"
	OpReschedule       Operation = "reschedule"
	OpProposeTransport Operation = "propose_transport"
	OpAcceptTransport  Operation = "accept_transport"
	OpRejectTransport  Operation = "reject_transport"
	OpConfirm          Operation = "confirm"
	OpStart            Operation = "start"
	OpComplete         Operation = "complete"
	OpCancel           Operation = "cancel"
	OpPayDeposit       Operation = "pay_deposit"
	OpPayBalance       Operation = "pay_balance"
)

var partyOperations = map[model.Party][]Operation{
	model.PartyUser: {
		OpReplaceLines, OpReschedule,
		OpProposeTransport, OpAcceptTransport, OpRejectTransport,
		OpCancel, OpPayDeposit, OpPayBalance,
	},
	model.PartyAdmin: {
		OpReschedule,
		OpProposeTransport, OpAcceptTransport, OpRejectTransport,
		OpConfirm, OpStart, OpComplete, OpCancel,
	},
}

// Authorize fails with ErrForbidden when the party may never run op.
func Authorize(party model.Party, op Operation) error {
	for _, allowed := range partyOperations[party] {
		if allowed == op {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not %s", domainErrors.ErrForbidden, party, op)
}

// AllowedOperations lists what the party can do with the order right now.
// Each candidate is dry-run against a clone so the answer matches the mutators.
func AllowedOperations(order *model.RentalOrder, party model.Party) []Operation {
	ops := make([]Operation, 0, len(partyOperations[party]))
	for _, op := range partyOperations[party] {
		if dryRun(order.Clone(), party, op) == nil {
			ops = append(ops, op)
		}
	}
	return ops
}

func dryRun(order *model.RentalOrder, party model.Party, op Operation) error {
	var zero time.Time
	switch op {
	case OpReplaceLines:
		return ReplaceLines(order, []model.CartLine{{ProductID: "probe", Quantity: 1, RentalDays: 1}})
	case OpReschedule:
		return Reschedule(order, zero, zero)
	case OpProposeTransport:
		return Propose(order, party, decimal.Zero, zero)
	case OpAcceptTransport:
		return Accept(order, party)
	case OpRejectTransport:
		return Reject(order, party)
	case OpConfirm:
		return Confirm(order)
	case OpStart:
		return Start(order)
	case OpComplete:
		return Complete(order)
	case OpCancel:
		return Cancel(order, party)
	case OpPayDeposit:
		return EnsureCollectable(order, model.PaymentKindDeposit)
	case OpPayBalance:
		return EnsureCollectable(order, model.PaymentKindBalance)
	}
	return fmt.Errorf("%w: unknown operation %q", domainErrors.ErrInvalidTransition, op)
}
