package rental

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

// ProposeAsUser records the renter's transport cost offer.
func ProposeAsUser(order *model.RentalOrder, cost decimal.Decimal, at time.Time) error {
	return Propose(order, model.PartyUser, cost, at)
}

// ProposeAsAdmin records the administrator's transport cost offer.
func ProposeAsAdmin(order *model.RentalOrder, cost decimal.Decimal, at time.Time) error {
	return Propose(order, model.PartyAdmin, cost, at)
}

// Propose records an offer made by the given party. It is legal from PENDING,
// REJECTED, or after the opposite party's offer.
func Propose(order *model.RentalOrder, by model.Party, cost decimal.Decimal, at time.Time) error {
	if err := checkParty(by); err != nil {
		return err
	}
	if cost.IsNegative() {
		return fmt.Errorf("%w: transport cost must not be negative", domainErrors.ErrInvalidAmount)
	}
	if !cost.Equal(cost.Round(2)) {
		return fmt.Errorf("%w: transport cost %s has more than two decimal places", domainErrors.ErrInvalidAmount, cost)
	}
	if err := negotiable(order); err != nil {
		return err
	}

	switch order.Transport.Status {
	case model.TransportStatusPending, model.TransportStatusRejected:
	case proposedBy(opposite(by)):
	default:
		return fmt.Errorf("%w: %s cannot propose while transport is %s", domainErrors.ErrInvalidTransition, by, order.Transport.Status)
	}

	offer := decimal.NewNullDecimal(cost)
	if by == model.PartyUser {
		order.Transport.UserProposedCost = offer
	} else {
		order.Transport.AdminProposedCost = offer
	}
	order.Transport.Status = proposedBy(by)
	order.Transport.LastProposer = by
	proposedAt := at
	order.Transport.ProposedAt = &proposedAt
	return nil
}

// Accept settles the negotiation on the counterparty's last offer and reprices
// the order.
func Accept(order *model.RentalOrder, by model.Party) error {
	offered, err := openOffer(order, by)
	if err != nil {
		return err
	}
	order.Transport.AcceptedCost = offered
	order.Transport.Status = model.TransportStatusAccepted
	Reprice(order)
	return nil
}

// Reject closes the current offer. Proposed values are kept and either side
// may propose again.
func Reject(order *model.RentalOrder, by model.Party) error {
	if _, err := openOffer(order, by); err != nil {
		return err
	}
	order.Transport.Status = model.TransportStatusRejected
	return nil
}

func openOffer(order *model.RentalOrder, by model.Party) (decimal.Decimal, error) {
	if err := checkParty(by); err != nil {
		return decimal.Zero, err
	}
	if err := negotiable(order); err != nil {
		return decimal.Zero, err
	}

	var offered decimal.NullDecimal
	switch order.Transport.Status {
	case model.TransportStatusUserProposed:
		offered = order.Transport.UserProposedCost
	case model.TransportStatusAdminProposed:
		offered = order.Transport.AdminProposedCost
	default:
		return decimal.Zero, fmt.Errorf("%w: no open transport offer", domainErrors.ErrInvalidTransition)
	}
	if by == order.Transport.LastProposer {
		return decimal.Zero, fmt.Errorf("%w: %s cannot answer its own offer", domainErrors.ErrInvalidParty, by)
	}
	return offered.Decimal, nil
}

func negotiable(order *model.RentalOrder) error {
	if order.Transport.Status == model.TransportStatusNotRequired {
		return fmt.Errorf("%w: transport was not requested", domainErrors.ErrInvalidTransition)
	}
	if order.Status != model.OrderStatusPending {
		return fmt.Errorf("%w: transport is negotiable only while order is %s", domainErrors.ErrInvalidTransition, model.OrderStatusPending)
	}
	return nil
}

func checkParty(p model.Party) error {
	if p != model.PartyUser && p != model.PartyAdmin {
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidParty, p)
	}
	return nil
}

func proposedBy(p model.Party) model.TransportStatus {
	if p == model.PartyAdmin {
		return model.TransportStatusAdminProposed
	}
	return model.TransportStatusUserProposed
}

func opposite(p model.Party) model.Party {
	if p == model.PartyAdmin {
		return model.PartyUser
	}
	return model.PartyAdmin
}
