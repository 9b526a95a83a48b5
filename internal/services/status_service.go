package services

import (
	"errors"
	"fmt"

	"threadvibe/internal/domain"
	"threadvibe/internal/events"
	"threadvibe/internal/repos"
)

// StatusService moves orders between statuses. Two edges carry stock side
// effects, applied in the same transaction as the status write so order state
// and inventory cannot diverge:
//
//	pending|processing -> shipped    decrements stock
//	*(except cancelled) -> cancelled restores stock
//
// Every other transition is a pure status write. A repeated status (e.g.
// shipped -> shipped) is a no-op and never re-applies a side effect.
type StatusService struct {
	Orders *repos.OrderRepo
	Stock  *StockService
	Bus    *events.Bus
}

func NewStatusService(orders *repos.OrderRepo, stock *StockService, bus *events.Bus) *StatusService {
	return &StatusService{Orders: orders, Stock: stock, Bus: bus}
}

func (s *StatusService) Update(orderID, newStatus string) error {
	if !domain.ValidStatus(newStatus) {
		return &ValidationError{Msg: fmt.Sprintf("unknown status %q", newStatus), Fields: []string{"status"}}
	}

	current, err := s.Orders.Status(orderID)
	if err != nil {
		return &StatusUpdateError{Err: err}
	}
	if current == newStatus {
		return nil
	}

	tx, err := s.Orders.DB.Beginx()
	if err != nil {
		return &StatusUpdateError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	// The write is conditioned on the status read above; a concurrent
	// transition that got there first makes it a zero-row update.
	n, err := s.Orders.UpdateStatusTx(tx, orderID, newStatus, current)
	if err != nil {
		return &StatusUpdateError{Err: err}
	}
	if n == 0 {
		return &StatusUpdateError{Err: errors.New("order not found or already transitioned")}
	}

	switch {
	case newStatus == domain.StatusShipped &&
		(current == domain.StatusPending || current == domain.StatusProcessing):
		err = s.Stock.AdjustTx(tx, orderID, StockDecrement)
	case newStatus == domain.StatusCancelled && current != domain.StatusCancelled:
		err = s.Stock.AdjustTx(tx, orderID, StockRestore)
	}
	if err != nil {
		// Rolls back the status write too; status and stock move together.
		return err
	}

	if err := tx.Commit(); err != nil {
		return &StatusUpdateError{Err: err}
	}

	s.Bus.Invalidate(events.KeyAdminOrders, events.KeyOrderDetail+":"+orderID, events.KeyAdminProducts)
	return nil
}
