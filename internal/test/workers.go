package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// WorkerFacadeStub mimics worker interactions with the rental facade.
type WorkerFacadeStub struct {
	Batches [][]model.Payment
	BatchFn func(context.Context, int) ([]model.Payment, error)
	CheckFn func(context.Context, string) (*model.ChargeReport, error)
	ApplyFn func(context.Context, *model.ChargeReport) error
	Applied []model.ChargeReport

	mu         sync.Mutex
	batchCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PaymentsForReconciliation returns batches from configured queue.
func (s *WorkerFacadeStub) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckCharge returns a completed report unless overridden.
func (s *WorkerFacadeStub) CheckCharge(ctx context.Context, ref string) (*model.ChargeReport, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, ref)
	}
	return &model.ChargeReport{TransactionRef: ref, Status: model.PaymentStatusCompleted}, nil
}

// ApplyChargeReport records applied reports.
func (s *WorkerFacadeStub) ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error {
	if s.ApplyFn != nil {
		if err := s.ApplyFn(ctx, report); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, *report)
	return nil
}

// AppliedCount returns the number of applied reports.
func (s *WorkerFacadeStub) AppliedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Applied)
}

// ChargeProviderStub fetches charge reports for tests.
type ChargeProviderStub struct {
	FetchFn func(context.Context, string) (*model.ChargeReport, error)
	Report  *model.ChargeReport
	Err     error
}

// Fetch returns configured response or a completed report.
func (s ChargeProviderStub) Fetch(ctx context.Context, ref string) (*model.ChargeReport, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, ref)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return &model.ChargeReport{TransactionRef: ref, Status: model.PaymentStatusCompleted}, nil
}
