package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/furnirent/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	CheckCharge(ctx context.Context, ref string) (*model.ChargeReport, error)
	ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error
}

// PaymentReconciler polls the payment gateway for pending charges and
// settles them concurrently.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciler worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background processing. Calling Start on a running
// reconciler is a no-op.
func (r *PaymentReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.jobs = make(chan model.Payment, r.batchSize*r.workers)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx, r.jobs)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx, r.jobs)
}

// Stop cancels processing and waits for all workers to finish.
func (r *PaymentReconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *PaymentReconciler) dispatch(ctx context.Context, jobs chan<- model.Payment) {
	defer r.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (r *PaymentReconciler) fetchAndDispatch(ctx context.Context, jobs chan<- model.Payment) {
	payments, err := r.facade.PaymentsForReconciliation(ctx, r.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("fetch payments for reconciliation failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case jobs <- payment:
		}
	}
}

func (r *PaymentReconciler) worker(ctx context.Context, jobs <-chan model.Payment) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-jobs:
			if !ok {
				return
			}
			r.handlePayment(ctx, payment)
		}
	}
}

func (r *PaymentReconciler) handlePayment(ctx context.Context, payment model.Payment) {
	report, err := r.facade.CheckCharge(ctx, payment.TransactionRef)
	if err != nil {
		var tooMany gateway.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			r.logger.Warn("payment gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			sleep(ctx, tooMany.RetryAfter)
		case errors.Is(err, gateway.ErrChargeNotRegistered):
			r.logger.Debug("charge not registered yet", slog.String("transaction_ref", payment.TransactionRef))
		case ctx.Err() != nil:
		default:
			r.logger.Error("charge fetch failed", slog.String("transaction_ref", payment.TransactionRef), slog.String("error", err.Error()))
		}
		return
	}

	if err := r.facade.ApplyChargeReport(ctx, report); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyPaid) {
			r.logger.Warn("duplicate charge for settled leg",
				slog.String("order_id", payment.OrderID),
				slog.String("transaction_ref", payment.TransactionRef),
			)
			return
		}
		r.logger.Error("apply charge report failed",
			slog.String("transaction_ref", payment.TransactionRef),
			slog.String("error", err.Error()),
		)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
