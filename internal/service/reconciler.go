package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler periodically expires payments that never got a callback:
// abandoned checkout forms and rows left pending after a failed gateway
// call at initialization.
type Reconciler struct {
	payments *PaymentService
	interval time.Duration
	ttl      time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewReconciler(payments *PaymentService, interval, ttl time.Duration, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		payments: payments,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

func (r *Reconciler) Start() error {
	r.cron = cron.New()
	if _, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), r.run); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("payment reconciler started",
		zap.Duration("interval", r.interval),
		zap.Duration("pending_ttl", r.ttl))
	return nil
}

func (r *Reconciler) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

func (r *Reconciler) run() {
	expired, err := r.payments.ExpireStalePayments(r.ttl)
	if err != nil {
		r.logger.Error("reconcile sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		r.logger.Info("expired stale payments", zap.Int("count", expired))
	}
}
