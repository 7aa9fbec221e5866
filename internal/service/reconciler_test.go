package service

import (
	"testing"
	"time"

	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestReconcilerStartStop(t *testing.T) {
	env := newTestEnv()

	r := NewReconciler(env.svc, time.Hour, time.Hour, nil)
	require.NoError(t, r.Start())
	r.Stop()
}

func TestReconcilerRunExpiresStalePayments(t *testing.T) {
	env := newTestEnv()
	stale := seedPendingPayment(env, time.Now().Add(-2*time.Hour))

	r := NewReconciler(env.svc, time.Hour, time.Hour, nil)
	r.run()

	require.Equal(t, models.PaymentStatusFailed, env.payments.payments[stale.ID].Status)
}
