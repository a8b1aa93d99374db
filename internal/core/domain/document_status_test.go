package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
)

func TestStatusMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		machine StatusMachine
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{"invoice draft to sent", InvoiceStatusMachine, DocDraft, DocSent, true},
		{"invoice draft to pending", InvoiceStatusMachine, DocDraft, DocPending, false},
		{"bill draft to pending", BillStatusMachine, DocDraft, DocPending, true},
		{"bill draft to sent", BillStatusMachine, DocDraft, DocSent, false},
		{"draft to cancelled", InvoiceStatusMachine, DocDraft, DocCancelled, true},
		{"sent to overdue", InvoiceStatusMachine, DocSent, DocOverdue, true},
		{"pending to paid", BillStatusMachine, DocPending, DocPaid, true},
		{"partially paid to paid", InvoiceStatusMachine, DocPartiallyPaid, DocPaid, true},
		{"partially paid to cancelled", InvoiceStatusMachine, DocPartiallyPaid, DocCancelled, false},
		{"overdue to partially paid", BillStatusMachine, DocOverdue, DocPartiallyPaid, true},
		{"paid is terminal", InvoiceStatusMachine, DocPaid, DocSent, false},
		{"cancelled is terminal", BillStatusMachine, DocCancelled, DocDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.machine.ValidateTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidStatusTransition))
			assert.Equal(t, "Invalid status transition: "+string(tt.from)+" → "+string(tt.to), apperrors.As(err).Message)
		})
	}
}

func TestApplyPayment(t *testing.T) {
	t.Run("rejects overpayment and leaves paid amount unchanged", func(t *testing.T) {
		bill := DocumentHeader{Total: 56500, Status: DocPending}
		err := BillStatusMachine.ApplyPayment(&bill, 60000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceed balance")
		assert.Equal(t, int64(0), bill.PaidAmount)
		assert.Equal(t, DocPending, bill.Status)
	})

	t.Run("rejects an amount that would wrap the paid total", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, PaidAmount: 500, Status: DocPartiallyPaid}
		require.Error(t, InvoiceStatusMachine.ApplyPayment(&inv, math.MaxInt64))
		assert.Equal(t, int64(500), inv.PaidAmount)
		assert.Equal(t, DocPartiallyPaid, inv.Status)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, Status: DocSent}
		assert.Error(t, InvoiceStatusMachine.ApplyPayment(&inv, 0))
		assert.Error(t, InvoiceStatusMachine.ApplyPayment(&inv, -5))
	})

	t.Run("partial then full", func(t *testing.T) {
		inv := DocumentHeader{Total: 113000, Status: DocSent}
		require.NoError(t, InvoiceStatusMachine.ApplyPayment(&inv, 13000))
		assert.Equal(t, DocPartiallyPaid, inv.Status)
		require.NoError(t, InvoiceStatusMachine.ApplyPayment(&inv, 50000))
		assert.Equal(t, DocPartiallyPaid, inv.Status)
		require.NoError(t, InvoiceStatusMachine.ApplyPayment(&inv, 50000))
		assert.Equal(t, DocPaid, inv.Status)
		assert.Equal(t, int64(113000), inv.PaidAmount)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, Status: DocDraft}
		err := InvoiceStatusMachine.ApplyPayment(&inv, 500)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidStatusTransition))
		assert.Equal(t, int64(0), inv.PaidAmount)
	})
}

func TestReversePayment(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("partial reversal stays partially paid", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, PaidAmount: 1000, Status: DocPaid}
		require.NoError(t, InvoiceStatusMachine.ReversePayment(&inv, 400, now))
		assert.Equal(t, int64(600), inv.PaidAmount)
		assert.Equal(t, DocPartiallyPaid, inv.Status)
	})

	t.Run("full reversal before due date returns to issued", func(t *testing.T) {
		bill := DocumentHeader{Total: 1000, PaidAmount: 300, Status: DocPartiallyPaid, DueDate: now.AddDate(0, 0, 5)}
		require.NoError(t, BillStatusMachine.ReversePayment(&bill, 900, now))
		assert.Equal(t, int64(0), bill.PaidAmount)
		assert.Equal(t, DocPending, bill.Status)
	})

	t.Run("full reversal after due date is overdue", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, PaidAmount: 1000, Status: DocPaid, DueDate: now.AddDate(0, 0, -1)}
		require.NoError(t, InvoiceStatusMachine.ReversePayment(&inv, 1000, now))
		assert.Equal(t, DocOverdue, inv.Status)
	})

	t.Run("draft is rejected", func(t *testing.T) {
		inv := DocumentHeader{Total: 1000, Status: DocDraft}
		assert.Error(t, InvoiceStatusMachine.ReversePayment(&inv, 100, now))
	})
}

func TestCancel(t *testing.T) {
	inv := DocumentHeader{Total: 1000, Status: DocSent}
	require.NoError(t, InvoiceStatusMachine.Cancel(&inv))
	assert.Equal(t, DocCancelled, inv.Status)

	paid := DocumentHeader{Total: 1000, PaidAmount: 10, Status: DocPartiallyPaid}
	assert.Error(t, InvoiceStatusMachine.Cancel(&paid))

	overdue := DocumentHeader{Total: 1000, Status: DocOverdue}
	err := BillStatusMachine.Cancel(&overdue)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidStatusTransition))
	assert.Equal(t, DocOverdue, overdue.Status)
}
