package entity_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
)

func poInStatus(status string) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{ID: "po-1", PONumber: "PO-20260001", Status: status}
}

func TestTransition_CicloDeVidaCompleto(t *testing.T) {
	po := poInStatus(entity.POStatusDraft)

	for _, next := range []string{
		entity.POStatusPendingApproval,
		entity.POStatusApproved,
		entity.POStatusSent,
		entity.POStatusPartiallyReceived,
		entity.POStatusReceived,
	} {
		require.NoError(t, po.Transition(next), "transición a %s", next)
		assert.Equal(t, next, po.Status)
	}
	assert.True(t, po.IsTerminal())
}

func TestTransition_RechazoDevuelveADraft(t *testing.T) {
	po := poInStatus(entity.POStatusPendingApproval)
	require.NoError(t, po.Transition(entity.POStatusDraft))
	assert.Equal(t, entity.POStatusDraft, po.Status)
}

func TestTransition_CancelacionDesdeEstadosNoTerminales(t *testing.T) {
	for _, from := range []string{
		entity.POStatusDraft,
		entity.POStatusPendingApproval,
		entity.POStatusApproved,
		entity.POStatusSent,
	} {
		po := poInStatus(from)
		assert.NoError(t, po.Transition(entity.POStatusCancelled), "cancelar desde %s", from)
	}
}

func TestTransition_InvalidasRetornanErrInvalidTransition(t *testing.T) {
	cases := []struct{ from, to string }{
		{entity.POStatusDraft, entity.POStatusApproved},
		{entity.POStatusDraft, entity.POStatusSent},
		{entity.POStatusApproved, entity.POStatusDraft},
		{entity.POStatusSent, entity.POStatusDraft},
		{entity.POStatusPartiallyReceived, entity.POStatusCancelled},
		{entity.POStatusReceived, entity.POStatusCancelled},
		{entity.POStatusCancelled, entity.POStatusDraft},
		{entity.POStatusReceived, entity.POStatusSent},
	}
	for _, tc := range cases {
		po := poInStatus(tc.from)
		err := po.Transition(tc.to)
		require.Error(t, err, "de %s a %s debe fallar", tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, tc.from, po.Status, "el estado no debe cambiar en transición inválida")
	}
}

func TestTransition_EstadosTerminalesNoSalen(t *testing.T) {
	all := []string{
		entity.POStatusDraft, entity.POStatusPendingApproval, entity.POStatusApproved,
		entity.POStatusSent, entity.POStatusPartiallyReceived, entity.POStatusReceived,
		entity.POStatusCancelled,
	}
	for _, terminal := range []string{entity.POStatusReceived, entity.POStatusCancelled} {
		for _, to := range all {
			po := poInStatus(terminal)
			assert.False(t, po.CanTransition(to), "de %s a %s", terminal, to)
		}
	}
}

func TestRecomputeTotals(t *testing.T) {
	po := &entity.PurchaseOrder{
		Status:    entity.POStatusDraft,
		TaxAmount: decimal.NewFromInt(3),
		LineItems: []entity.POLineItem{
			{QuantityOrdered: 10, UnitPrice: decimal.NewFromFloat(2.50)}, // 25.00
			{QuantityOrdered: 7, UnitPrice: decimal.NewFromInt(5)},       // 35.00
		},
	}
	po.RecomputeTotals()

	assert.True(t, po.Subtotal.Equal(decimal.NewFromInt(60)), "subtotal = %s", po.Subtotal)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(63)), "total = %s", po.TotalAmount)
}

func TestRecomputeTotals_SinLineas(t *testing.T) {
	po := &entity.PurchaseOrder{Status: entity.POStatusDraft}
	po.RecomputeTotals()
	assert.True(t, po.Subtotal.IsZero())
	assert.True(t, po.TotalAmount.IsZero())
}

func TestAllReceived(t *testing.T) {
	po := &entity.PurchaseOrder{
		LineItems: []entity.POLineItem{
			{QuantityOrdered: 10, QuantityReceived: 10},
			{QuantityOrdered: 5, QuantityReceived: 3},
		},
	}
	assert.False(t, po.AllReceived(), "falta recibir una línea")

	po.LineItems[1].QuantityReceived = 5
	assert.True(t, po.AllReceived())
}

func TestAllReceived_SobreRecepcionCompleta(t *testing.T) {
	po := &entity.PurchaseOrder{
		LineItems: []entity.POLineItem{
			{QuantityOrdered: 10, QuantityReceived: 12},
		},
	}
	assert.True(t, po.AllReceived(), "recibido > ordenado también completa la orden")
}

func TestTransition_ErrorNombraEstados(t *testing.T) {
	po := poInStatus(entity.POStatusDraft)
	err := po.Transition(entity.POStatusSent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft")
	assert.Contains(t, err.Error(), "sent")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}
