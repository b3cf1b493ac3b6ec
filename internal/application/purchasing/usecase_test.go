package purchasing_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/application/ledger"
	"github.com/pesl98/erp/internal/application/purchasing"
	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePORepo struct {
	orders map[string]*entity.PurchaseOrder
	lines  map[string]*entity.POLineItem
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{
		orders: make(map[string]*entity.PurchaseOrder),
		lines:  make(map[string]*entity.POLineItem),
	}
}

func (r *fakePORepo) Create(po *entity.PurchaseOrder) error {
	for _, existing := range r.orders {
		if existing.PONumber == po.PONumber {
			return fmt.Errorf("po_number '%s': %w", po.PONumber, domain.ErrTransientConflict)
		}
	}
	cp := *po
	cp.LineItems = nil
	cp.Receipts = nil
	r.orders[po.ID] = &cp
	return nil
}

func (r *fakePORepo) CreateLineItem(item *entity.POLineItem) error {
	cp := *item
	r.lines[item.ID] = &cp
	return nil
}

func (r *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *po
	return &cp, nil
}

func (r *fakePORepo) GetWithDetails(id string) (*entity.PurchaseOrder, error) {
	po, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	items, _ := r.ListLineItems(id)
	for _, it := range items {
		po.LineItems = append(po.LineItems, *it)
	}
	return po, nil
}

func (r *fakePORepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakePORepo) Update(po *entity.PurchaseOrder) error {
	if _, ok := r.orders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *po
	cp.LineItems = nil
	cp.Receipts = nil
	r.orders[po.ID] = &cp
	return nil
}

func (r *fakePORepo) UpdateStatus(id, status string) error {
	po, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}

func (r *fakePORepo) DeleteLineItems(poID string) error {
	for id, li := range r.lines {
		if li.PurchaseOrderID == poID {
			delete(r.lines, id)
		}
	}
	return nil
}

func (r *fakePORepo) ListLineItems(poID string) ([]*entity.POLineItem, error) {
	var out []*entity.POLineItem
	for _, li := range r.lines {
		if li.PurchaseOrderID == poID {
			cp := *li
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakePORepo) AddLineItemReceived(lineItemID string, quantity int64) error {
	li, ok := r.lines[lineItemID]
	if !ok {
		return domain.ErrNotFound
	}
	li.QuantityReceived += quantity
	return nil
}

func (r *fakePORepo) List(filter repository.POFilter) ([]*entity.PurchaseOrder, int, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.orders {
		if filter.Status != "" && po.Status != filter.Status {
			continue
		}
		if filter.VendorID != "" && po.VendorID != filter.VendorID {
			continue
		}
		cp := *po
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type fakeReceiptRepo struct {
	receipts map[string]*entity.GoodsReceipt
	items    []*entity.GoodsReceiptItem
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: make(map[string]*entity.GoodsReceipt)}
}

func (r *fakeReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	for _, existing := range r.receipts {
		if existing.ReceiptNumber == receipt.ReceiptNumber {
			return fmt.Errorf("receipt_number '%s': %w", receipt.ReceiptNumber, domain.ErrTransientConflict)
		}
	}
	cp := *receipt
	cp.Items = nil
	r.receipts[receipt.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	gr, ok := r.receipts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *gr
	return &cp, nil
}

func (r *fakeReceiptRepo) ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, gr := range r.receipts {
		if gr.PurchaseOrderID == poID {
			cp := *gr
			for _, it := range r.items {
				if it.GoodsReceiptID == gr.ID {
					cp.Items = append(cp.Items, *it)
				}
			}
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(docType string, year int) (int64, error) {
	key := fmt.Sprintf("%s-%d", docType, year)
	r.counters[key]++
	return r.counters[key], nil
}

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func (r *fakeVendorRepo) Create(v *entity.Vendor) error { r.vendors[v.ID] = v; return nil }
func (r *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
func (r *fakeVendorRepo) GetByCode(code string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.Code == code {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeVendorRepo) Update(v *entity.Vendor) error { r.vendors[v.ID] = v; return nil }
func (r *fakeVendorRepo) List(search string, onlyActive bool, limit, offset int) ([]*entity.Vendor, int, error) {
	return nil, 0, nil
}
func (r *fakeVendorRepo) Delete(id string) error { delete(r.vendors, id); return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

// Niveles de stock y movimientos, mínimos para el StockReceiver.
type fakeLevelRepo struct {
	levels map[string]*entity.StockLevel
}

func (r *fakeLevelRepo) key(productID, locationID string) string { return productID + "|" + locationID }

func (r *fakeLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	if lv, ok := r.levels[r.key(productID, locationID)]; ok {
		cp := *lv
		return &cp, nil
	}
	return &entity.StockLevel{ProductID: productID, LocationID: locationID}, nil
}

func (r *fakeLevelRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.levels[r.key(level.ProductID, level.LocationID)] = &cp
	return nil
}

func (r *fakeLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	return nil, nil
}

func (r *fakeLevelRepo) onHand(productID, locationID string) int64 {
	if lv, ok := r.levels[r.key(productID, locationID)]; ok {
		return lv.QuantityOnHand
	}
	return 0
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	return r.movements, len(r.movements), nil
}

type fakeTxRunner struct {
	poRepo      *fakePORepo
	receiptRepo *fakeReceiptRepo
	seqRepo     *fakeSequenceRepo
	levelRepo   *fakeLevelRepo
	movRepo     *fakeMovementRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	seqRepo repository.SequenceRepository,
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(tr.poRepo, tr.receiptRepo, tr.seqRepo, tr.levelRepo, tr.movRepo)
}

// fixture arma el caso de uso con un proveedor activo y dos productos.
type fixture struct {
	uc *purchasing.UseCase
	tr *fakeTxRunner
}

func newFixture() *fixture {
	tr := &fakeTxRunner{
		poRepo:      newFakePORepo(),
		receiptRepo: newFakeReceiptRepo(),
		seqRepo:     newFakeSequenceRepo(),
		levelRepo:   &fakeLevelRepo{levels: make(map[string]*entity.StockLevel)},
		movRepo:     &fakeMovementRepo{},
	}
	vendors := &fakeVendorRepo{vendors: map[string]*entity.Vendor{
		"vendor-1": {ID: "vendor-1", Code: "ACME", Name: "ACME SAS", IsActive: true},
		"vendor-2": {ID: "vendor-2", Code: "INACTIVO", Name: "Cerrado SA", IsActive: false},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", SKU: "SKU-001", Name: "Tornillo", Status: entity.ProductStatusActive},
		"prod-2": {ID: "prod-2", SKU: "SKU-002", Name: "Tuerca", Status: entity.ProductStatusActive},
	}}
	// El receptor es el caso de uso del libro real: ReceiveInTx solo usa los
	// repositorios que recibe como argumento.
	receiver := ledger.NewUseCase(nil, nil, nil, nil, nil)
	uc := purchasing.NewUseCase(tr, tr.poRepo, tr.receiptRepo, vendors, products, receiver)
	return &fixture{uc: uc, tr: tr}
}

func (f *fixture) createDraft(t *testing.T) *dto.PurchaseOrderResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-1",
		TaxAmount: decimal.NewFromInt(3),
		LineItems: []dto.POLineItemRequest{
			{ProductID: "prod-1", QuantityOrdered: 10, UnitPrice: decimal.NewFromFloat(2.50)},
			{ProductID: "prod-2", QuantityOrdered: 7, UnitPrice: decimal.NewFromInt(5), SortOrder: 1},
		},
	})
	require.NoError(t, err)
	return resp
}

// advanceTo lleva la orden hasta el estado pedido por el camino normal.
func (f *fixture) advanceTo(t *testing.T, id, target string) {
	t.Helper()
	ctx := context.Background()
	steps := []struct {
		status string
		do     func() error
	}{
		{entity.POStatusPendingApproval, func() error { _, err := f.uc.Submit(ctx, id); return err }},
		{entity.POStatusApproved, func() error { _, err := f.uc.Approve(ctx, id, "approver-1"); return err }},
		{entity.POStatusSent, func() error { _, err := f.uc.Send(ctx, id); return err }},
	}
	for _, s := range steps {
		require.NoError(t, s.do())
		if s.status == target {
			return
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalesYAsignaNumero(t *testing.T) {
	f := newFixture()
	resp := f.createDraft(t)

	assert.Equal(t, entity.POStatusDraft, resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(60)), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(63)), "total = %s", resp.TotalAmount)
	require.Len(t, resp.LineItems, 2)

	expected := fmt.Sprintf("PO-%d%04d", time.Now().Year(), 1)
	assert.Equal(t, expected, resp.PONumber)
}

func TestCreate_NumeracionConsecutiva(t *testing.T) {
	f := newFixture()
	first := f.createDraft(t)
	second := f.createDraft(t)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PO-%d%04d", year, 1), first.PONumber)
	assert.Equal(t, fmt.Sprintf("PO-%d%04d", year, 2), second.PONumber)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-2",
		LineItems: []dto.POLineItemRequest{{ProductID: "prod-1", QuantityOrdered: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "proveedor inactivo")

	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-1",
		LineItems: []dto.POLineItemRequest{{ProductID: "prod-1", QuantityOrdered: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad cero")

	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-1",
		LineItems: []dto.POLineItemRequest{{ProductID: "prod-1", QuantityOrdered: 1, UnitPrice: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-1",
		LineItems: []dto.POLineItemRequest{{ProductID: "prod-inexistente", QuantityOrdered: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = f.uc.Create(ctx, "user-1", dto.CreatePurchaseOrderRequest{
		VendorID:  "vendor-1",
		TaxAmount: decimal.NewFromInt(-1),
		LineItems: []dto.POLineItemRequest{{ProductID: "prod-1", QuantityOrdered: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "impuesto negativo")
}

func TestUpdate_ReemplazaLineasYRecalcula(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)

	newLines := []dto.POLineItemRequest{
		{ProductID: "prod-1", QuantityOrdered: 4, UnitPrice: decimal.NewFromInt(10)},
	}
	resp, err := f.uc.Update(context.Background(), po.ID, dto.UpdatePurchaseOrderRequest{
		LineItems: &newLines,
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 1)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(43)), "conserva el impuesto original")
}

func TestUpdate_SoloEnDraft(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusPendingApproval)

	notes := "cambio tardío"
	_, err := f.uc.Update(context.Background(), po.ID, dto.UpdatePurchaseOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SinLineasFalla(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Create(context.Background(), "user-1", dto.CreatePurchaseOrderRequest{
		VendorID: "vendor-1",
	})
	require.NoError(t, err)

	_, err = f.uc.Submit(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una orden vacía no tiene nada que aprobar")
}

func TestApprove_RegistraAprobador(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusPendingApproval)

	resp, err := f.uc.Approve(context.Background(), po.ID, "approver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusApproved, resp.Status)
	assert.Equal(t, "approver-1", resp.ApprovedBy)
	require.NotNil(t, resp.ApprovedAt)
}

func TestReject_DevuelveADraftYLimpiaAprobacion(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusPendingApproval)

	resp, err := f.uc.Reject(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusDraft, resp.Status)
	assert.Empty(t, resp.ApprovedBy)
	assert.Nil(t, resp.ApprovedAt)

	// La orden corregida se puede volver a mandar.
	_, err = f.uc.Submit(context.Background(), po.ID)
	assert.NoError(t, err)
}

func TestTransiciones_InvalidasFallan(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)

	// draft no puede aprobarse ni enviarse directo.
	_, err := f.uc.Approve(context.Background(), po.ID, "approver-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.Send(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_DesdeEstadoNoTerminal(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusApproved)

	resp, err := f.uc.Cancel(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, resp.Status)

	// Una orden cancelada no recibe mercancía.
	_, err = f.uc.ReceiveGoods(context.Background(), po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: resp.LineItems[0].ID, QuantityReceived: 1, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción de mercancía
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveGoods_ParcialYLuegoCompleta(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusSent)
	ctx := context.Background()

	full, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	line1, line2 := full.LineItems[0], full.LineItems[1]

	// Primera recepción: 4 de 10 de la primera línea.
	gr, err := f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: line1.ID, QuantityReceived: 4, LocationID: "loc-1"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("GR-%d%04d", time.Now().Year(), 1), gr.ReceiptNumber)
	require.Len(t, gr.Items, 1)

	after, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyReceived, after.Status)
	assert.EqualValues(t, 4, f.tr.levelRepo.onHand("prod-1", "loc-1"), "el stock se acreditó")

	// partially_received ya movió inventario: tampoco se puede cancelar.
	_, err = f.uc.Cancel(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Un movimiento entrante por línea recibida, referenciando la recepción.
	require.Len(t, f.tr.movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeIn, f.tr.movRepo.movements[0].MovementType)
	assert.Equal(t, gr.ID, f.tr.movRepo.movements[0].ReferenceID)

	// Segunda recepción: el resto de ambas líneas → received.
	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: line1.ID, QuantityReceived: 6, LocationID: "loc-1"},
			{POLineItemID: line2.ID, QuantityReceived: 7, LocationID: "loc-2"},
		},
	})
	require.NoError(t, err)

	final, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, final.Status)
	assert.EqualValues(t, 10, f.tr.levelRepo.onHand("prod-1", "loc-1"))
	assert.EqualValues(t, 7, f.tr.levelRepo.onHand("prod-2", "loc-2"))

	receipts, err := f.uc.ListReceipts(ctx, po.ID)
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
}

func TestReceiveGoods_SobreRecepcionCompletaLaOrden(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusSent)
	ctx := context.Background()

	full, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)

	// Más de lo ordenado en ambas líneas: no se bloquea y completa la orden.
	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: full.LineItems[0].ID, QuantityReceived: 12, LocationID: "loc-1"},
			{POLineItemID: full.LineItems[1].ID, QuantityReceived: 9, LocationID: "loc-1"},
		},
	})
	require.NoError(t, err)

	after, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, after.Status)
	assert.EqualValues(t, 12, after.LineItems[0].QuantityReceived)
}

func TestReceiveGoods_SoloEnSentOParcial(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	ctx := context.Background()

	_, err := f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: po.LineItems[0].ID, QuantityReceived: 1, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una orden en draft no recibe mercancía")
}

func TestReceiveGoods_Validaciones(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusSent)
	ctx := context.Background()

	_, err := f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "recepción sin líneas")

	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: po.LineItems[0].ID, QuantityReceived: 0, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad cero")

	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: "linea-ajena", QuantityReceived: 1, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "línea que no pertenece a la orden")

	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: po.LineItems[0].ID, ProductID: "prod-2", QuantityReceived: 1, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto que no coincide con la línea")
}

func TestReceiveGoods_OrdenRecibidaEsTerminal(t *testing.T) {
	f := newFixture()
	po := f.createDraft(t)
	f.advanceTo(t, po.ID, entity.POStatusSent)
	ctx := context.Background()

	full, err := f.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: full.LineItems[0].ID, QuantityReceived: 10, LocationID: "loc-1"},
			{POLineItemID: full.LineItems[1].ID, QuantityReceived: 7, LocationID: "loc-1"},
		},
	})
	require.NoError(t, err)

	// received es terminal: ni cancelar ni recibir de nuevo.
	_, err = f.uc.Cancel(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una orden totalmente recibida no se cancela")

	_, err = f.uc.ReceiveGoods(ctx, po.ID, "user-1", dto.GoodsReceiptRequest{
		Items: []dto.GoodsReceiptItemRequest{
			{POLineItemID: full.LineItems[0].ID, QuantityReceived: 1, LocationID: "loc-1"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
