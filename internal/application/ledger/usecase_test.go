package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos: dataMu protege los mapas en cada acceso y
// txMu serializa transacciones completas, igual que el bloqueo de fila
// (SELECT FOR UPDATE) serializa dos escrituras sobre el mismo stock.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	dataMu    sync.RWMutex
	txMu      sync.Mutex
	stocks    map[string]entity.Stock
	movements map[string]entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		stocks:    make(map[string]entity.Stock),
		movements: make(map[string]entity.Movement),
	}
}

func (s *memStore) snapshot() (map[string]entity.Stock, map[string]entity.Movement) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	stocks := make(map[string]entity.Stock, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	movements := make(map[string]entity.Movement, len(s.movements))
	for k, v := range s.movements {
		movements[k] = v
	}
	return stocks, movements
}

func (s *memStore) restore(stocks map[string]entity.Stock, movements map[string]entity.Movement) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.stocks = stocks
	s.movements = movements
}

type fakeStockRepo struct{ store *memStore }

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Create(stock *entity.Stock) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	r.store.stocks[stock.ID] = *stock
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.Stock, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	s, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	copia := s
	return &copia, nil
}

// GetForUpdate en el fake es un GetByID: la exclusión la da txMu del runner.
func (r *fakeStockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *fakeStockRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	s, ok := r.store.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Quantity = quantity
	s.UpdatedAt = time.Now()
	r.store.stocks[id] = s
	return nil
}

func (r *fakeStockRepo) UpdatePrice(id string, price decimal.Decimal) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	s, ok := r.store.stocks[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Price = price
	r.store.stocks[id] = s
	return nil
}

func (r *fakeStockRepo) Delete(id string) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	delete(r.store.stocks, id)
	return nil
}

func (r *fakeStockRepo) List(filter repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	var list []*entity.Stock
	for _, s := range r.store.stocks {
		copia := s
		list = append(list, &copia)
	}
	return list, nil
}

type fakeMovementRepo struct{ store *memStore }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(movement *entity.Movement) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	r.store.movements[movement.ID] = *movement
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	copia := m
	return &copia, nil
}

func (r *fakeMovementRepo) Delete(id string) error {
	r.store.dataMu.Lock()
	defer r.store.dataMu.Unlock()
	delete(r.store.movements, id)
	return nil
}

func (r *fakeMovementRepo) SumByType(stockID string) (decimal.Decimal, decimal.Decimal, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, m := range r.store.movements {
		if m.StockID != stockID {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIN:
			totalIn = totalIn.Add(m.Quantity)
		case entity.MovementTypeOUT:
			totalOut = totalOut.Add(m.Quantity)
		}
	}
	return totalIn, totalOut, nil
}

func (r *fakeMovementRepo) CountByStock(stockID string) (int64, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	var n int64
	for _, m := range r.store.movements {
		if m.StockID == stockID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.Movement, error) {
	r.store.dataMu.RLock()
	defer r.store.dataMu.RUnlock()
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if m.StockID == stockID {
			copia := m
			list = append(list, &copia)
		}
	}
	return list, nil
}

// fakeTxRunner serializa transacciones con txMu y revierte los mapas al
// snapshot previo si el callback falla (rollback).
type fakeTxRunner struct{ store *memStore }

var _ ledger.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	stocks, movements := r.store.snapshot()
	err := fn(&fakeMovementRepo{store: r.store}, &fakeStockRepo{store: r.store})
	if err != nil {
		r.store.restore(stocks, movements)
		return err
	}
	return nil
}

type fakeWarehouseRepo struct{ warehouses map[string]*entity.Warehouse }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.warehouses[id], nil
}
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { r.warehouses[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r *fakeWarehouseRepo) Delete(id string) error { delete(r.warehouses, id); return nil }

type fakeProductRepo struct{ products map[string]*entity.Product }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error                { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)    { return r.products[id], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeProfileRepo struct{ profiles []*entity.Profile }

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (r *fakeProfileRepo) Create(p *entity.Profile) error { r.profiles = append(r.profiles, p); return nil }
func (r *fakeProfileRepo) GetByUserAndCompany(userID, companyID string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID && p.CompanyID == companyID {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProfileRepo) ListByUser(userID string) ([]*entity.Profile, error) {
	var list []*entity.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			list = append(list, p)
		}
	}
	return list, nil
}
func (r *fakeProfileRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Profile, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID  = "00000000-0000-0000-0000-00000000000a"
	otherCompanyID = "00000000-0000-0000-0000-00000000000b"
	testWarehouse  = "00000000-0000-0000-0000-000000000001"
	otherWarehouse = "00000000-0000-0000-0000-000000000002"
	testProduct    = "00000000-0000-0000-0000-000000000003"
	testUserID     = "00000000-0000-0000-0000-000000000004"
	testProfileID  = "00000000-0000-0000-0000-000000000005"
)

type engine struct {
	uc       *ledger.UseCase
	store    *memStore
	movRepo  *fakeMovementRepo
	stkRepo  *fakeStockRepo
	profiles *fakeProfileRepo
}

// newEngine construye el motor con una empresa, una bodega de otra empresa,
// un producto y un perfil del usuario de pruebas.
func newEngine() *engine {
	store := newMemStore()
	stkRepo := &fakeStockRepo{store: store}
	movRepo := &fakeMovementRepo{store: store}
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouse:  {ID: testWarehouse, CompanyID: testCompanyID, Name: "Bodega Central"},
		otherWarehouse: {ID: otherWarehouse, CompanyID: otherCompanyID, Name: "Bodega Ajena"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		testProduct: {ID: testProduct, CompanyID: testCompanyID, Name: "Tornillo 3mm"},
	}}
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{
		{ID: testProfileID, UserID: testUserID, CompanyID: testCompanyID, Role: entity.RoleBodeguero, Active: true},
	}}
	uc := ledger.NewUseCase(&fakeTxRunner{store: store}, stkRepo, movRepo, warehouses, products, profiles)
	return &engine{uc: uc, store: store, movRepo: movRepo, stkRepo: stkRepo, profiles: profiles}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func (e *engine) createStock(t *testing.T, qty, price int64) *entity.Stock {
	t.Helper()
	stock, err := e.uc.CreateStock(context.Background(), ledger.CreateStockInput{
		CompanyID:   testCompanyID,
		UserID:      testUserID,
		WarehouseID: testWarehouse,
		ProductID:   testProduct,
		Quantity:    dec(qty),
		Price:       dec(price),
	})
	require.NoError(t, err)
	require.NotNil(t, stock)
	return stock
}

func (e *engine) register(t *testing.T, stockID, tipo string, qty int64, unitPrice *int64) (*entity.Stock, error) {
	t.Helper()
	var price *decimal.Decimal
	if unitPrice != nil {
		p := dec(*unitPrice)
		price = &p
	}
	return e.uc.RegisterMovement(context.Background(), ledger.RegisterMovementInput{
		CompanyID: testCompanyID,
		UserID:    testUserID,
		StockID:   stockID,
		Type:      tipo,
		Quantity:  dec(qty),
		UnitPrice: price,
	})
}

func ptr(n int64) *int64 { return &n }

func (e *engine) movementsOf(t *testing.T, stockID string) []*entity.Movement {
	t.Helper()
	list, err := e.movRepo.ListByStock(stockID, 100, 0)
	require.NoError(t, err)
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateStock: génesis y validaciones
// ──────────────────────────────────────────────────────────────────────────────

// Crear un stock con cantidad 10 debe dejar exactamente un movimiento de
// entrada por 10 y la cantidad derivada en 10.
func TestCreateStock_GenesisEntradaInicial(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	assert.True(t, stock.Quantity.Equal(dec(10)), "la cantidad debe ser la inicial")
	movs := e.movementsOf(t, stock.ID)
	require.Len(t, movs, 1, "debe existir exactamente el movimiento génesis")
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec(10)))
	require.NotNil(t, movs[0].UnitPrice, "el génesis lleva el precio inicial como costo")
	assert.True(t, movs[0].UnitPrice.Equal(dec(500)))
	require.NotNil(t, movs[0].ResponsibleID, "el perfil del usuario debe quedar como responsable")
	assert.Equal(t, testProfileID, *movs[0].ResponsibleID)
}

func TestCreateStock_CantidadCeroRechazada(t *testing.T) {
	e := newEngine()
	_, err := e.uc.CreateStock(context.Background(), ledger.CreateStockInput{
		CompanyID:   testCompanyID,
		WarehouseID: testWarehouse,
		ProductID:   testProduct,
		Quantity:    decimal.Zero,
		Price:       dec(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateStock_CantidadNegativaRechazada(t *testing.T) {
	e := newEngine()
	_, err := e.uc.CreateStock(context.Background(), ledger.CreateStockInput{
		CompanyID:   testCompanyID,
		WarehouseID: testWarehouse,
		ProductID:   testProduct,
		Quantity:    dec(-3),
		Price:       dec(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateStock_SinPrecioRechazado(t *testing.T) {
	e := newEngine()
	_, err := e.uc.CreateStock(context.Background(), ledger.CreateStockInput{
		CompanyID:   testCompanyID,
		WarehouseID: testWarehouse,
		ProductID:   testProduct,
		Quantity:    dec(5),
		Price:       decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrMissingPrice)
}

// La bodega pertenece a otra empresa: el llamador no puede crear stock ahí.
func TestCreateStock_BodegaDeOtraEmpresa(t *testing.T) {
	e := newEngine()
	_, err := e.uc.CreateStock(context.Background(), ledger.CreateStockInput{
		CompanyID:   testCompanyID,
		WarehouseID: otherWarehouse,
		ProductID:   testProduct,
		Quantity:    dec(5),
		Price:       dec(100),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement: recálculo, suficiencia y validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaAumentaStock(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	updated, err := e.register(t, stock.ID, entity.MovementTypeIN, 5, ptr(450))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec(15)), "10 + 5 = 15")
}

func TestRegisterMovement_SalidaDescuentaStock(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	updated, err := e.register(t, stock.ID, entity.MovementTypeOUT, 3, nil)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec(7)), "10 - 3 = 7")
}

// Salida mayor al disponible: se rechaza sin dejar rastro. Ni el movimiento
// ni la cantidad deben cambiar.
func TestRegisterMovement_SalidaInsuficienteRechazada(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 5, 500)

	_, err := e.register(t, stock.ID, entity.MovementTypeOUT, 6, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	movs := e.movementsOf(t, stock.ID)
	assert.Len(t, movs, 1, "solo debe quedar el génesis; la salida no se persiste")
	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(dec(5)), "la cantidad no debe cambiar")
}

// La salida por el total exacto sí pasa y deja el stock en cero.
func TestRegisterMovement_SalidaPorElTotal(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 5, 500)

	updated, err := e.register(t, stock.ID, entity.MovementTypeOUT, 5, nil)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.IsZero())
}

func TestRegisterMovement_CantidadCeroRechazada(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 5, 500)

	_, err := e.register(t, stock.ID, entity.MovementTypeIN, 0, ptr(100))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRegisterMovement_EntradaSinPrecioRechazada(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 5, 500)

	_, err := e.register(t, stock.ID, entity.MovementTypeIN, 2, nil)
	assert.ErrorIs(t, err, domain.ErrMissingPrice)
}

func TestRegisterMovement_TipoInvalidoRechazado(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 5, 500)

	_, err := e.register(t, stock.ID, "TRANSFER", 2, ptr(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_StockInexistente(t *testing.T) {
	e := newEngine()
	_, err := e.register(t, "no-existe", entity.MovementTypeIN, 2, ptr(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El usuario sin perfil en la empresa registra el movimiento sin responsable.
func TestRegisterMovement_SinPerfilQuedaSinResponsable(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	_, err := e.uc.RegisterMovement(context.Background(), ledger.RegisterMovementInput{
		CompanyID: testCompanyID,
		UserID:    "usuario-desconocido",
		StockID:   stock.ID,
		Type:      entity.MovementTypeOUT,
		Quantity:  dec(1),
	})
	require.NoError(t, err)

	movs := e.movementsOf(t, stock.ID)
	require.Len(t, movs, 2)
	for _, m := range movs {
		if m.Type == entity.MovementTypeOUT {
			assert.Nil(t, m.ResponsibleID)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante y recálculo
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de operaciones, la cantidad es exactamente
// sum(IN) - sum(OUT) del historial.
func TestInvariante_CantidadDerivadaDelHistorial(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	_, err := e.register(t, stock.ID, entity.MovementTypeIN, 7, ptr(480))
	require.NoError(t, err)
	_, err = e.register(t, stock.ID, entity.MovementTypeOUT, 4, nil)
	require.NoError(t, err)
	_, err = e.register(t, stock.ID, entity.MovementTypeOUT, 2, nil)
	require.NoError(t, err)

	totalIn, totalOut, err := e.movRepo.SumByType(stock.ID)
	require.NoError(t, err)
	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(totalIn.Sub(totalOut)),
		"cantidad %s != sum(IN) %s - sum(OUT) %s", current.Quantity, totalIn, totalOut)
	assert.True(t, current.Quantity.Equal(dec(11)), "10 + 7 - 4 - 2 = 11")
}

// Recompute sin cambios en el historial no altera la cantidad.
func TestRecompute_Idempotente(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)
	_, err := e.register(t, stock.ID, entity.MovementTypeOUT, 3, nil)
	require.NoError(t, err)

	q1, err := e.uc.Recompute(context.Background(), stock.ID)
	require.NoError(t, err)
	q2, err := e.uc.Recompute(context.Background(), stock.ID)
	require.NoError(t, err)

	assert.True(t, q1.Equal(q2), "dos recálculos seguidos deben coincidir")
	assert.True(t, q1.Equal(dec(7)))
}

func TestRecompute_StockInexistente(t *testing.T) {
	e := newEngine()
	_, err := e.uc.Recompute(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteMovement
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar una salida devuelve su cantidad al stock vía recálculo.
func TestDeleteMovement_RecalculaTrasEliminar(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)
	_, err := e.register(t, stock.ID, entity.MovementTypeOUT, 3, nil)
	require.NoError(t, err)

	var outID string
	for _, m := range e.movementsOf(t, stock.ID) {
		if m.Type == entity.MovementTypeOUT {
			outID = m.ID
		}
	}
	require.NotEmpty(t, outID)

	require.NoError(t, e.uc.DeleteMovement(context.Background(), testCompanyID, outID))
	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(dec(10)), "al eliminar la salida vuelve a 10")
}

// El génesis también puede eliminarse; la cantidad recalculada puede quedar
// negativa y se escribe tal cual (el historial manda).
func TestDeleteMovement_GenesisDejaCantidadNegativa(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)
	_, err := e.register(t, stock.ID, entity.MovementTypeOUT, 4, nil)
	require.NoError(t, err)

	var genesisID string
	for _, m := range e.movementsOf(t, stock.ID) {
		if m.Type == entity.MovementTypeIN {
			genesisID = m.ID
		}
	}
	require.NotEmpty(t, genesisID)

	require.NoError(t, e.uc.DeleteMovement(context.Background(), testCompanyID, genesisID))
	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(dec(-4)), "0 - 4 = -4, sin recorte a cero")
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	e := newEngine()
	err := e.uc.DeleteMovement(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteStock: protección referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteStock_ConMovimientosRechazado(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	err := e.uc.DeleteStock(context.Background(), testCompanyID, stock.ID)
	assert.ErrorIs(t, err, domain.ErrStockInUse, "con el génesis presente no puede eliminarse")
}

func TestDeleteStock_SinMovimientosEliminado(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	for _, m := range e.movementsOf(t, stock.ID) {
		require.NoError(t, e.uc.DeleteMovement(context.Background(), testCompanyID, m.ID))
	}
	require.NoError(t, e.uc.DeleteStock(context.Background(), testCompanyID, stock.ID))

	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.Nil(t, current, "el stock debe haberse eliminado")
}

func TestDeleteStock_DeOtraEmpresaRechazado(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 10, 500)

	err := e.uc.DeleteStock(context.Background(), otherCompanyID, stock.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos salidas por el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas de 5 contra un stock de 8, lanzadas a la vez: exactamente una
// debe pasar. La verificación de suficiencia ocurre contra la fila bloqueada,
// así que la segunda transacción ya ve la cantidad recalculada (3) y se
// rechaza.
func TestSalidasConcurrentes_SoloUnaPasa(t *testing.T) {
	e := newEngine()
	stock := e.createStock(t, 8, 500)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.register(t, stock.ID, entity.MovementTypeOUT, 5, nil)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe pasar")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por stock insuficiente")

	current, err := e.stkRepo.GetByID(stock.ID)
	require.NoError(t, err)
	assert.True(t, current.Quantity.Equal(dec(3)), "8 - 5 = 3")
	movs := e.movementsOf(t, stock.ID)
	assert.Len(t, movs, 2, "génesis + la única salida aceptada")
}
