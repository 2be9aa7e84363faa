package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase es el motor de stock: registra y elimina movimientos de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// La cantidad de cada Stock nunca se actualiza con deltas: se recalcula
// completa desde el historial de movimientos en cada escritura, así el log
// siempre es autoritativo y no puede haber deriva entre log y saldo.
type UseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	movementRepo  repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	profileRepo   repository.ProfileRepository
}

// NewUseCase construye el motor de stock.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		profileRepo:   profileRepo,
	}
}

// CreateStockInput entrada para crear un stock con su movimiento génesis.
type CreateStockInput struct {
	CompanyID   string
	UserID      string
	WarehouseID string
	ProductID   string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
}

// RegisterMovementInput entrada para registrar un movimiento IN/OUT.
// UnitPrice es obligatorio y positivo para entradas (regla de negocio:
// toda entrada lleva costo).
type RegisterMovementInput struct {
	CompanyID string
	UserID    string
	StockID   string
	Type      string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// CreateStock crea un registro de stock y sintetiza su movimiento génesis
// (una entrada por la cantidad inicial) en la misma transacción, de modo que
// el invariante cantidad == sum(IN) - sum(OUT) se cumple desde el primer
// instante y ningún lector concurrente observa las dos escrituras fuera de
// orden. El recálculo sobre el único movimiento reproduce la cantidad
// inicial, por lo que no hay un segundo ciclo que la altere.
func (uc *UseCase) CreateStock(ctx context.Context, in CreateStockInput) (*entity.Stock, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMissingPrice
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	responsible := uc.resolveResponsible(in.UserID, in.CompanyID)
	now := time.Now()
	price := in.Price
	stock := &entity.Stock{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	genesis := &entity.Movement{
		ID:            uuid.New().String(),
		StockID:       stock.ID,
		ResponsibleID: responsible,
		Type:          entity.MovementTypeIN,
		Quantity:      in.Quantity,
		UnitPrice:     &price,
		CreatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		if err := movRepo.Create(genesis); err != nil {
			return err
		}
		qty, err := recompute(movRepo, stockRepo, stock.ID)
		if err != nil {
			return err
		}
		stock.Quantity = qty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// RegisterMovement valida y persiste un movimiento y recalcula el stock, todo
// dentro de una única transacción. La verificación de suficiencia de una
// salida se hace contra la fila bloqueada (SELECT FOR UPDATE): dos salidas
// concurrentes sobre el mismo stock se serializan y solo una puede pasar.
func (uc *UseCase) RegisterMovement(ctx context.Context, in RegisterMovementInput) (*entity.Stock, error) {
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Type == entity.MovementTypeIN && (in.UnitPrice == nil || !in.UnitPrice.GreaterThan(decimal.Zero)) {
		return nil, domain.ErrMissingPrice
	}

	stock, err := uc.stockRepo.GetByID(in.StockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkCompany(stock, in.CompanyID); err != nil {
		return nil, err
	}

	responsible := uc.resolveResponsible(in.UserID, in.CompanyID)
	now := time.Now()
	movement := &entity.Movement{
		ID:            uuid.New().String(),
		StockID:       in.StockID,
		ResponsibleID: responsible,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		CreatedAt:     now,
	}

	var updated *entity.Stock
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		// Bloquea la fila del stock; el chequeo de suficiencia y el recálculo
		// quedan dentro del mismo alcance bloqueado que la escritura.
		locked, err := stockRepo.GetForUpdate(in.StockID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if in.Type == entity.MovementTypeOUT && in.Quantity.GreaterThan(locked.Quantity) {
			return domain.ErrInsufficientStock
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		qty, err := recompute(movRepo, stockRepo, in.StockID)
		if err != nil {
			return err
		}
		locked.Quantity = qty
		locked.UpdatedAt = now
		updated = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMovement elimina un movimiento y recalcula el stock que lo contenía.
// Sin protección: cualquier movimiento puede eliminarse, incluido el génesis,
// lo que puede llevar la cantidad a cero o negativo (el log manda; no se
// recorta el resultado).
func (uc *UseCase) DeleteMovement(ctx context.Context, companyID, movementID string) error {
	movement, err := uc.movementRepo.GetByID(movementID)
	if err != nil {
		return err
	}
	if movement == nil {
		return domain.ErrNotFound
	}
	stock, err := uc.stockRepo.GetByID(movement.StockID)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	if err := uc.checkCompany(stock, companyID); err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		locked, err := stockRepo.GetForUpdate(movement.StockID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := movRepo.Delete(movementID); err != nil {
			return err
		}
		_, err = recompute(movRepo, stockRepo, movement.StockID)
		return err
	})
}

// DeleteStock elimina un registro de stock. Falla con ErrStockInUse mientras
// exista algún movimiento que lo referencie (protección referencial).
func (uc *UseCase) DeleteStock(ctx context.Context, companyID, stockID string) error {
	stock, err := uc.stockRepo.GetByID(stockID)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	if err := uc.checkCompany(stock, companyID); err != nil {
		return err
	}

	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		count, err := movRepo.CountByStock(stockID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrStockInUse
		}
		return stockRepo.Delete(stockID)
	})
}

// Recompute recalcula la cantidad de un stock desde su historial y la
// escribe, en una transacción propia. Idempotente: sin cambios en los
// movimientos, dos llamadas seguidas producen la misma cantidad.
func (uc *UseCase) Recompute(ctx context.Context, stockID string) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		locked, err := stockRepo.GetForUpdate(stockID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		qty, err = recompute(movRepo, stockRepo, stockID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return qty, nil
}

// recompute escanea todos los movimientos del stock, calcula
// sum(IN) - sum(OUT) y escribe el resultado. Escaneo completo y sobrescritura,
// no delta incremental. Puede resultar negativo.
func recompute(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	stockID string,
) (decimal.Decimal, error) {
	totalIn, totalOut, err := movRepo.SumByType(stockID)
	if err != nil {
		return decimal.Zero, err
	}
	quantity := totalIn.Sub(totalOut)
	if err := stockRepo.UpdateQuantity(stockID, quantity); err != nil {
		return decimal.Zero, err
	}
	return quantity, nil
}

// checkCompany verifica que el stock pertenezca a la empresa del llamador
// (vía la bodega dueña).
func (uc *UseCase) checkCompany(stock *entity.Stock, companyID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(stock.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// resolveResponsible resuelve el perfil del usuario en la empresa dueña del
// stock. nil si el usuario no tiene perfil ahí; el movimiento se guarda sin
// responsable.
func (uc *UseCase) resolveResponsible(userID, companyID string) *string {
	if userID == "" {
		return nil
	}
	profile, err := uc.profileRepo.GetByUserAndCompany(userID, companyID)
	if err != nil || profile == nil {
		return nil
	}
	id := profile.ID
	return &id
}
