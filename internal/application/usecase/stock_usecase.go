package usecase

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase consultas y edición de campos no derivados del stock.
// La cantidad no se toca aquí: solo el motor de stock (ledger) la escribe.
type StockUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.MovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
	}
}

// List lista stock de la empresa, con filtros opcionales por bodega y producto.
func (uc *StockUseCase) List(companyID, warehouseID, productID string, limit, offset int) (*dto.StockListResponse, error) {
	filter := repository.StockFilter{
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		ProductID:   productID,
	}
	list, err := uc.stockRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetDetail obtiene un stock con su historial de movimientos (más recientes primero).
func (uc *StockUseCase) GetDetail(companyID, id string) (*dto.StockDetailResponse, error) {
	stock, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	movements, err := uc.movementRepo.ListByStock(id, 100, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.StockDetailResponse{
		StockResponse: *toStockResponse(stock),
		Movements:     items,
	}, nil
}

// UpdatePrice edita el precio unitario del stock sin efectos sobre el
// historial de movimientos.
func (uc *StockUseCase) UpdatePrice(companyID, id string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	stock, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	if err := uc.stockRepo.UpdatePrice(id, in.Price); err != nil {
		return nil, err
	}
	stock.Price = in.Price
	stock.UpdatedAt = time.Now()
	return toStockResponse(stock), nil
}

// getOwned obtiene el stock verificando que su bodega pertenezca a la empresa.
func (uc *StockUseCase) getOwned(companyID, id string) (*entity.Stock, error) {
	stock, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	warehouse, err := uc.warehouseRepo.GetByID(stock.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return stock, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a su DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		StockID:       m.StockID,
		ResponsibleID: m.ResponsibleID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		CreatedAt:     m.CreatedAt,
	}
}
