package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos, unidades de medida y
// marcas.
type ProductUseCase struct {
	repo      repository.ProductRepository
	unitRepo  repository.UnitMeasureRepository
	brandRepo repository.BrandRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	unitRepo repository.UnitMeasureRepository,
	brandRepo repository.BrandRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, unitRepo: unitRepo, brandRepo: brandRepo}
}

// Create crea un producto validando que la unidad de medida exista y, si
// viene marca, que exista en el catálogo.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	unit, err := uc.unitRepo.GetByID(in.UnitMeasureID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBrand(in.BrandID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		UnitMeasureID: in.UnitMeasureID,
		BrandID:       in.BrandID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, validando la empresa del llamador.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.UnitMeasureID != nil {
		unit, err := uc.unitRepo.GetByID(*in.UnitMeasureID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, domain.ErrNotFound
		}
		product.UnitMeasureID = *in.UnitMeasureID
	}
	if in.BrandID != nil {
		if err := uc.checkBrand(in.BrandID); err != nil {
			return nil, err
		}
		product.BrandID = in.BrandID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Falla con ErrConflict si está estocado
// (protección referencial en BD).
func (uc *ProductUseCase) Delete(companyID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// CreateUnitMeasure crea una unidad de medida (catálogo global).
func (uc *ProductUseCase) CreateUnitMeasure(in dto.CreateUnitMeasureRequest) (*dto.UnitMeasureResponse, error) {
	now := time.Now()
	unit := &entity.UnitMeasure{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Symbol:    in.Symbol,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitMeasureResponse(unit), nil
}

// ListUnitMeasures lista las unidades de medida.
func (uc *ProductUseCase) ListUnitMeasures() ([]dto.UnitMeasureResponse, error) {
	list, err := uc.unitRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitMeasureResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitMeasureResponse(u))
	}
	return items, nil
}

// CreateBrand crea una marca (catálogo global, nombre único).
// ErrDuplicate si el nombre ya existe.
func (uc *ProductUseCase) CreateBrand(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	now := time.Now()
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetBrand obtiene una marca por ID.
func (uc *ProductUseCase) GetBrand(id string) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(brand), nil
}

// UpdateBrand renombra una marca. ErrDuplicate si el nuevo nombre ya existe.
func (uc *ProductUseCase) UpdateBrand(id string, in dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	brand.Name = in.Name
	brand.UpdatedAt = time.Now()
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// ListBrands lista las marcas.
func (uc *ProductUseCase) ListBrands() ([]dto.BrandResponse, error) {
	list, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return items, nil
}

// DeleteBrand elimina una marca. Falla con ErrConflict mientras algún
// producto la referencie (protección referencial en BD).
func (uc *ProductUseCase) DeleteBrand(id string) error {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	return uc.brandRepo.Delete(id)
}

// checkBrand valida que la marca referenciada exista. nil pasa sin marca.
func (uc *ProductUseCase) checkBrand(brandID *string) error {
	if brandID == nil {
		return nil
	}
	brand, err := uc.brandRepo.GetByID(*brandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		Name:          p.Name,
		UnitMeasureID: p.UnitMeasureID,
		BrandID:       p.BrandID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	if b == nil {
		return nil
	}
	return &dto.BrandResponse{ID: b.ID, Name: b.Name}
}

func toUnitMeasureResponse(u *entity.UnitMeasure) *dto.UnitMeasureResponse {
	if u == nil {
		return nil
	}
	return &dto.UnitMeasureResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol}
}
