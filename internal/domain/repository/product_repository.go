package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

// UnitMeasureRepository define el puerto de persistencia para unidades de medida.
type UnitMeasureRepository interface {
	Create(unit *entity.UnitMeasure) error
	GetByID(id string) (*entity.UnitMeasure, error)
	List() ([]*entity.UnitMeasure, error)
}

// BrandRepository define el puerto de persistencia para marcas (catálogo
// global, nombre único).
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	List() ([]*entity.Brand, error)
	Delete(id string) error
}
