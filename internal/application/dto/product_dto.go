package dto

import "time"

// CreateProductRequest entrada para crear un producto. La marca es opcional.
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	UnitMeasureID string  `json:"unit_measure_id" validate:"required"`
	BrandID       *string `json:"brand_id" validate:"omitempty,uuid4"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	UnitMeasureID *string `json:"unit_measure_id" validate:"omitempty"`
	BrandID       *string `json:"brand_id" validate:"omitempty,uuid4"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	UnitMeasureID string    `json:"unit_measure_id"`
	BrandID       *string   `json:"brand_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateUnitMeasureRequest entrada para crear una unidad de medida.
type CreateUnitMeasureRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Symbol string `json:"symbol" validate:"required,min=1,max=3"`
}

// UnitMeasureResponse salida de una unidad de medida.
type UnitMeasureResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CreateBrandRequest entrada para crear una marca.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateBrandRequest entrada para renombrar una marca.
type UpdateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
