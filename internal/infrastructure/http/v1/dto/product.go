package dto

import (
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product
// (service or part). Products may be grouped into folders.
type CreateProductRequest struct {
	Code      string         `json:"code"`
	Name      string         `json:"name" binding:"required"`
	Kind      product.Kind   `json:"kind" binding:"required"`
	SalePrice types.Money    `json:"salePrice"`
	CostPrice types.Money    `json:"costPrice"`
	TaxRate   types.Percent  `json:"taxRate"`
	Barcode   *string        `json:"barcode"`
	MinStock  types.Quantity `json:"minStock"`
	ParentID  *string        `json:"parentId"`
	IsFolder  bool           `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Kind, r.SalePrice)
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.Barcode = r.Barcode
	p.MinStock = r.MinStock
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code      string         `json:"code"`
	Name      string         `json:"name" binding:"required"`
	Kind      product.Kind   `json:"kind" binding:"required"`
	SalePrice types.Money    `json:"salePrice"`
	CostPrice types.Money    `json:"costPrice"`
	TaxRate   types.Percent  `json:"taxRate"`
	Barcode   *string        `json:"barcode"`
	MinStock  types.Quantity `json:"minStock"`
	ParentID  *string        `json:"parentId"`
	IsFolder  bool           `json:"isFolder"`
	Version   int            `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Kind = r.Kind
	p.SalePrice = r.SalePrice
	p.CostPrice = r.CostPrice
	p.TaxRate = r.TaxRate
	p.Barcode = r.Barcode
	p.MinStock = r.MinStock
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Version = r.Version
}
