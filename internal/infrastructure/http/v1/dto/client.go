package dto

import (
	"tallerpro/internal/domain/catalogs/client"
)

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Code           string              `json:"code"`
	Name           string              `json:"name" binding:"required"`
	DocumentType   client.DocumentType `json:"documentType" binding:"required"`
	DocumentNumber string              `json:"documentNumber" binding:"required"`
	Phone          *string             `json:"phone"`
	Email          *string             `json:"email"`
	Address        *string             `json:"address"`
	City           *string             `json:"city"`
	Comment        *string             `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.NewClient(r.Code, r.Name, r.DocumentType, r.DocumentNumber)
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.City = r.City
	c.Comment = r.Comment
	return c
}

// UpdateClientRequest is the request body for updating a client.
type UpdateClientRequest struct {
	Code           string              `json:"code"`
	Name           string              `json:"name" binding:"required"`
	DocumentType   client.DocumentType `json:"documentType" binding:"required"`
	DocumentNumber string              `json:"documentNumber" binding:"required"`
	Phone          *string             `json:"phone"`
	Email          *string             `json:"email"`
	Address        *string             `json:"address"`
	City           *string             `json:"city"`
	Comment        *string             `json:"comment"`
	Version        int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.Code = r.Code
	c.Name = r.Name
	c.DocumentType = r.DocumentType
	c.DocumentNumber = r.DocumentNumber
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.City = r.City
	c.Comment = r.Comment
	c.Version = r.Version
}
