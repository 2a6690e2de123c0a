package dto

import "github.com/jhoicas/pyrostore/internal/domain/entity"

// AddressResponse envoltura {address: ...}.
type AddressResponse struct {
	Address entity.Address `json:"address"`
}

// AddressesResponse envoltura {addresses: ...}.
type AddressesResponse struct {
	Addresses []entity.Address `json:"addresses"`
}

// DeleteResponse confirmación de borrado.
type DeleteResponse struct {
	Success bool `json:"success"`
}
