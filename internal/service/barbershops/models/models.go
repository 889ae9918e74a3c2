package models

import (
	"github.com/m04kA/barbershop-booking/internal/domain"
)

// ListRequest параметры поиска барбершопов
type ListRequest struct {
	Search      string
	ServiceName string
}

// ServiceResponse услуга барбершопа
type ServiceResponse struct {
	ID           string `json:"id"`
	BarbershopID string `json:"barbershopId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"imageUrl"`
}

// BarbershopResponse барбершоп в списке
type BarbershopResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Phones      []string `json:"phones"`
}

// BarbershopDetailsResponse карточка барбершопа вместе с услугами
type BarbershopDetailsResponse struct {
	BarbershopResponse
	Services []ServiceResponse `json:"services"`
}

// FromDomainBarbershop конвертирует domain модель в DTO
func FromDomainBarbershop(b *domain.Barbershop) BarbershopResponse {
	phones := b.Phones
	if phones == nil {
		phones = []string{}
	}

	return BarbershopResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Address:     b.Address,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Phones:      phones,
	}
}

// FromDomainBarbershopDetails конвертирует барбершоп с услугами
func FromDomainBarbershopDetails(b *domain.Barbershop) *BarbershopDetailsResponse {
	resp := &BarbershopDetailsResponse{
		BarbershopResponse: FromDomainBarbershop(b),
		Services:           make([]ServiceResponse, 0, len(b.Services)),
	}

	for _, s := range b.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:           s.ID.String(),
			BarbershopID: s.BarbershopID.String(),
			Name:         s.Name,
			Description:  s.Description,
			Price:        s.Price,
			ImageURL:     s.ImageURL,
		})
	}

	return resp
}

// FromDomainBarbershopList конвертирует список барбершопов
func FromDomainBarbershopList(barbershops []*domain.Barbershop) []BarbershopResponse {
	resp := make([]BarbershopResponse, 0, len(barbershops))
	for _, b := range barbershops {
		resp = append(resp, FromDomainBarbershop(b))
	}
	return resp
}
