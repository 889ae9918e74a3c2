package models

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// Response модели

// ServiceResponse услуга, вложенная в бронирование
type ServiceResponse struct {
	ID           string `json:"id"`
	BarbershopID string `json:"barbershopId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"imageUrl"`
}

// BookingResponse ответ с данными бронирования
// Status вычисляется в момент формирования ответа
type BookingResponse struct {
	ID                  string           `json:"id"`
	BarbershopServiceID string           `json:"barbershopServiceId"`
	UserID              string           `json:"userId"`
	Date                time.Time        `json:"date"` // UTC, RFC 3339
	Status              string           `json:"status"`
	CreatedAt           time.Time        `json:"createdAt"`
	BarbershopService   *ServiceResponse `json:"barbershopService,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:           s.ID.String(),
		BarbershopID: s.BarbershopID.String(),
		Name:         s.Name,
		Description:  s.Description,
		Price:        s.Price,
		ImageURL:     s.ImageURL,
	}
}

// FromDomainBooking конвертирует domain модель в DTO, статус считается относительно now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID.String(),
		BarbershopServiceID: b.ServiceID.String(),
		UserID:              b.UserID,
		Date:                b.Date.UTC(),
		Status:              string(b.StatusAt(now)),
		CreatedAt:           b.CreatedAt.UTC(),
		BarbershopService:   FromDomainService(b.Service),
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
