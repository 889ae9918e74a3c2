package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/barbershop-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string   `json:"date"`     // YYYY-MM-DD
	TimeZone  string   `json:"timeZone"` // IANA пояс, в котором заданы date и slots
	ServiceID string   `json:"serviceId"`
	Slots     []string `json:"slots"` // ["08:00", "09:00", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:      resp.Day.String(),
		TimeZone:  resp.Day.Location().String(),
		ServiceID: resp.ServiceID.String(),
		Slots:     slots,
	}
}
