package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/bookings/models"
	createBooking "github.com/m04kA/barbershop-booking/internal/usecase/create_booking"
	"github.com/m04kA/barbershop-booking/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doRequest(h *Handler, body, callerID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
	if callerID != "" {
		r = r.WithContext(middleware.WithUserID(r.Context(), callerID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	serviceID := uuid.New()
	bookingID := uuid.New()
	date := time.Date(2024, 7, 26, 13, 0, 0, 0, time.UTC)

	uc := &stubUseCase{resp: &createBooking.Response{
		ID:        bookingID,
		ServiceID: serviceID,
		UserID:    "user-a",
		Date:      date,
		Status:    domain.StatusConfirmed,
		CreatedAt: date.Add(-time.Hour),
		Service:   &domain.Service{ID: serviceID, Name: "Corte", Price: 35},
	}}
	h := NewHandler(uc, logger.NewNop())

	body := `{"barbershopServiceId":"` + serviceID.String() + `","userId":"user-a","date":"2024-07-26T13:00:00.000Z"}`
	w := doRequest(h, body, "user-a")

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, serviceID, uc.got.ServiceID)
	assert.Equal(t, "user-a", uc.got.CallerID)
	assert.True(t, uc.got.Date.Equal(date))

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bookingID.String(), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.BarbershopService)
	assert.Equal(t, "Corte", resp.BarbershopService.Name)
}

func TestHandle_BadRequests(t *testing.T) {
	serviceID := uuid.New().String()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{`, wantMsg: msgInvalidRequestBody},
		{name: "bad service id", body: `{"barbershopServiceId":"42","userId":"user-a","date":"2024-07-26T13:00:00Z"}`, wantMsg: msgInvalidServiceID},
		{name: "bad date", body: `{"barbershopServiceId":"` + serviceID + `","userId":"user-a","date":"26/07/2024"}`, wantMsg: msgInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			w := doRequest(NewHandler(uc, logger.NewNop()), tt.body, "user-a")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, w.Body.String())
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "slot taken", err: createBooking.ErrSlotTaken, wantStatus: http.StatusBadRequest, wantMsg: "Horário já está ocupado"},
		{name: "past time", err: createBooking.ErrPastTime, wantStatus: http.StatusBadRequest, wantMsg: msgPastTime},
		{name: "off grid", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidTimeSlot},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidInput},
		{name: "forbidden", err: createBooking.ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "service not found", err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound, wantMsg: msgServiceNotFound},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "Erro interno do servidor"},
	}

	body := `{"barbershopServiceId":"` + uuid.New().String() + `","userId":"user-a","date":"2024-07-26T13:00:00Z"}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), body, "user-a")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, w.Body.String())
		})
	}
}

func TestHandle_RequiresAuthenticatedUser(t *testing.T) {
	uc := &stubUseCase{}
	w := doRequest(NewHandler(uc, logger.NewNop()), `{}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, uc.got)
}
