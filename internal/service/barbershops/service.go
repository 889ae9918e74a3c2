package barbershops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/barbershop-booking/internal/domain"
	barbershopRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/barbershop"
	"github.com/m04kA/barbershop-booking/internal/service/barbershops/models"
)

// Service сервис каталога барбершопов
type Service struct {
	repo   BarbershopRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo BarbershopRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает барбершопы, при необходимости фильтруя по названию или по названию услуги
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]models.BarbershopResponse, error) {
	filter := domain.BarbershopFilter{
		Search:      strings.TrimSpace(req.Search),
		ServiceName: strings.TrimSpace(req.ServiceName),
	}
	s.logger.Info("List: fetching barbershops, search=%q, service=%q", filter.Search, filter.ServiceName)

	if utf8.RuneCountInString(filter.Search) > domain.MaxSearchLength ||
		utf8.RuneCountInString(filter.ServiceName) > domain.MaxSearchLength {
		return nil, fmt.Errorf("%w: search must be at most %d characters", ErrInvalidInput, domain.MaxSearchLength)
	}

	barbershops, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d barbershops", len(barbershops))
	return models.FromDomainBarbershopList(barbershops), nil
}

// GetByID возвращает барбершоп вместе с его услугами
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BarbershopDetailsResponse, error) {
	s.logger.Info("GetByID: fetching barbershop id=%s", id)

	barbershop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barbershopRepo.ErrBarbershopNotFound) {
			s.logger.Warn("GetByID: barbershop id=%s not found", id)
			return nil, ErrBarbershopNotFound
		}
		s.logger.Error("GetByID: repository error for barbershop id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	services, err := s.repo.ListServices(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list services of barbershop id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list services: %v", ErrInternal, err)
	}
	barbershop.Services = services

	return models.FromDomainBarbershopDetails(barbershop), nil
}
