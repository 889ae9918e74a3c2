package domain

import "github.com/google/uuid"

// Barbershop барбершоп из каталога
type Barbershop struct {
	ID          uuid.UUID
	Name        string
	Address     string
	Description string
	ImageURL    string
	Phones      []string

	// Services заполняется только при получении барбершопа по ID
	Services []*Service
}

// Service услуга барбершопа
// Цена хранится в целых единицах валюты
type Service struct {
	ID           uuid.UUID
	BarbershopID uuid.UUID
	Name         string
	Description  string
	Price        int64
	ImageURL     string
}

// BarbershopFilter фильтр для списка барбершопов
// Пустой фильтр возвращает все барбершопы
type BarbershopFilter struct {
	Search      string // подстрока в названии барбершопа
	ServiceName string // подстрока в названии услуги
}

// IsEmpty returns true if no filter criteria are set
func (f BarbershopFilter) IsEmpty() bool {
	return f.Search == "" && f.ServiceName == ""
}
