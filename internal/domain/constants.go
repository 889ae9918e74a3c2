package domain

// Параметры сетки слотов по умолчанию
const (
	DefaultTimeZone        = "America/Sao_Paulo"
	DefaultOpeningTime     = "08:00"
	DefaultClosingTime     = "18:00"
	DefaultSlotStepMinutes = 60
)

// Business validation constants
const (
	MinSlotStepMinutes = 5
	MaxSlotStepMinutes = 240
	MaxUserIDLength    = 255
	MaxSearchLength    = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
