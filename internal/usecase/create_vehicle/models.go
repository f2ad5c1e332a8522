package create_vehicle

import (
	"time"
)

// Request модель запроса на добавление юнита в автопарк
type Request struct {
	CompanyID    int64  // ID компании-владельца
	LicensePlate string // Госномер (уникален в рамках компании)

	// Блок спецификации: либо все три поля, либо ни одного.
	// Без спецификации создается непривязанный юнит.
	Make      string  // Марка
	Model     string  // Модель
	ModelYear int     // Модельный год
	Category  *string // Категория спецификации (опционально)

	VIN          *string  // VIN (опционально, уникален в рамках компании)
	LocationID   *int64   // Точка выдачи (опционально)
	RateOverride *float64 // Персональная суточная ставка (опционально)
}

// HasSpecification возвращает true, если запрос задает спецификацию
func (r *Request) HasSpecification() bool {
	return r.Make != "" || r.Model != "" || r.ModelYear != 0
}

// Response модель ответа с созданным юнитом
type Response struct {
	ID              int64    // ID созданного юнита
	CompanyID       int64    // ID компании
	SpecificationID *int64   // ID спецификации (nil для непривязанного юнита)
	CatalogEntryID  *int64   // ID записи каталога (nil для непривязанного юнита)
	LicensePlate    string   // Госномер
	VIN             *string  // VIN
	LocationID      *int64   // Точка выдачи
	Status          string   // Статус юнита
	RateOverride    *float64 // Персональная суточная ставка

	SpecificationCreated bool // Создана ли новая спецификация этим запросом

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
