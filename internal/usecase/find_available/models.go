package find_available

import (
	"time"
)

// Request модель запроса поиска доступных юнитов
type Request struct {
	CompanyID  int64     // ID компании
	PickupAt   time.Time // Начало окна аренды
	ReturnAt   time.Time // Конец окна аренды
	LocationID *int64    // Фильтр по точке выдачи (опционально)
}

// Response модель ответа с доступными юнитами, сгруппированными по спецификациям
type Response struct {
	CompanyID int64     // ID компании
	PickupAt  time.Time // Начало окна аренды
	ReturnAt  time.Time // Конец окна аренды
	Groups    []Group   // Группы доступных юнитов
}

// Group группа доступных юнитов одной спецификации
type Group struct {
	SpecificationID int64       // ID спецификации
	Make            string      // Марка
	Model           string      // Модель
	ModelYear       int         // Модельный год
	Category        *string     // Категория (nil, если не задана)
	AvailableCount  int         // Количество доступных юнитов
	PriceRange      *PriceRange // nil, если ни у одного юнита группы не настроена ставка
}

// PriceRange диапазон эффективных суточных ставок доступных юнитов группы.
// Считается только по юнитам с настроенной ставкой.
type PriceRange struct {
	Min float64 // Минимальная ставка
	Avg float64 // Средняя ставка, округленная до цента
	Max float64 // Максимальная ставка
}
