package companyservice

// Company модель компании из CompanyService
type Company struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	LocationIDs []int64 `json:"location_ids"` // ID точек выдачи компании
	IsActive    bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от CompanyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
