package get_display_rate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/CRP-FleetService/internal/service/fleet/models"
)

// ToServiceRequest собирает запрос витринной ставки из query параметров.
// Группа задается либо vehicleIds (список ID через запятую), либо
// селектором спецификаций (category, make, model, modelYear).
func ToServiceRequest(companyID int64, query url.Values) (*models.DisplayRateRequest, error) {
	req := &models.DisplayRateRequest{CompanyID: companyID}

	if raw := query.Get("vehicleIds"); raw != "" {
		ids, err := parseVehicleIDs(raw)
		if err != nil {
			return nil, err
		}
		req.VehicleIDs = ids
	}

	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if makeName := query.Get("make"); makeName != "" {
		req.Make = &makeName
	}
	if model := query.Get("model"); model != "" {
		req.Model = &model
	}

	if rawYear := query.Get("modelYear"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			return nil, err
		}
		req.ModelYear = &year
	}

	return req, nil
}

// parseVehicleIDs парсит список ID юнитов из строки вида "1,2,3"
func parseVehicleIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
