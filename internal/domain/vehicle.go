package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// VehicleDetails детали автомобиля клиента, хранятся одним JSONB-блобом
// при бронировании. Планирование их не интерпретирует
type VehicleDetails struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"licensePlate"`
	Color        *string `json:"color,omitempty"`
}

// Value реализует driver.Valuer для записи в JSONB колонку
func (v VehicleDetails) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan реализует sql.Scanner для чтения из JSONB колонки
func (v *VehicleDetails) Scan(src interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	case nil:
		*v = VehicleDetails{}
		return nil
	default:
		return errors.New("domain: unsupported source type for VehicleDetails")
	}
}
