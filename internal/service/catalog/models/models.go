package models

import (
	"time"

	"carservice/internal/domain"
)

// Response модели

// StationResponse ответ с данными станции
type StationResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	OperatingHours *string `json:"operatingHours,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StationListResponse ответ со списком станций
type StationListResponse struct {
	Stations []StationResponse `json:"stations"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	Description              *string `json:"description,omitempty"`
	BasePrice                float64 `json:"basePrice"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StationServiceResponse услуга с ценой на конкретной станции
type StationServiceResponse struct {
	ServiceResponse
	Price float64 `json:"price"` // Цена на этой станции, не базовая
}

// StationServiceListResponse ответ со списком услуг станции
type StationServiceListResponse struct {
	StationID int64                    `json:"stationId"`
	Services  []StationServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainStation конвертирует domain модель в DTO
func FromDomainStation(s *domain.Station) *StationResponse {
	if s == nil {
		return nil
	}

	return &StationResponse{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		OperatingHours: s.OperatingHours,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainStationList конвертирует список станций в DTO
func FromDomainStationList(stations []*domain.Station) *StationListResponse {
	resp := &StationListResponse{
		Stations: make([]StationResponse, 0, len(stations)),
	}
	for _, s := range stations {
		if sr := FromDomainStation(s); sr != nil {
			resp.Stations = append(resp.Stations, *sr)
		}
	}
	return resp
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:                       s.ID,
		Name:                     s.Name,
		Description:              s.Description,
		BasePrice:                s.BasePrice,
		EstimatedDurationMinutes: s.EstimatedDurationMinutes,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if sr := FromDomainService(s); sr != nil {
			resp.Services = append(resp.Services, *sr)
		}
	}
	return resp
}

// FromDomainStationServices конвертирует услуги станции с ценами в DTO
func FromDomainStationServices(stationID int64, services []*domain.StationService) *StationServiceListResponse {
	resp := &StationServiceListResponse{
		StationID: stationID,
		Services:  make([]StationServiceResponse, 0, len(services)),
	}
	for _, ss := range services {
		if ss == nil {
			continue
		}
		sr := FromDomainService(&ss.Service)
		resp.Services = append(resp.Services, StationServiceResponse{
			ServiceResponse: *sr,
			Price:           ss.Price,
		})
	}
	return resp
}
