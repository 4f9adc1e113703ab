// FilePath: internal/models/models.city.go
package models

// City is a monitored location. Cities are seeded once at bootstrap and
// never modified afterwards; every measurement references one by id.
type City struct {
	CityID    int     `json:"city_id" db:"city_id"`
	Name      string  `json:"name" db:"name"`
	Country   string  `json:"country" db:"country"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
