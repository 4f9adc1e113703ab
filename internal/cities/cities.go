// FilePath: internal/cities/cities.go
package cities

import "github.com/urbanclimate/airwatch/internal/models"

// Default returns the fixed registry of monitored cities. The list seeds
// the cities table at bootstrap and drives the fan-out of every
// collection pass. (name, country) must stay unique.
func Default() []models.City {
	return []models.City{
		{Name: "London", Country: "GB", Latitude: 51.5074, Longitude: -0.1278},
		{Name: "Paris", Country: "FR", Latitude: 48.8566, Longitude: 2.3522},
		{Name: "Berlin", Country: "DE", Latitude: 52.5200, Longitude: 13.4050},
		{Name: "Madrid", Country: "ES", Latitude: 40.4168, Longitude: -3.7038},
		{Name: "Rome", Country: "IT", Latitude: 41.9028, Longitude: 12.4964},
		{Name: "Warsaw", Country: "PL", Latitude: 52.2297, Longitude: 21.0122},
		{Name: "Krakow", Country: "PL", Latitude: 50.0647, Longitude: 19.9450},
		{Name: "Amsterdam", Country: "NL", Latitude: 52.3676, Longitude: 4.9041},
		{Name: "Vienna", Country: "AT", Latitude: 48.2082, Longitude: 16.3738},
		{Name: "Prague", Country: "CZ", Latitude: 50.0755, Longitude: 14.4378},
	}
}
