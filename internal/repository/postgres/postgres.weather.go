// FilePath: internal/repository/postgres/postgres.weather.go
package postgres

import (
	"context"
	"fmt"

	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

type WeatherRepo struct {
	PostgresBaseRepo
}

func NewWeatherRepository(db database.DB) (*WeatherRepo, error) {
	repo := &WeatherRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *WeatherRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS weather_measurements (
			weather_id BIGSERIAL PRIMARY KEY,
			city_id INTEGER NOT NULL REFERENCES cities(city_id),
			measurement_timestamp TIMESTAMPTZ NOT NULL,
			collection_timestamp TIMESTAMPTZ NOT NULL,
			temperature DOUBLE PRECISION,
			feels_like DOUBLE PRECISION,
			temp_min DOUBLE PRECISION,
			temp_max DOUBLE PRECISION,
			pressure INTEGER,
			humidity INTEGER,
			sea_level INTEGER,
			ground_level INTEGER,
			visibility INTEGER,
			wind_speed DOUBLE PRECISION,
			wind_degree INTEGER,
			wind_gust DOUBLE PRECISION,
			clouds_all INTEGER,
			rain_1h DOUBLE PRECISION,
			rain_3h DOUBLE PRECISION,
			snow_1h DOUBLE PRECISION,
			snow_3h DOUBLE PRECISION,
			weather_condition_id INTEGER,
			weather_main VARCHAR(50),
			weather_description VARCHAR(100),
			weather_icon VARCHAR(10),
			sunrise VARCHAR(8),
			sunset VARCHAR(8)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weather_city_timestamp
			ON weather_measurements(city_id, measurement_timestamp)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize weather schema", err)
		}
	}
	return nil
}

// Insert writes one weather sample. Single-statement autocommit; the row
// lands in full or not at all.
func (r *WeatherRepo) Insert(ctx context.Context, m *models.WeatherMeasurement) error {
	query := `
		INSERT INTO weather_measurements (
			city_id, measurement_timestamp, collection_timestamp,
			temperature, feels_like, temp_min, temp_max, pressure,
			humidity, sea_level, ground_level, visibility, wind_speed,
			wind_degree, wind_gust, clouds_all, rain_1h, rain_3h,
			snow_1h, snow_3h, weather_condition_id, weather_main,
			weather_description, weather_icon, sunrise, sunset
		) VALUES (
			:city_id, :measurement_timestamp, :collection_timestamp,
			:temperature, :feels_like, :temp_min, :temp_max, :pressure,
			:humidity, :sea_level, :ground_level, :visibility, :wind_speed,
			:wind_degree, :wind_gust, :clouds_all, :rain_1h, :rain_3h,
			:snow_1h, :snow_3h, :weather_condition_id, :weather_main,
			:weather_description, :weather_icon, :sunrise, :sunset
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, m)
	if err != nil {
		return errors.NewDatabaseError("failed to insert weather measurement", err)
	}
	return nil
}

// List returns weather samples joined with city identity. Filters compose
// conjunctively; there is no implicit limit.
func (r *WeatherRepo) List(ctx context.Context, q repository.SampleQuery) ([]models.WeatherRow, error) {
	query := `
		SELECT
			c.name AS city, c.country, w.measurement_timestamp,
			w.temperature, w.feels_like, w.humidity,
			w.pressure, w.wind_speed, w.weather_description
		FROM weather_measurements w
		JOIN cities c ON w.city_id = c.city_id
		WHERE 1=1`
	args := []interface{}{}

	if q.City != "" {
		args = append(args, q.City)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	if q.Country != "" {
		args = append(args, q.Country)
		query += fmt.Sprintf(" AND c.country = $%d", len(args))
	}
	if q.Start != nil {
		args = append(args, *q.Start)
		query += fmt.Sprintf(" AND w.measurement_timestamp >= $%d", len(args))
	}
	if q.End != nil {
		args = append(args, *q.End)
		query += fmt.Sprintf(" AND w.measurement_timestamp <= $%d", len(args))
	}
	query += " ORDER BY w.measurement_timestamp DESC"

	rows := []models.WeatherRow{}
	err := r.db.GetDB().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list weather measurements", err)
	}
	return rows, nil
}
