// FilePath: internal/repository/postgres/postgres.pollution.go
package postgres

import (
	"context"
	"fmt"

	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/models"
	"github.com/urbanclimate/airwatch/internal/repository"
)

type PollutionRepo struct {
	PostgresBaseRepo
}

func NewPollutionRepository(db database.DB) (*PollutionRepo, error) {
	repo := &PollutionRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *PollutionRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS air_pollution_measurements (
			air_pollution_id BIGSERIAL PRIMARY KEY,
			city_id INTEGER NOT NULL REFERENCES cities(city_id),
			measurement_timestamp TIMESTAMPTZ NOT NULL,
			collection_timestamp TIMESTAMPTZ NOT NULL,
			aqi INTEGER,
			co DOUBLE PRECISION,
			no DOUBLE PRECISION,
			no2 DOUBLE PRECISION,
			o3 DOUBLE PRECISION,
			so2 DOUBLE PRECISION,
			pm2_5 DOUBLE PRECISION,
			pm10 DOUBLE PRECISION,
			nh3 DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pollution_city_timestamp
			ON air_pollution_measurements(city_id, measurement_timestamp)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize air pollution schema", err)
		}
	}
	return nil
}

func (r *PollutionRepo) Insert(ctx context.Context, m *models.AirPollutionMeasurement) error {
	query := `
		INSERT INTO air_pollution_measurements (
			city_id, measurement_timestamp, collection_timestamp,
			aqi, co, no, no2, o3, so2, pm2_5, pm10, nh3
		) VALUES (
			:city_id, :measurement_timestamp, :collection_timestamp,
			:aqi, :co, :no, :no2, :o3, :so2, :pm2_5, :pm10, :nh3
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, m)
	if err != nil {
		return errors.NewDatabaseError("failed to insert air pollution measurement", err)
	}
	return nil
}

func (r *PollutionRepo) List(ctx context.Context, q repository.SampleQuery) ([]models.PollutionRow, error) {
	query := `
		SELECT
			c.name AS city, c.country, a.measurement_timestamp,
			a.aqi, a.co, a.no2, a.o3, a.pm2_5, a.pm10
		FROM air_pollution_measurements a
		JOIN cities c ON a.city_id = c.city_id
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
		query += fmt.Sprintf(" AND a.measurement_timestamp >= $%d", len(args))
	}
	if q.End != nil {
		args = append(args, *q.End)
		query += fmt.Sprintf(" AND a.measurement_timestamp <= $%d", len(args))
	}
	query += " ORDER BY a.measurement_timestamp DESC"

	rows := []models.PollutionRow{}
	err := r.db.GetDB().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list air pollution measurements", err)
	}
	return rows, nil
}
