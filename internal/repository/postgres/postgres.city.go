// FilePath: internal/repository/postgres/postgres.city.go
package postgres

import (
	"context"
	"database/sql"

	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/models"
)

type CityRepo struct {
	PostgresBaseRepo
}

func NewCityRepository(db database.DB) (*CityRepo, error) {
	repo := &CityRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CityRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS cities (
			city_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			country VARCHAR(100) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			UNIQUE(name, country)
		)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize cities schema", err)
	}
	return nil
}

// Seed inserts the registry cities, skipping any (name, country) pair
// that already exists. Re-seeding on every start is safe.
func (r *CityRepo) Seed(ctx context.Context, cities []models.City) error {
	query := `
		INSERT INTO cities (name, country, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, country) DO NOTHING`

	for _, city := range cities {
		_, err := r.db.GetDB().ExecContext(ctx, query, city.Name, city.Country, city.Latitude, city.Longitude)
		if err != nil {
			return errors.NewDatabaseError("failed to seed city "+city.Name, err)
		}
	}

	nuts.L.Infof("[CityRepo] Seeded %d registry cities", len(cities))
	return nil
}

func (r *CityRepo) ResolveID(ctx context.Context, name, country string) (int, error) {
	var id int
	query := `SELECT city_id FROM cities WHERE name = $1 AND country = $2`

	err := r.db.GetDB().GetContext(ctx, &id, query, name, country)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.NewNotFoundError("city not found", err)
		}
		return 0, errors.NewDatabaseError("failed to resolve city id", err)
	}
	return id, nil
}

func (r *CityRepo) List(ctx context.Context) ([]models.City, error) {
	cities := []models.City{}
	query := `SELECT city_id, name, country, latitude, longitude FROM cities ORDER BY name`

	err := r.db.GetDB().SelectContext(ctx, &cities, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list cities", err)
	}
	return cities, nil
}
