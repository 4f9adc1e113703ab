// FilePath: internal/repository/postgres/postgres.analytics.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/urbanclimate/airwatch/internal/database"
	"github.com/urbanclimate/airwatch/internal/errors"
	"github.com/urbanclimate/airwatch/internal/models"
)

// AnalyticsRepo serves the windowed and joined read-only views. Weather
// and pollution rows pair up on equal city and equal second-truncated
// measurement timestamp; there is no tolerance window, so samples that
// drift apart are silently unpaired (the flexible prediction view is the
// sanctioned fuzzy path).
type AnalyticsRepo struct {
	PostgresBaseRepo
}

func NewAnalyticsRepository(db database.DB) *AnalyticsRepo {
	return &AnalyticsRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
}

const correlationJoin = `
	FROM weather_measurements w
	JOIN cities c ON w.city_id = c.city_id
	JOIN air_pollution_measurements a ON a.city_id = w.city_id
		AND date_trunc('second', a.measurement_timestamp) = date_trunc('second', w.measurement_timestamp)`

// CityStatistics aggregates per city over the trailing window. The inner
// join on windowed weather rows excludes cities without any weather data
// in the window.
func (r *AnalyticsRepo) CityStatistics(ctx context.Context, city string, days int) ([]models.CityStats, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	query := `
		SELECT
			c.name AS city,
			AVG(w.temperature) AS avg_temperature,
			MAX(w.temperature) AS max_temperature,
			MIN(w.temperature) AS min_temperature,
			(
				SELECT AVG(a.aqi)::float8
				FROM air_pollution_measurements a
				WHERE a.city_id = c.city_id AND a.measurement_timestamp >= $1
			) AS avg_aqi,
			COUNT(w.weather_id) AS measurements_count
		FROM cities c
		JOIN weather_measurements w ON w.city_id = c.city_id
		WHERE w.measurement_timestamp >= $1`
	args := []interface{}{start}

	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	query += " GROUP BY c.city_id, c.name ORDER BY c.name"

	stats := []models.CityStats{}
	err := r.db.GetDB().SelectContext(ctx, &stats, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to compute city statistics", err)
	}
	return stats, nil
}

// Correlation returns the merged weather/pollution view, newest first.
func (r *AnalyticsRepo) Correlation(ctx context.Context, city string, days int) ([]models.CorrelationRow, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	query := `
		SELECT
			c.name AS city,
			w.measurement_timestamp AS timestamp,
			w.temperature, w.humidity, w.pressure, w.wind_speed, w.weather_description,
			a.aqi, a.pm2_5, a.pm10, a.no2, a.o3, a.co` + correlationJoin + `
		WHERE w.measurement_timestamp >= $1`
	args := []interface{}{start}

	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	query += " ORDER BY w.measurement_timestamp DESC"

	rows := []models.CorrelationRow{}
	err := r.db.GetDB().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query correlation view", err)
	}
	return rows, nil
}

// HighPollutionAlerts returns merged rows breaching either threshold,
// worst first.
func (r *AnalyticsRepo) HighPollutionAlerts(ctx context.Context, aqiThreshold int, pm25Threshold float64, days int) ([]models.PollutionAlert, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	query := `
		SELECT
			c.name AS city,
			w.measurement_timestamp AS timestamp,
			w.temperature, w.humidity, w.pressure, w.wind_speed, w.weather_description,
			a.aqi, a.pm2_5, a.pm10, a.no2,
			CASE
				WHEN a.aqi > $1 OR a.pm2_5 > $2 THEN 1
				ELSE 0
			END AS is_high_pollution_event` + correlationJoin + `
		WHERE w.measurement_timestamp >= $3
			AND (a.aqi > $1 OR a.pm2_5 > $2)
		ORDER BY a.aqi DESC, a.pm2_5 DESC`

	alerts := []models.PollutionAlert{}
	err := r.db.GetDB().SelectContext(ctx, &alerts, query, aqiThreshold, pm25Threshold, start)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query high pollution alerts", err)
	}
	return alerts, nil
}

// PredictionData is the strict lag/lead feature view: fixed offsets per
// city partition, rows without a 12-positions-ahead AQI dropped.
func (r *AnalyticsRepo) PredictionData(ctx context.Context, city string, hoursBack int) ([]models.PredictionRow, error) {
	start := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)

	query := `
		SELECT * FROM (
			SELECT
				c.name AS city,
				w.measurement_timestamp AS timestamp,
				w.temperature, w.humidity, w.pressure, w.wind_speed,
				a.aqi, a.pm2_5, a.no2,
				LAG(a.aqi, 1) OVER city_series AS prev_aqi_1h,
				LAG(a.aqi, 3) OVER city_series AS prev_aqi_3h,
				LAG(a.aqi, 6) OVER city_series AS prev_aqi_6h,
				LEAD(a.aqi, 12) OVER city_series AS future_aqi_12h,
				LEAD(a.aqi, 24) OVER city_series AS future_aqi_24h` + correlationJoin + `
			WHERE w.measurement_timestamp >= $1`
	args := []interface{}{start}

	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" AND c.name = $%d", len(args))
	}
	query += `
			WINDOW city_series AS (PARTITION BY c.name ORDER BY w.measurement_timestamp)
		) series
		WHERE series.future_aqi_12h IS NOT NULL
		ORDER BY series.city, series.timestamp`

	rows := []models.PredictionRow{}
	err := r.db.GetDB().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query prediction data", err)
	}
	return rows, nil
}

// PredictionDataFlexible keeps rows with missing features as nulls and
// adds a bounded forward scan: the AQI of the earliest paired sample
// within the next 24 hours for the same city.
func (r *AnalyticsRepo) PredictionDataFlexible(ctx context.Context, city string, hoursBack int) ([]models.FlexiblePredictionRow, error) {
	start := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)

	query := `
		WITH time_series AS (
			SELECT
				c.city_id,
				c.name AS city,
				w.measurement_timestamp,
				w.temperature, w.humidity, w.pressure, w.wind_speed,
				a.aqi, a.pm2_5, a.no2` + correlationJoin + `
			WHERE w.measurement_timestamp >= $1
		)
		SELECT
			ts.city,
			ts.measurement_timestamp AS timestamp,
			ts.temperature, ts.humidity, ts.pressure, ts.wind_speed,
			ts.aqi, ts.pm2_5, ts.no2,
			LAG(ts.aqi, 1) OVER city_series AS prev_aqi_1,
			LAG(ts.aqi, 2) OVER city_series AS prev_aqi_2,
			LEAD(ts.aqi, 1) OVER city_series AS future_aqi_next,
			LEAD(ts.aqi, 2) OVER city_series AS future_aqi_2nd,
			(
				SELECT a2.aqi
				FROM weather_measurements w2
				JOIN air_pollution_measurements a2 ON a2.city_id = w2.city_id
					AND date_trunc('second', a2.measurement_timestamp) = date_trunc('second', w2.measurement_timestamp)
				WHERE w2.city_id = ts.city_id
					AND w2.measurement_timestamp > ts.measurement_timestamp
					AND w2.measurement_timestamp <= ts.measurement_timestamp + INTERVAL '24 hours'
				ORDER BY w2.measurement_timestamp
				LIMIT 1
			) AS future_aqi_24h_approx
		FROM time_series ts`
	args := []interface{}{start}

	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" WHERE ts.city = $%d", len(args))
	}
	query += `
		WINDOW city_series AS (PARTITION BY ts.city ORDER BY ts.measurement_timestamp)
		ORDER BY ts.city, ts.measurement_timestamp`

	rows := []models.FlexiblePredictionRow{}
	err := r.db.GetDB().SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query flexible prediction data", err)
	}
	return rows, nil
}
