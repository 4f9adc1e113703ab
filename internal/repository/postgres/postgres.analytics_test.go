// FilePath: internal/repository/postgres/postgres.analytics_test.go
package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDB struct {
	db *sqlx.DB
}

func (m *mockDB) Close() error                 { return m.db.Close() }
func (m *mockDB) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }
func (m *mockDB) GetDB() *sqlx.DB              { return m.db }

// newMockRepo matches expected queries as regular expressions, so each
// test pins the clause that carries the semantics under test. A query
// missing the expected clause fails the lookup.
func newMockRepo(t *testing.T) (*AnalyticsRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &mockDB{db: sqlx.NewDb(db, "sqlmock")}
	return NewAnalyticsRepository(wrapped), mock
}

func TestCorrelationPairsOnExactSecond(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// The pairing is an equality on second-truncated timestamps; rows
	// that drift by even one second never appear, so the query must not
	// carry any tolerance window.
	mock.ExpectQuery(`date_trunc\('second', a\.measurement_timestamp\) = date_trunc\('second', w\.measurement_timestamp\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "timestamp", "temperature", "humidity", "pressure",
			"wind_speed", "weather_description", "aqi", "pm2_5", "pm10", "no2", "o3", "co",
		}).AddRow("London", ts, 12.3, 81, 1013, 4.6, "light rain", 3, 9.4, 12.8, 14.2, 68.7, 230.3))

	rows, err := repo.Correlation(context.Background(), "", 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "London", rows[0].City)
	require.NotNil(t, rows[0].AQI)
	assert.Equal(t, 3, *rows[0].AQI)
	require.NotNil(t, rows[0].PM25)
	assert.InDelta(t, 9.4, *rows[0].PM25, 0.001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHighPollutionAlertsThresholds(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Breaching either threshold is enough; both thresholds travel as
	// parameters and the filter appears in the WHERE clause, so a city
	// at AQI 150 comes back while AQI 50 / PM2.5 10 rows never leave
	// the store.
	mock.ExpectQuery(`WHERE w\.measurement_timestamp >= \$3\s+AND \(a\.aqi > \$1 OR a\.pm2_5 > \$2\)\s+ORDER BY a\.aqi DESC, a\.pm2_5 DESC`).
		WithArgs(100, 35.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "timestamp", "temperature", "humidity", "pressure",
			"wind_speed", "weather_description", "aqi", "pm2_5", "pm10", "no2",
			"is_high_pollution_event",
		}).AddRow("Testville", ts, 21.0, 40, 1008, 2.1, "haze", 150, 80.0, 95.0, 33.0, 1))

	alerts, err := repo.HighPollutionAlerts(context.Background(), 100, 35.0, 30)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Testville", alerts[0].City)
	require.NotNil(t, alerts[0].AQI)
	assert.Equal(t, 150, *alerts[0].AQI)
	assert.Equal(t, 1, alerts[0].IsHighPollutionEvent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityStatisticsExcludesCitiesWithoutWeather(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Inner join on windowed weather rows: a city with no weather data
	// in the window contributes nothing, not a zeroed row.
	mock.ExpectQuery(`JOIN weather_measurements w ON w\.city_id = c\.city_id\s+WHERE w\.measurement_timestamp >= \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "avg_temperature", "max_temperature", "min_temperature", "avg_aqi", "measurements_count",
		}).AddRow("London", 12.5, 18.0, 7.0, 2.4, 42))

	stats, err := repo.CityStatistics(context.Background(), "", 7)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "London", stats[0].City)
	require.NotNil(t, stats[0].AvgAQI)
	assert.InDelta(t, 2.4, *stats[0].AvgAQI, 0.001)
	assert.Equal(t, 42, stats[0].MeasurementsCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCityStatisticsCityFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`AND c\.name = \$2\s+GROUP BY c\.city_id, c\.name`).
		WithArgs(sqlmock.AnyArg(), "Madrid").
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "avg_temperature", "max_temperature", "min_temperature", "avg_aqi", "measurements_count",
		}))

	stats, err := repo.CityStatistics(context.Background(), "Madrid", 7)
	require.NoError(t, err)
	assert.Empty(t, stats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionDataDropsRowsWithoutTarget(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// The strict variant keeps only rows whose 12-positions-ahead AQI
	// exists; earlier lags may still be null near the window edge.
	mock.ExpectQuery(`WHERE series\.future_aqi_12h IS NOT NULL`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "timestamp", "temperature", "humidity", "pressure", "wind_speed",
			"aqi", "pm2_5", "no2",
			"prev_aqi_1h", "prev_aqi_3h", "prev_aqi_6h", "future_aqi_12h", "future_aqi_24h",
		}).AddRow("Berlin", ts, 15.0, 60, 1010, 3.3, 2, 8.1, 11.0, 2, nil, nil, 3, nil))

	rows, err := repo.PredictionData(context.Background(), "", 168)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].FutureAQI12h)
	assert.Equal(t, 3, *rows[0].FutureAQI12h)
	assert.Nil(t, rows[0].PrevAQI3h)
	assert.Nil(t, rows[0].FutureAQI24h)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionDataFlexibleKeepsNullsAndBoundsScan(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// The flexible variant never drops rows and the approximate target
	// is the earliest paired sample within the next 24 hours.
	mock.ExpectQuery(`w2\.measurement_timestamp <= ts\.measurement_timestamp \+ INTERVAL '24 hours'`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"city", "timestamp", "temperature", "humidity", "pressure", "wind_speed",
			"aqi", "pm2_5", "no2",
			"prev_aqi_1", "prev_aqi_2", "future_aqi_next", "future_aqi_2nd", "future_aqi_24h_approx",
		}).AddRow("Prague", ts, 9.0, 70, 1016, 1.2, 1, 4.0, 6.5, nil, nil, nil, nil, nil))

	rows, err := repo.PredictionDataFlexible(context.Background(), "", 168)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Prague", rows[0].City)
	assert.Nil(t, rows[0].PrevAQI1)
	assert.Nil(t, rows[0].FutureAQI24hApprox)

	assert.NoError(t, mock.ExpectationsWereMet())
}
