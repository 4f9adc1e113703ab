// FilePath: internal/hub/hub.analytics.go
package hub

import (
	"context"
	"fmt"

	"github.com/urbanclimate/airwatch/internal/models"
)

// The analytics views aggregate over day- or month-sized windows, so
// identical requests within the short cache TTL return identical data.
// Each method checks the cache first and populates it after a store hit.

func (s *Service) CityStatistics(ctx context.Context, city string, days int) ([]models.CityStats, error) {
	key := fmt.Sprintf("analytics:stats:%s:%d", city, days)

	var cached []models.CityStats
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	stats, err := s.Analytics.CityStatistics(ctx, city, days)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, stats)
	return stats, nil
}

func (s *Service) Correlation(ctx context.Context, city string, days int) ([]models.CorrelationRow, error) {
	key := fmt.Sprintf("analytics:correlation:%s:%d", city, days)

	var cached []models.CorrelationRow
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.Analytics.Correlation(ctx, city, days)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, rows)
	return rows, nil
}

func (s *Service) HighPollutionAlerts(ctx context.Context, aqiThreshold int, pm25Threshold float64, days int) ([]models.PollutionAlert, error) {
	key := fmt.Sprintf("analytics:alerts:%d:%g:%d", aqiThreshold, pm25Threshold, days)

	var cached []models.PollutionAlert
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	alerts, err := s.Analytics.HighPollutionAlerts(ctx, aqiThreshold, pm25Threshold, days)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, alerts)
	return alerts, nil
}

func (s *Service) PredictionData(ctx context.Context, city string, hoursBack int) ([]models.PredictionRow, error) {
	key := fmt.Sprintf("analytics:prediction:%s:%d", city, hoursBack)

	var cached []models.PredictionRow
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.Analytics.PredictionData(ctx, city, hoursBack)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, rows)
	return rows, nil
}

func (s *Service) PredictionDataFlexible(ctx context.Context, city string, hoursBack int) ([]models.FlexiblePredictionRow, error) {
	key := fmt.Sprintf("analytics:prediction-flexible:%s:%d", city, hoursBack)

	var cached []models.FlexiblePredictionRow
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.Analytics.PredictionDataFlexible(ctx, city, hoursBack)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, rows)
	return rows, nil
}
