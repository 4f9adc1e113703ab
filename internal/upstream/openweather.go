// FilePath: internal/upstream/openweather.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/config"
	"github.com/urbanclimate/airwatch/internal/models"
)

// Client fetches current weather and air quality from OpenWeather. Every
// fetch makes exactly one outbound request with the configured timeout;
// there are no retries here, the next collection cycle is the retry. Any
// transport error, non-2xx status, or undecodable body is logged and
// reported as an absent sample (nil), never as an error to the caller.
// A circuit breaker per endpoint sheds calls while the upstream is down.
type Client struct {
	httpClient       *http.Client
	apiKey           string
	weatherURL       string
	pollutionURL     string
	units            string
	weatherBreaker   *gobreaker.CircuitBreaker
	pollutionBreaker *gobreaker.CircuitBreaker
}

func NewClient(cfg config.OpenWeatherConfig) *Client {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}
	}

	return &Client{
		httpClient:       &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:           cfg.APIKey,
		weatherURL:       cfg.WeatherURL,
		pollutionURL:     cfg.PollutionURL,
		units:            cfg.Units,
		weatherBreaker:   gobreaker.NewCircuitBreaker(settings("openweather-weather")),
		pollutionBreaker: gobreaker.NewCircuitBreaker(settings("openweather-pollution")),
	}
}

type currentWeatherPayload struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
		SeaLevel  *int     `json:"sea_level"`
		GrndLevel *int     `json:"grnd_level"`
	} `json:"main"`
	Visibility *int `json:"visibility"`
	Wind       struct {
		Speed *float64 `json:"speed"`
		Deg   *int     `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Rain struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"rain"`
	Snow struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"snow"`
	Weather []struct {
		ID          *int    `json:"id"`
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

type airPollutionPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			AQI *int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   *float64 `json:"co"`
			NO   *float64 `json:"no"`
			NO2  *float64 `json:"no2"`
			O3   *float64 `json:"o3"`
			SO2  *float64 `json:"so2"`
			PM25 *float64 `json:"pm2_5"`
			PM10 *float64 `json:"pm10"`
			NH3  *float64 `json:"nh3"`
		} `json:"components"`
	} `json:"list"`
}

// FetchCurrentWeather returns the flattened current-weather sample for
// the coordinates, or nil when the upstream is unreachable or returned
// something unusable.
func (c *Client) FetchCurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherMeasurement {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", c.apiKey)
	values.Set("units", c.units)

	var payload currentWeatherPayload
	if !c.fetch(ctx, c.weatherBreaker, c.weatherURL, values, &payload) {
		return nil
	}
	return normalizeWeather(&payload)
}

// FetchAirPollution returns the flattened air-quality sample for the
// coordinates, or nil on any failure or an empty reading list.
func (c *Client) FetchAirPollution(ctx context.Context, lat, lon float64) *models.AirPollutionMeasurement {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", c.apiKey)

	var payload airPollutionPayload
	if !c.fetch(ctx, c.pollutionBreaker, c.pollutionURL, values, &payload) {
		return nil
	}
	return normalizePollution(&payload)
}

func (c *Client) fetch(ctx context.Context, cb *gobreaker.CircuitBreaker, baseURL string, values url.Values, out interface{}) bool {
	endpoint := fmt.Sprintf("%s?%s", baseURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		nuts.L.Errorf("[Upstream] Failed to build request for %s: %v", baseURL, err)
		return false
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		nuts.L.Errorf("[Upstream] Request to %s failed: %v", baseURL, err)
		return false
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		nuts.L.Errorf("[Upstream] Failed to decode response from %s: %v", baseURL, err)
		return false
	}
	return true
}

// normalizeWeather flattens the nested provider response. Absent optional
// fields stay nil; a missing dt falls back to the observation time so the
// sample still carries a valid measurement timestamp.
func normalizeWeather(payload *currentWeatherPayload) *models.WeatherMeasurement {
	now := time.Now().UTC()

	measuredAt := now
	if payload.Dt > 0 {
		measuredAt = time.Unix(payload.Dt, 0).UTC()
	}

	m := &models.WeatherMeasurement{
		MeasurementTimestamp: measuredAt,
		CollectionTimestamp:  now,
		Temperature:          payload.Main.Temp,
		FeelsLike:            payload.Main.FeelsLike,
		TempMin:              payload.Main.TempMin,
		TempMax:              payload.Main.TempMax,
		Pressure:             payload.Main.Pressure,
		Humidity:             payload.Main.Humidity,
		SeaLevel:             payload.Main.SeaLevel,
		GroundLevel:          payload.Main.GrndLevel,
		Visibility:           payload.Visibility,
		WindSpeed:            payload.Wind.Speed,
		WindDegree:           payload.Wind.Deg,
		WindGust:             payload.Wind.Gust,
		CloudsAll:            payload.Clouds.All,
		Rain1h:               payload.Rain.OneH,
		Rain3h:               payload.Rain.ThreeH,
		Snow1h:               payload.Snow.OneH,
		Snow3h:               payload.Snow.ThreeH,
	}

	if len(payload.Weather) > 0 {
		condition := payload.Weather[0]
		m.WeatherConditionID = condition.ID
		m.WeatherMain = condition.Main
		m.WeatherDescription = condition.Description
		m.WeatherIcon = condition.Icon
	}

	if payload.Sys.Sunrise > 0 {
		sunrise := time.Unix(payload.Sys.Sunrise, 0).UTC().Format("15:04:05")
		m.Sunrise = &sunrise
	}
	if payload.Sys.Sunset > 0 {
		sunset := time.Unix(payload.Sys.Sunset, 0).UTC().Format("15:04:05")
		m.Sunset = &sunset
	}

	return m
}

// normalizePollution flattens the first entry of the provider's reading
// list. An empty list yields nil, not an error.
func normalizePollution(payload *airPollutionPayload) *models.AirPollutionMeasurement {
	if len(payload.List) == 0 {
		return nil
	}

	now := time.Now().UTC()
	entry := payload.List[0]

	measuredAt := now
	if entry.Dt > 0 {
		measuredAt = time.Unix(entry.Dt, 0).UTC()
	}

	return &models.AirPollutionMeasurement{
		MeasurementTimestamp: measuredAt,
		CollectionTimestamp:  now,
		AQI:                  entry.Main.AQI,
		CO:                   entry.Components.CO,
		NO:                   entry.Components.NO,
		NO2:                  entry.Components.NO2,
		O3:                   entry.Components.O3,
		SO2:                  entry.Components.SO2,
		PM25:                 entry.Components.PM25,
		PM10:                 entry.Components.PM10,
		NH3:                  entry.Components.NH3,
	}
}
