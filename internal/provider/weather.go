package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/matchiq/predictions-api/internal/models"
)

type weatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Weather fetches current conditions for the venue's locality.
func (c *Client) Weather(ctx context.Context, location string) (*models.Weather, error) {
	if c.cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("weather: api key not configured")
	}
	if location == "" {
		return nil, fmt.Errorf("weather: no venue locality")
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.cfg.WeatherAPIKey)
	params.Set("units", "metric")

	var resp weatherResponse
	if err := c.getJSON(ctx, "weather", c.cfg.WeatherBaseURL+"/weather", params, nil, &resp); err != nil {
		return nil, err
	}

	w := &models.Weather{
		TemperatureC:    resp.Main.Temp,
		Humidity:        resp.Main.Humidity,
		WindSpeedMS:     resp.Wind.Speed,
		PrecipitationMM: resp.Rain.OneHour,
	}
	if len(resp.Weather) > 0 {
		w.Condition = resp.Weather[0].Main
	}
	return w, nil
}
