package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"
)

const DefaultURL = "https://us1.locationiq.com/v1/reverse"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNetwork            = errors.New("geocoder network error")
	ErrNoResult           = errors.New("geocoder returned no result")
)

// reverseResponse - ответ reverse-эндпоинта в формате json с addressdetails=1
type reverseResponse struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
}

// Client - адаптер reverse-геокодинга LocationIQ/Nominatim
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает клиента геокодера
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ResolvePlace превращает координаты в название места. Один запрос, без повторов и кеша.
func (c *Client) ResolvePlace(ctx context.Context, lat, lon float64) (string, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return "", err
	}
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: api key is not configured", ErrNetwork)
	}

	log := c.logger.WithFields(logrus.Fields{
		"service": "geocoder",
		"method":  "ResolvePlace",
		"lat":     lat,
		"lon":     lon,
	})

	resp, err := c.reverse(ctx, lat, lon)
	if err != nil {
		log.WithError(err).Warn("Reverse geocode request failed")
		return "", err
	}

	place, field, err := SelectPlace(resp.Address, resp.DisplayName)
	if err != nil {
		log.WithError(err).Warn("No place found in reverse geocode response")
		return "", err
	}

	log.WithField("place", place).WithField("field", field).Debug("Place resolved")
	return place, nil
}

func (c *Client) reverse(ctx context.Context, lat, lon float64) (*reverseResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	var data reverseResponse
	decodeErr := json.Unmarshal(body, &data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := data.Error
		if msg == "" {
			msg = data.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrNetwork, decodeErr)
	}
	if data.DisplayName == "" && len(data.Address) == 0 {
		return nil, ErrNoResult
	}
	return &data, nil
}

func validateCoordinates(lat, lon float64) error {
	if lat == 0 && lon == 0 {
		return fmt.Errorf("%w: zero coordinate pair", ErrInvalidCoordinates)
	}
	if !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return fmt.Errorf("%w: lat=%v lon=%v out of range", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}
