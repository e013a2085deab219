package liveinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	newsAPIBaseURL     = "https://newsapi.org/v2/top-headlines"

	weatherCacheTTL = 10 * time.Minute
	newsCacheTTL    = 15 * time.Minute
)

// Client fetches live context (weather, news, current time) used to enrich
// chat prompts. Responses are cached briefly so repeated questions about the
// same city or topic do not hammer the upstream APIs.
type Client struct {
	openWeatherKey string
	newsAPIKey     string
	httpClient     *http.Client
	cache          *gocache.Cache
}

func NewClient(openWeatherKey, newsAPIKey string) *Client {
	return &Client{
		openWeatherKey: openWeatherKey,
		newsAPIKey:     newsAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: gocache.New(weatherCacheTTL, 30*time.Minute),
	}
}

// --- Weather ---

type WeatherReport struct {
	City        string
	Description string
	TempCelsius float64
	FeelsLike   float64
	Humidity    int
}

func (w WeatherReport) String() string {
	return fmt.Sprintf("Current weather in %s: %s, %.1f°C (feels like %.1f°C), humidity %d%%.",
		w.City, w.Description, w.TempCelsius, w.FeelsLike, w.Humidity)
}

type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

func (c *Client) Weather(ctx context.Context, city string) (*WeatherReport, error) {
	if c.openWeatherKey == "" {
		return nil, fmt.Errorf("weather lookup disabled: OPENWEATHER_API_KEY not set")
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("weather lookup requires a city")
	}

	cacheKey := "weather:" + strings.ToLower(city)
	if cached, found := c.cache.Get(cacheKey); found {
		report := cached.(WeatherReport)
		return &report, nil
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.openWeatherKey)
	params.Set("units", "metric")

	body, err := c.get(ctx, openWeatherBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("openweather request failed: %w", err)
	}

	var resp openWeatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal openweather response: %w", err)
	}

	report := WeatherReport{
		City:        resp.Name,
		TempCelsius: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
	}
	if len(resp.Weather) > 0 {
		report.Description = resp.Weather[0].Description
	}

	c.cache.Set(cacheKey, report, weatherCacheTTL)
	return &report, nil
}

// --- News ---

type Headline struct {
	Title  string
	Source string
}

type NewsDigest struct {
	Topic     string
	Headlines []Headline
}

func (n NewsDigest) String() string {
	var sb strings.Builder
	if n.Topic != "" {
		fmt.Fprintf(&sb, "Top headlines about %q:\n", n.Topic)
	} else {
		sb.WriteString("Top headlines:\n")
	}
	for i, h := range n.Headlines {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, h.Title, h.Source)
	}
	return sb.String()
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *Client) News(ctx context.Context, topic string) (*NewsDigest, error) {
	if c.newsAPIKey == "" {
		return nil, fmt.Errorf("news lookup disabled: NEWSAPI_KEY not set")
	}
	topic = strings.TrimSpace(topic)

	cacheKey := "news:" + strings.ToLower(topic)
	if cached, found := c.cache.Get(cacheKey); found {
		digest := cached.(NewsDigest)
		return &digest, nil
	}

	params := url.Values{}
	params.Set("apiKey", c.newsAPIKey)
	params.Set("pageSize", "5")
	if topic != "" {
		params.Set("q", topic)
	} else {
		params.Set("country", "us")
	}

	body, err := c.get(ctx, newsAPIBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal newsapi response: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q", resp.Status)
	}

	digest := NewsDigest{Topic: topic}
	for _, article := range resp.Articles {
		digest.Headlines = append(digest.Headlines, Headline{
			Title:  article.Title,
			Source: article.Source.Name,
		})
	}

	c.cache.Set(cacheKey, digest, newsCacheTTL)
	return &digest, nil
}

// --- Time ---

// Now returns the current time formatted for the given IANA location name.
// An empty or unknown location falls back to UTC. No network call involved.
func (c *Client) Now(location string) string {
	loc := time.UTC
	name := "UTC"
	if trimmed := strings.TrimSpace(location); trimmed != "" {
		if parsed, err := time.LoadLocation(guessLocation(trimmed)); err == nil {
			loc = parsed
			name = trimmed
		}
	}
	now := time.Now().In(loc)
	return fmt.Sprintf("It is currently %s in %s.", now.Format("Monday, 2 January 2006, 15:04"), name)
}

// guessLocation maps a few common city names onto IANA zone names so that
// "time in Tokyo" works without the user typing "Asia/Tokyo".
func guessLocation(city string) string {
	known := map[string]string{
		"london":      "Europe/London",
		"paris":       "Europe/Paris",
		"berlin":      "Europe/Berlin",
		"new york":    "America/New_York",
		"los angeles": "America/Los_Angeles",
		"chicago":     "America/Chicago",
		"tokyo":       "Asia/Tokyo",
		"singapore":   "Asia/Singapore",
		"jakarta":     "Asia/Jakarta",
		"sydney":      "Australia/Sydney",
		"dubai":       "Asia/Dubai",
	}
	if zone, ok := known[strings.ToLower(city)]; ok {
		return zone
	}
	return city
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
