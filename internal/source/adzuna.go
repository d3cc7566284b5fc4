package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	adzunaBaseURL  = "https://api.adzuna.com/v1/api/jobs"
	adzunaPageSize = 50
	httpTimeout    = 15 * time.Second
)

// Adzuna fetches job offers from the Adzuna public API.
type Adzuna struct {
	AppID   string
	AppKey  string
	Country string // "fr", "gb", "us", …
	client  *http.Client
}

// NewAdzuna constructs an Adzuna adapter with a shared HTTP client.
func NewAdzuna(appID, appKey, country string) *Adzuna {
	return &Adzuna{
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

func (a *Adzuna) Name() string { return "adzuna" }

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	ContractTime string         `json:"contract_time"`
	ContractType string         `json:"contract_type"`
	Category     adzunaCategory `json:"category"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

type adzunaCategory struct {
	Tag string `json:"tag"`
}

// Fetch retrieves up to maxResults offers for the given keywords and
// location, iterating through pages until the board runs dry or the cap is
// reached. Missing credentials are a permanent (non-retryable) error.
func (a *Adzuna) Fetch(ctx context.Context, keywords, location string, maxResults int) ([]RawPosting, error) {
	if a.AppID == "" || a.AppKey == "" {
		return nil, fmt.Errorf("adzuna credentials not configured")
	}

	var results []RawPosting

	for page := 1; len(results) < maxResults; page++ {
		batch, err := a.fetchPage(ctx, keywords, location, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break // No more results
		}
		results = append(results, batch...)
		if len(batch) < adzunaPageSize {
			break // Last page
		}
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func (a *Adzuna) fetchPage(ctx context.Context, keywords, location string, page int) ([]RawPosting, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", adzunaBaseURL, a.Country, page)

	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.AppKey)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("what", keywords)
	params.Set("where", location)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	reqURL := endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, Transient(fmt.Errorf("http GET: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, Transient(err)
		}
		return nil, err
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	results := make([]RawPosting, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		sourceURL := r.RedirectURL
		if sourceURL == "" {
			sourceURL = fmt.Sprintf("adzuna:%s", r.ID)
		}
		results = append(results, RawPosting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			SalaryText:  adzunaSalaryText(r.SalaryMin, r.SalaryMax),
			JobTypeText: r.ContractTime + " " + r.ContractType,
			Tags:        adzunaTags(r.Category.Tag),
			URL:         sourceURL,
			PublishedAt: r.Created,
		})
	}

	return results, nil
}

// adzunaSalaryText renders the board's numeric salary bounds back into the
// free-form envelope field so all adapters share one salary path.
func adzunaSalaryText(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("%d - %d", int(min), int(max))
	case min > 0:
		return strconv.Itoa(int(min))
	case max > 0:
		return strconv.Itoa(int(max))
	}
	return ""
}

func adzunaTags(categoryTag string) []string {
	if categoryTag == "" {
		return nil
	}
	return []string{categoryTag}
}
