package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// Arbeitnow fetches offers from the Arbeitnow board (EU listings, no API
// key). The API is a single paginated feed filtered client-side by keywords.
type Arbeitnow struct {
	client *http.Client
}

// NewArbeitnow constructs the adapter with a shared HTTP client.
func NewArbeitnow() *Arbeitnow {
	return &Arbeitnow{client: &http.Client{Timeout: httpTimeout}}
}

func (a *Arbeitnow) Name() string { return "arbeitnow" }

// arbeitnowResponse mirrors the top-level Arbeitnow JSON response.
type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
	Meta struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
	} `json:"meta"`
}

// arbeitnowJob mirrors a single Arbeitnow listing.
type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

// Fetch pages through the feed, keeping listings whose title or description
// matches any keyword and whose location matches (when one was requested),
// until maxResults is reached or the feed ends.
func (a *Arbeitnow) Fetch(ctx context.Context, keywords, location string, maxResults int) ([]RawPosting, error) {
	var results []RawPosting

	terms := strings.Fields(strings.ToLower(keywords))
	loc := strings.ToLower(strings.TrimSpace(location))

	for page := 1; len(results) < maxResults; page++ {
		resp, err := a.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, j := range resp.Data {
			if !arbeitnowMatches(j, terms, loc) {
				continue
			}
			results = append(results, rawFromArbeitnow(j))
			if len(results) == maxResults {
				break
			}
		}

		if resp.Meta.LastPage > 0 && page >= resp.Meta.LastPage {
			break
		}
	}

	return results, nil
}

func (a *Arbeitnow) fetchPage(ctx context.Context, page int) (*arbeitnowResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arbeitnowBaseURL+"?"+params.Encode(), nil)
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
		err := fmt.Errorf("arbeitnow returned %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, Transient(err)
		}
		return nil, err
	}

	var apiResp arbeitnowResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &apiResp, nil
}

// arbeitnowMatches applies keyword and location filtering the board itself
// does not offer. An empty term list matches everything.
func arbeitnowMatches(j arbeitnowJob, terms []string, loc string) bool {
	if loc != "" && !j.Remote && !strings.Contains(strings.ToLower(j.Location), loc) {
		return false
	}
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(j.Title + " " + j.Description)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func rawFromArbeitnow(j arbeitnowJob) RawPosting {
	remote := "onsite"
	if j.Remote {
		remote = "remote"
	}
	sourceURL := j.URL
	if sourceURL == "" {
		sourceURL = fmt.Sprintf("arbeitnow:%s", j.Slug)
	}
	return RawPosting{
		Title:       j.Title,
		Company:     j.CompanyName,
		Location:    j.Location,
		Description: j.Description,
		JobTypeText: strings.Join(j.JobTypes, " "),
		RemoteText:  remote,
		Tags:        j.Tags,
		URL:         sourceURL,
		PublishedAt: time.Unix(j.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}
