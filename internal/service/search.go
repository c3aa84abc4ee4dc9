package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSearchURL = "https://www.googleapis.com/customsearch/v1"
	maxSearchResults = 3
	searchTimeout    = 8 * time.Second
)

// SearchClient wraps Google Custom Search. Search is strictly best-effort:
// every failure mode degrades to an empty summary so the chat flow never
// depends on the search collaborator being up.
type SearchClient struct {
	apiKey   string
	engineID string
	baseURL  string
	http     *http.Client
}

func NewSearchClient(apiKey, engineID string) *SearchClient {
	return &SearchClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultSearchURL,
		http:     &http.Client{Timeout: searchTimeout},
	}
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns up to three "{title}: {snippet}" lines for the query,
// or "" when search is unavailable or unconfigured.
func (c *SearchClient) Search(ctx context.Context, query string) string {
	if c.apiKey == "" || c.engineID == "" {
		return ""
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxSearchResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("[WARN] Build search request failed: %v", err)
		return ""
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[WARN] Search request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[WARN] Search API returned %d", resp.StatusCode)
		return ""
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[WARN] Decode search response failed: %v", err)
		return ""
	}

	lines := make([]string, 0, maxSearchResults)
	for i, item := range result.Items {
		if i >= maxSearchResults {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", item.Title, item.Snippet))
	}
	return strings.Join(lines, "\n")
}
