package etym

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Etymology is a single dictionary entry resolved for a word.
type Etymology struct {
	Definition string `json:"definition"`
	URL        string `json:"url"`
}

// Client queries the etymological dictionary of the Institute for the
// Languages of Finland (Kotus).
type Client struct {
	baseURL        string
	articleBaseURL string
	userAgent      string
	httpClient     *http.Client
}

// NewClient creates a Kotus client. The timeout applies per request.
func NewClient(baseURL, articleBaseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:        baseURL,
		articleBaseURL: articleBaseURL,
		userAgent:      userAgent,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// suggestion is one row of a qs-ajax-results response.
type suggestion struct {
	Value string `json:"value"`
}

// article is one row of a qs-results response.
type article struct {
	Headword   string      `json:"hakusana"`
	Definition string      `json:"selite"`
	EtymID     json.Number `json:"etym_id"`
}

func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("kotus returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// WordExists checks whether the dictionary has an entry for word.
func (c *Client) WordExists(ctx context.Context, word string) (bool, error) {
	params := url.Values{
		"m":     {"qs-ajax-results"},
		"query": {word},
	}
	var result struct {
		Record []suggestion `json:"record"`
	}
	if err := c.get(ctx, params, &result); err != nil {
		return false, fmt.Errorf("word lookup %q: %w", word, err)
	}
	for _, s := range result.Record {
		if s.Value == word {
			return true, nil
		}
	}
	return false, nil
}

// Search returns the etymology for word, or nil if the dictionary has no
// entry for it.
func (c *Client) Search(ctx context.Context, word string) (*Etymology, error) {
	exists, err := c.WordExists(ctx, word)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	params := url.Values{
		"m":       {"qs-results"},
		"prefix":  {word},
		"list_id": {"1"},
	}
	var result struct {
		Record []article `json:"record"`
	}
	if err := c.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("etymology search %q: %w", word, err)
	}

	for _, a := range result.Record {
		if a.Headword == word {
			return &Etymology{
				Definition: a.Definition,
				URL:        c.articleBaseURL + a.EtymID.String(),
			}, nil
		}
	}
	// The suggestion list said the word exists but the result set does
	// not carry it. Treat as missing rather than failing the run.
	return nil, nil
}
