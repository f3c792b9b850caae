// Package opusapi queries the OPUS catalog API for corpora, languages
// and download locations of TMX archives.
package opusapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public OPUS API endpoint.
const DefaultBaseURL = "https://opus.nlpl.eu/opusapi/"

// ErrNotFound is returned by ResolveDownloadURL when the catalog has no
// TMX archive for the requested corpus and language pair.
var ErrNotFound = errors.New("opusapi: no matching archive")

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Corpora returns the names of all corpora known to the catalog.
func (c *Client) Corpora(ctx context.Context) ([]string, error) {
	var rsp struct {
		Corpora []string `json:"corpora"`
	}
	if err := c.get(ctx, url.Values{"corpora": {"True"}}, &rsp); err != nil {
		return nil, err
	}
	return rsp.Corpora, nil
}

// Languages returns the language codes available for corpus. With a
// non-empty source it returns the codes corpus pairs with that source.
func (c *Client) Languages(ctx context.Context, corpus, source string) ([]string, error) {
	params := url.Values{
		"languages": {"True"},
		"corpus":    {corpus},
	}
	if source != "" {
		params.Set("source", source)
	}

	var rsp struct {
		Languages []string `json:"languages"`
	}
	if err := c.get(ctx, params, &rsp); err != nil {
		return nil, err
	}
	return rsp.Languages, nil
}

// ResolveDownloadURL returns the download location of the latest TMX
// archive for the corpus and language pair.
func (c *Client) ResolveDownloadURL(ctx context.Context, corpus, source, target string) (string, error) {
	params := url.Values{
		"corpus":        {corpus},
		"source":        {source},
		"target":        {target},
		"preprocessing": {"tmx"},
		"version":       {"latest"},
	}

	// There is only one TMX version per pair; alternatives exist only
	// for the raw XML preprocessing.
	var rsp struct {
		Corpora []struct {
			URL  string `json:"url"`
			Size int64  `json:"size"`
		} `json:"corpora"`
	}
	if err := c.get(ctx, params, &rsp); err != nil {
		return "", err
	}
	if len(rsp.Corpora) == 0 || rsp.Corpora[0].URL == "" {
		return "", fmt.Errorf("%w for %s %s-%s", ErrNotFound, corpus, source, target)
	}
	return rsp.Corpora[0].URL, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("opusapi: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("opusapi: fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("opusapi: fetch %s: unexpected status %d", reqURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("opusapi: decode response from %s: %w", reqURL, err)
	}
	return nil
}
