// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches external bibliographic metadata from CrossRef
// and merges trusted records into parsed citations.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/cite-check/internal/httputil"
	"github.com/pdiddy/cite-check/pkg/types"
)

// crossrefAPIBase is the CrossRef Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// Record is the normalized subset of a CrossRef work used for merging.
type Record struct {
	DOI            string         `json:"doi"`
	Title          string         `json:"title"`
	Authors        []types.Author `json:"authors,omitempty"`
	Year           string         `json:"year,omitempty"`
	ContainerTitle string         `json:"container_title,omitempty"`
	Volume         string         `json:"volume,omitempty"`
	Issue          string         `json:"issue,omitempty"`
	Pages          string         `json:"pages,omitempty"`
	Type           string         `json:"type"`
	Publisher      string         `json:"publisher,omitempty"`
	Editors        []types.Author `json:"editors,omitempty"`
	Edition        string         `json:"edition,omitempty"`
}

// Client queries the CrossRef REST API.
type Client struct {
	HTTPClient *http.Client
	// Mailto is sent as a query parameter for polite pool access.
	Mailto string
	// PlusToken, when set, is sent as the Crossref-Plus-API-Token header.
	PlusToken  string
	UserAgent  string
	MaxRetries int
}

// BestMatch searches CrossRef by title and returns the top-ranked work,
// or nil when the index has no candidate at all.
func (c *Client) BestMatch(ctx context.Context, title string) (*Record, error) {
	params := url.Values{
		"query.title": {title},
		"rows":        {"1"},
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	var body struct {
		Message struct {
			Items []crossrefWork `json:"items"`
		} `json:"message"`
	}
	if err := c.getJSON(ctx, crossrefAPIBase+"?"+params.Encode(), &body); err != nil {
		return nil, err
	}
	if len(body.Message.Items) == 0 {
		return nil, nil
	}
	rec := recordFromWork(body.Message.Items[0])
	return &rec, nil
}

// Resolve fetches the work registered for a bare DOI.
func (c *Client) Resolve(ctx context.Context, doi string) (*Record, error) {
	var body struct {
		Message crossrefWork `json:"message"`
	}
	reqURL := crossrefAPIBase + "/" + url.PathEscape(doi)
	if c.Mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.Mailto)
	}
	if err := c.getJSON(ctx, reqURL, &body); err != nil {
		return nil, err
	}
	rec := recordFromWork(body.Message)
	return &rec, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.PlusToken)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing CrossRef response: %w", err)
	}
	return nil
}

// CrossRef API JSON structures.
type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	Editor         []crossrefAuthor `json:"editor"`
	Issued         crossrefDate     `json:"issued"`
	ContainerTitle []string         `json:"container-title"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	Type           string           `json:"type"`
	Publisher      string           `json:"publisher"`
	EditionNumber  string           `json:"edition-number"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func recordFromWork(w crossrefWork) Record {
	rec := Record{
		DOI:       w.DOI,
		Type:      w.Type,
		Volume:    w.Volume,
		Issue:     w.Issue,
		Pages:     w.Page,
		Publisher: w.Publisher,
		Edition:   w.EditionNumber,
	}
	if len(w.Title) > 0 {
		rec.Title = strings.TrimSpace(w.Title[0])
	}
	if len(w.ContainerTitle) > 0 {
		rec.ContainerTitle = strings.TrimSpace(w.ContainerTitle[0])
	}
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		rec.Year = fmt.Sprintf("%d", w.Issued.DateParts[0][0])
	}
	rec.Authors = convertAuthors(w.Author)
	rec.Editors = convertAuthors(w.Editor)
	return rec
}

func convertAuthors(in []crossrefAuthor) []types.Author {
	var out []types.Author
	for _, a := range in {
		switch {
		case a.Family != "":
			out = append(out, types.Author{
				LastName: a.Family,
				Initials: initialsFromGiven(a.Given),
			})
		case a.Name != "":
			out = append(out, types.Author{LastName: a.Name, IsGroup: true})
		}
	}
	return out
}

// initialsFromGiven reduces a given-name string to APA initials:
// "Mary Jane" becomes "M. J.".
func initialsFromGiven(given string) string {
	var parts []string
	for _, w := range strings.Fields(given) {
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		parts = append(parts, strings.ToUpper(string(r[0]))+".")
	}
	return strings.Join(parts, " ")
}
