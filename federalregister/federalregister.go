package federalregister

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

	"github.com/rs/zerolog/log"

	"go-landwatch/types"
)

var documentFields = []string{
	"title", "abstract", "publication_date", "document_number",
	"agencies", "full_text_xml_url", "html_url", "cfr_references",
}

// SearchParams narrows a documents.json query.
type SearchParams struct {
	Query       string
	PerPage     int
	Page        int
	Significant bool
}

// Client queries the Federal Register documents API.
type Client struct {
	baseURL    string
	agencies   []string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration, agencies []string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		agencies:   agencies,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) values(p SearchParams) url.Values {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}

	v := url.Values{}
	v.Set("conditions[term]", p.Query)
	for _, a := range c.agencies {
		v.Add("conditions[agencies][]", a)
	}
	v.Set("per_page", strconv.Itoa(perPage))
	v.Set("page", strconv.Itoa(page))
	v.Set("order", "newest")
	for _, f := range documentFields {
		v.Add("fields[]", f)
	}
	if p.Significant {
		v.Set("conditions[significant]", "1")
	}
	return v
}

// SearchDocuments fetches one page of newest documents matching the query.
func (c *Client) SearchDocuments(ctx context.Context, p SearchParams) (*types.DocumentsResponse, error) {
	u := c.baseURL + "/documents.json?" + c.values(p).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build federal register request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("federal register request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("federal register request failed")
		return nil, fmt.Errorf("federal register returned status: %s", resp.Status)
	}

	var out types.DocumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode federal register response: %w", err)
	}
	log.Debug().Str("query", p.Query).Int("count", out.Count).Int("results", len(out.Results)).Msg("federal register search")
	return &out, nil
}
