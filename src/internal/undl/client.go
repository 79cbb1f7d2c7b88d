// Package undl is a client for the United Nations Digital Library search
// API. It turns free-text prompts or record identifiers into flattened,
// JSON-serializable bibliographic records.
package undl

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"undl/src/internal/config"
	"undl/src/internal/httpx"
	"undl/src/internal/jsonfile"
	"undl/src/internal/marcxml"
	"undl/src/internal/record"
)

const (
	// DefaultCount is the number of results requested when none is given.
	DefaultCount = 50
	// MaxCount is the catalog's per-request result cap. Larger requests are
	// clamped, never rejected.
	MaxCount = 200
)

// ErrMissingAPIKey is returned when the official API is queried without a
// configured key.
var ErrMissingAPIKey = errors.New("undl: API key not configured (set UN_API)")

// ErrUnsupportedKind is returned for response kinds outside the Kind enum.
var ErrUnsupportedKind = errors.New("undl: unsupported response kind")

var client httpx.Doer = &http.Client{Timeout: 30 * time.Second}

// SetHTTPClient allows tests to inject a fake HTTP client. It affects clients
// created afterwards.
func SetHTTPClient(d httpx.Doer) { client = d }

// Result is the outcome of a search: the catalog's reported total, the opaque
// search continuation token, and the flattened records. Identifier lookups
// carry records only.
type Result struct {
	Total    *int               `json:"total,omitempty"`
	SearchID string             `json:"search_id,omitempty"`
	Records  []record.Projected `json:"records"`
}

// IDResult is the catalog's lightweight hits payload, returned verbatim.
type IDResult struct {
	Total int      `json:"total"`
	Hits  []string `json:"hits"`
}

// Client queries the catalog. It owns three never-evicting caches (results by
// prompt, hit lists by prompt, records by identifier) that live as long as
// the client; ClearCache and DisableCache exist for tests. Not safe for
// concurrent use.
type Client struct {
	cfg  config.Config
	log  zerolog.Logger
	http httpx.Doer
	proj record.Projector

	cacheOff    bool
	queryCache  map[string]*Result
	idCache     map[string]*IDResult
	recordCache map[string]*Result
}

// New returns a client for the given configuration, logging to log.
func New(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:         cfg,
		log:         log,
		http:        client,
		proj:        record.Projector{Log: log},
		queryCache:  map[string]*Result{},
		idCache:     map[string]*IDResult{},
		recordCache: map[string]*Result{},
	}
}

// ClearCache drops all cached results.
func (c *Client) ClearCache() {
	c.queryCache = map[string]*Result{}
	c.idCache = map[string]*IDResult{}
	c.recordCache = map[string]*Result{}
}

// DisableCache turns off cache lookups and stores for this client.
func (c *Client) DisableCache() { c.cacheOff = true }

// QueryOptions tune a free-text Query. The zero value requests the default
// format, English, and DefaultCount results.
type QueryOptions struct {
	// Format is the public output-format name (see DefaultFormat). Unknown
	// names fall back to the default with a warning.
	Format string
	// Lang is the interface language code, "en" by default.
	Lang string
	// SearchID resumes a prior search context.
	SearchID string
	// Count is the requested number of results, clamped to MaxCount.
	Count int
	// OutputFile, when set, also writes the result there as JSON.
	OutputFile string
}

// Query searches the official API for a free-text prompt and returns the
// projected records. Results are cached by prompt: a repeated prompt returns
// the cached result without a network round trip, whatever the options.
func (c *Client) Query(ctx context.Context, prompt string, opts QueryOptions) (*Result, error) {
	if !c.cacheOff {
		if res, ok := c.queryCache[prompt]; ok {
			c.log.Info().Str("prompt", prompt).Msg("found prompt in cache")
			return res, nil
		}
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c.log.Info().Str("prompt", prompt).Msg("querying official API")

	params := url.Values{}
	params.Set("p", prompt)
	params.Set("format", c.formatCode(opts.Format))
	params.Set("ln", langOrDefault(opts.Lang))
	params.Set("rg", strconv.Itoa(c.clampCount(opts.Count)))
	if opts.SearchID != "" {
		params.Set("search_id", opts.SearchID)
	}

	res, _, err := c.request(ctx, c.cfg.APIBaseURL, params, KindMARCXML, c.cfg.APIKey, opts.OutputFile)
	if err != nil {
		return nil, err
	}
	if !c.cacheOff {
		c.queryCache[prompt] = res
	}
	return res, nil
}

// QueryByID fetches a single record by its catalog identifier via the legacy
// search endpoint. Results are cached by identifier. If outputFile is set the
// result is also written there as JSON.
func (c *Client) QueryByID(ctx context.Context, recordID, outputFile string) (*Result, error) {
	if !c.cacheOff {
		if res, ok := c.recordCache[recordID]; ok {
			c.log.Info().Str("id", recordID).Msg("found record id in cache")
			return res, nil
		}
	}
	c.log.Info().Str("id", recordID).Msg("querying catalog for record id")

	params := url.Values{}
	params.Set("recid", recordID)
	params.Set("of", "xm")
	params.Set("c", "Resource Type")

	res, _, err := c.request(ctx, c.cfg.SearchBaseURL, params, KindMARCXML, "", outputFile)
	if err != nil {
		return nil, err
	}
	if !c.cacheOff {
		c.recordCache[recordID] = res
	}
	return res, nil
}

// AllRecordIDs returns only the identifiers matching a prompt, using the
// official API's JSON hits format. Results are cached by prompt.
func (c *Client) AllRecordIDs(ctx context.Context, prompt, outputFile string) (*IDResult, error) {
	if !c.cacheOff {
		if res, ok := c.idCache[prompt]; ok {
			c.log.Info().Str("prompt", prompt).Msg("found prompt in cache")
			return res, nil
		}
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c.log.Info().Str("prompt", prompt).Msg("querying official API for record ids")

	params := url.Values{}
	params.Set("p", prompt)
	params.Set("ln", "en")

	_, ids, err := c.request(ctx, c.cfg.APIBaseURL, params, KindJSON, c.cfg.APIKey, outputFile)
	if err != nil {
		return nil, err
	}
	if !c.cacheOff {
		c.idCache[prompt] = ids
	}
	return ids, nil
}

// request is the shared query routine: one GET, a decode dispatched on the
// response kind, and an optional write of the decoded result to outPath.
func (c *Client) request(ctx context.Context, endpoint string, params url.Values, k Kind, token, outPath string) (*Result, *IDResult, error) {
	body, err := c.get(ctx, endpoint, params, token)
	if err != nil {
		return nil, nil, err
	}

	var out any
	var res *Result
	var ids *IDResult
	switch k {
	case KindMARCXML:
		if res, err = c.decodeSearch(body); err != nil {
			return nil, nil, err
		}
		out = res
	case KindJSON:
		ids = &IDResult{}
		if err = json.Unmarshal(body, ids); err != nil {
			return nil, nil, fmt.Errorf("undl: decoding hits payload: %w", err)
		}
		c.log.Info().Int("hits", len(ids.Hits)).Msg("query successful")
		out = ids
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}

	if outPath != "" {
		if err := jsonfile.Write(outPath, out); err != nil {
			return nil, nil, err
		}
		c.log.Info().Str("path", outPath).Msg("wrote result")
	}
	return res, ids, nil
}

// get issues the GET request and returns the response body. Transport errors
// and non-success statuses propagate to the caller.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, token string) ([]byte, error) {
	u := endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpx.SetUA(req)
	req.Header.Set("Content-Type", "application/xml")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	c.log.Debug().Str("url", u).Msg("GET")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("undl: http %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// searchEnvelope is the official API's XML wrapper around the MARCXML
// collection.
type searchEnvelope struct {
	Total      *int               `xml:"total"`
	SearchID   string             `xml:"search_id"`
	Collection marcxml.Collection `xml:"collection"`
}

// decodeSearch handles both response layouts: the official API's envelope
// with total/search_id around the collection, and the legacy endpoint's bare
// collection document.
func (c *Client) decodeSearch(body []byte) (*Result, error) {
	if root := rootElement(body); root == "collection" {
		coll, err := marcxml.ParseCollection(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("undl: parsing MARCXML: %w", err)
		}
		return &Result{Records: c.proj.ProjectAll(coll)}, nil
	}

	var env searchEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("undl: parsing search response: %w", err)
	}
	if env.Total != nil {
		c.log.Info().Int("total", *env.Total).Msg("results found")
	}
	if env.SearchID != "" {
		c.log.Debug().Str("search_id", env.SearchID).Msg("search context")
	}
	return &Result{
		Total:    env.Total,
		SearchID: env.SearchID,
		Records:  c.proj.ProjectAll(&env.Collection),
	}, nil
}

// rootElement returns the local name of the document's root element.
func rootElement(body []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local
		}
	}
}

// formatCode resolves a public format name to the catalog's code, falling
// back to the default with a warning for unknown names.
func (c *Client) formatCode(name string) string {
	if name == "" {
		name = DefaultFormat
	}
	if code, ok := formatCodes[strings.ToLower(name)]; ok {
		return code
	}
	c.log.Warn().Str("format", name).Str("fallback", DefaultFormat).Msg("unsupported output format")
	return formatCodes[DefaultFormat]
}

// clampCount normalizes the requested result count: the default when unset,
// MaxCount (with a warning) when above the cap.
func (c *Client) clampCount(n int) int {
	switch {
	case n <= 0:
		return DefaultCount
	case n > MaxCount:
		c.log.Warn().Int("requested", n).Int("cap", MaxCount).Msg("result count clamped")
		return MaxCount
	default:
		return n
	}
}

func langOrDefault(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return "en"
	}
	return lang
}
