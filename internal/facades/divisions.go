package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/models"
)

// DefaultPSGCBaseURL is the public Philippine Standard Geographic Code API.
const DefaultPSGCBaseURL = "https://psgc.gitlab.io/api"

// DivisionsFacade reads the administrative-division catalog over REST.
type DivisionsFacade struct {
	baseURL string
	client  *http.Client
}

// NewDivisionsFacade creates a facade for baseURL. A nil client gets a 10 second timeout.
func NewDivisionsFacade(baseURL string, client *http.Client) *DivisionsFacade {
	if baseURL == "" {
		baseURL = DefaultPSGCBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &DivisionsFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Children lists divisions of kind under a parent. An empty parentKind lists
// top-level divisions of kind.
func (f *DivisionsFacade) Children(ctx context.Context, parentKind, parentCode, kind string) ([]models.Division, error) {
	path := "/" + kind + "/"
	if parentKind != "" {
		path = fmt.Sprintf("/%s/%s/%s/", parentKind, url.PathEscape(parentCode), kind)
	}

	var divisions []models.Division
	found, err := f.get(ctx, path, &divisions)
	if err != nil {
		logger.Log.Errorw("failed to fetch divisions", "path", path, "error", err)
		return nil, err
	}
	if !found {
		return []models.Division{}, nil
	}
	return divisions, nil
}

// Lookup fetches a single division. It returns (nil, nil) when the code is unknown.
func (f *DivisionsFacade) Lookup(ctx context.Context, kind, code string) (*models.Division, error) {
	path := fmt.Sprintf("/%s/%s/", kind, url.PathEscape(code))

	var division models.Division
	found, err := f.get(ctx, path, &division)
	if err != nil {
		logger.Log.Errorw("failed to fetch division", "path", path, "error", err)
		return nil, err
	}
	if !found || division.Code == "" {
		return nil, nil
	}
	return &division, nil
}

// get decodes a JSON body into dst and reports false on 404.
func (f *DivisionsFacade) get(ctx context.Context, path string, dst any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("psgc %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("psgc %s: decode: %w", path, err)
	}
	return true, nil
}
