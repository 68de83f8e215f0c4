package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
)

// Resolver fetches the complete collection a reference points to.
type Resolver interface {
	Resolve(ctx context.Context, ref models.CatalogReference) (*models.Collection, error)
}

// Searcher returns ranked candidates for a free-text query. No results is an empty list, not an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
}

// Catalog routes references to the [Resolver] registered for their provider.
type Catalog map[models.Provider]Resolver

// Resolve implements [Resolver].
func (c Catalog) Resolve(ctx context.Context, ref models.CatalogReference) (*models.Collection, error) {
	r, ok := c[ref.Provider]
	if !ok || r == nil {
		return nil, fmt.Errorf("%w: no credentials configured for %s", shared.ErrMissingCredentials, ref.Provider)
	}
	return r.Resolve(ctx, ref)
}

// getJSON issues an authenticated GET and decodes a JSON body into result.
//
// 401 and 403 map to [shared.ErrAuth]; every other failure maps to [shared.ErrResolution].
func getJSON(ctx context.Context, client *http.Client, endpoint, authorization string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrResolution, err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrResolution, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d", shared.ErrAuth, req.URL.Path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s returned status %d", shared.ErrResolution, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", shared.ErrResolution, req.URL.Path, err)
	}
	return nil
}
