package librariesio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/depscout/depscout/pkg/httputil"
	"github.com/depscout/depscout/pkg/registry"
)

const defaultBaseURL = "https://libraries.io"

// Project is the typed subset of the Libraries.io project response that
// the collector persists. Fields the API adds beyond these are ignored.
type Project struct {
	Name                     string     `json:"name"`
	Platform                 string     `json:"platform"`
	Description              string     `json:"description,omitempty"`
	Homepage                 string     `json:"homepage,omitempty"`
	RepositoryURL            string     `json:"repository_url,omitempty"`
	Language                 string     `json:"language,omitempty"`
	Licenses                 string     `json:"licenses,omitempty"`
	LatestReleaseNumber      string     `json:"latest_release_number,omitempty"`
	LatestReleasePublishedAt *time.Time `json:"latest_release_published_at,omitempty"`
	DependentsCount          int        `json:"dependents_count"`
	DependentReposCount      int        `json:"dependent_repos_count"`
	Stars                    int        `json:"stars"`
	Forks                    int        `json:"forks"`
	SourceRank               int        `json:"rank"`
	Versions                 []Version  `json:"versions,omitempty"`
}

// Version is one released version of a project.
type Version struct {
	Number      string     `json:"number"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Client fetches npm project metadata from the Libraries.io API.
type Client struct {
	*registry.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Libraries.io client authenticated with apiKey.
// Responses are cached in the default cache directory with the given TTL.
func NewClient(apiKey string, cacheTTL time.Duration) (*Client, error) {
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:  registry.NewClient(cache.Namespace("librariesio:"), nil),
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}, nil
}

// NewClientWithCache is like [NewClient] but uses the provided cache.
func NewClientWithCache(apiKey string, cache *httputil.Cache) *Client {
	return &Client{
		Client:  registry.NewClient(cache.Namespace("librariesio:"), nil),
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

// SetBaseURL overrides the API endpoint, mainly for tests and local mocks.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// FetchProject fetches metadata for one npm package. Pass refresh=true to
// bypass the response cache.
//
// Not-found packages return an error satisfying
// errors.Is(err, registry.ErrNotFound).
func (c *Client) FetchProject(ctx context.Context, pkg string, refresh bool) (*Project, error) {
	pkg = strings.TrimSpace(pkg)
	key := "npm:" + pkg

	var proj Project
	err := c.Cached(ctx, key, refresh, &proj, func() error {
		return c.fetch(ctx, pkg, &proj)
	})
	if err != nil {
		return nil, err
	}
	return &proj, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, proj *Project) error {
	url := fmt.Sprintf("%s/api/npm/%s?api_key=%s",
		c.baseURL, registry.EscapePackageName(pkg), c.apiKey)
	if err := c.Get(ctx, url, proj); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}
	if proj.Name == "" {
		return fmt.Errorf("response for %s carries no project name", pkg)
	}
	return nil
}
