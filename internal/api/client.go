package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for authenticated requests. The ok
// result is false when no session exists; requests are then sent anonymously
// and the server rejects the ones that need auth.
type TokenSource interface {
	Token() (string, bool)
}

// SavedAPI is the slice of the client the saved-recipes store depends on.
// This interface is implemented by *Client and can be used for testing.
type SavedAPI interface {
	FetchSaved(ctx context.Context) (SavedListResponse, error)
	SaveRecipe(ctx context.Context, id string) (SaveResponse, error)
	UnsaveRecipe(ctx context.Context, id string) error
	CreateSavedRecipe(ctx context.Context, recipe NewRecipe) (string, error)
}

// ProfileAPI is the slice of the client the gamification engine depends on.
type ProfileAPI interface {
	FetchProfile(ctx context.Context) (*Profile, error)
	AwardXP(ctx context.Context, amount int, reason string) (XPGainResponse, error)
}

// Ensure Client implements both API surfaces at compile time.
var (
	_ SavedAPI   = (*Client)(nil)
	_ ProfileAPI = (*Client)(nil)
)

// Client talks to the WholeFood Labs HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

const (
	defaultUserAgent = "larder/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. tokens may be nil for an
// unauthenticated client.
func NewClient(apiBase string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}, nil
}

// FetchSaved retrieves the full saved-recipes collection and membership ids.
func (c *Client) FetchSaved(ctx context.Context) (SavedListResponse, error) {
	if c == nil {
		return SavedListResponse{}, fmt.Errorf("client is nil")
	}
	var payload SavedListResponse
	if err := c.do(ctx, http.MethodGet, "/recipes/saved/list", nil, &payload); err != nil {
		return SavedListResponse{}, err
	}
	return payload, nil
}

// SaveRecipe marks an existing recipe as saved for the current user.
func (c *Client) SaveRecipe(ctx context.Context, id string) (SaveResponse, error) {
	if c == nil {
		return SaveResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return SaveResponse{}, fmt.Errorf("recipe id required")
	}
	var payload SaveResponse
	if err := c.do(ctx, http.MethodPost, "/recipes/saved/"+url.PathEscape(id), nil, &payload); err != nil {
		return SaveResponse{}, err
	}
	return payload, nil
}

// UnsaveRecipe removes a recipe from the current user's saved collection.
func (c *Client) UnsaveRecipe(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("recipe id required")
	}
	return c.do(ctx, http.MethodDelete, "/recipes/saved/"+url.PathEscape(id), nil, nil)
}

// CreateSavedRecipe submits a recipe that does not exist server-side yet and
// returns the server-assigned id.
func (c *Client) CreateSavedRecipe(ctx context.Context, recipe NewRecipe) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(recipe.Title) == "" {
		return "", fmt.Errorf("recipe title required")
	}
	var payload SaveResponse
	if err := c.do(ctx, http.MethodPost, "/recipes/saved", recipe, &payload); err != nil {
		return "", err
	}
	if payload.RecipeID == "" {
		return "", fmt.Errorf("server returned no recipe id")
	}
	return payload.RecipeID, nil
}

// FetchProfile retrieves the current user's profile. As a server-side effect
// this advances the day streak, so it is Larder's streak-sync call.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AwardXP reports a completed action worth XP.
func (c *Client) AwardXP(ctx context.Context, amount int, reason string) (XPGainResponse, error) {
	if c == nil {
		return XPGainResponse{}, fmt.Errorf("client is nil")
	}
	if amount <= 0 {
		return XPGainResponse{}, fmt.Errorf("xp amount must be positive")
	}
	values := url.Values{}
	values.Set("amount", strconv.Itoa(amount))
	values.Set("reason", strings.TrimSpace(reason))
	rel := &url.URL{Path: "/gamification/xp", RawQuery: values.Encode()}
	var payload XPGainResponse
	if err := c.doURL(ctx, http.MethodPost, rel, nil, &payload); err != nil {
		return XPGainResponse{}, err
	}
	return payload, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password}
	var payload TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return "", err
	}
	return payload.AccessToken, nil
}

// Register creates an account and returns its access token.
func (c *Client) Register(ctx context.Context, email, password, name string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := map[string]string{"email": email, "password": password, "name": name}
	var payload TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &payload); err != nil {
		return "", err
	}
	return payload.AccessToken, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
