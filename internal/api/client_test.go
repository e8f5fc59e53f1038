package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func TestParseBaseURL_NormalizesAndRequiresValue(t *testing.T) {
	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("parseBaseURL accepted empty input, want error")
	}

	u, err := parseBaseURL("api.wholefoodlabs.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndSetsHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID, gotIdemKey string
	var gotXPQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/recipes/saved/list":
			_ = json.NewEncoder(w).Encode(SavedListResponse{
				Items:    []RecipeCard{{ID: "r1", Title: "Lentil Soup"}},
				SavedIDs: []string{"r1"},
			})
		case "/recipes/saved/r1":
			gotIdemKey = r.Header.Get("X-Idempotency-Key")
			_ = json.NewEncoder(w).Encode(SaveResponse{Status: "saved"})
		case "/auth/me":
			_ = json.NewEncoder(w).Encode(Profile{XPPoints: 1250, CurrentStreak: 4})
		case "/gamification/xp":
			gotXPQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(XPGainResponse{XPGained: 10, TotalXP: 1260})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticTokens{token: "tok-1", ok: true})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.FetchSaved(ctx)
	if err != nil {
		t.Fatalf("FetchSaved returned error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != "r1" {
		t.Fatalf("FetchSaved items = %#v, want 1 item id=r1", list.Items)
	}
	if len(list.SavedIDs) != 1 || list.SavedIDs[0] != "r1" {
		t.Fatalf("FetchSaved saved ids = %#v, want [r1]", list.SavedIDs)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID header missing")
	}

	resp, err := c.SaveRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("SaveRecipe returned error: %v", err)
	}
	if resp.Status != "saved" {
		t.Fatalf("SaveRecipe status = %q, want saved", resp.Status)
	}
	if gotIdemKey == "" {
		t.Fatal("X-Idempotency-Key header missing on mutation")
	}

	profile, err := c.FetchProfile(ctx)
	if err != nil {
		t.Fatalf("FetchProfile returned error: %v", err)
	}
	if profile.XPPoints != 1250 || profile.CurrentStreak != 4 {
		t.Fatalf("FetchProfile = %#v, want xp=1250 streak=4", profile)
	}

	gain, err := c.AwardXP(ctx, 10, "browse_recipe")
	if err != nil {
		t.Fatalf("AwardXP returned error: %v", err)
	}
	if gain.TotalXP != 1260 {
		t.Fatalf("AwardXP total = %d, want 1260", gain.TotalXP)
	}
	if gotXPQuery.Get("amount") != "10" || gotXPQuery.Get("reason") != "browse_recipe" {
		t.Fatalf("xp query = %v, want amount=10 reason=browse_recipe", gotXPQuery)
	}
}

func TestClient_NoTokenSendsAnonymousRequest(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SavedListResponse{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, staticTokens{ok: false})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchSaved(context.Background()); err != nil {
		t.Fatalf("FetchSaved returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_ErrorStatusSurfacesAsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchProfile(context.Background()); err == nil {
		t.Fatal("FetchProfile succeeded on 401, want error")
	}
	if _, err := c.SaveRecipe(context.Background(), "r9"); err == nil {
		t.Fatal("SaveRecipe succeeded on 401, want error")
	}
}

func TestClient_CreateSavedRecipeReturnsAssignedID(t *testing.T) {
	t.Parallel()

	var gotBody NewRecipe
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/saved" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SaveResponse{Status: "saved", RecipeID: "srv-77"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	id, err := c.CreateSavedRecipe(context.Background(), NewRecipe{Title: "Healthified Pad Thai"})
	if err != nil {
		t.Fatalf("CreateSavedRecipe returned error: %v", err)
	}
	if id != "srv-77" {
		t.Fatalf("id = %q, want srv-77", id)
	}
	if gotBody.Title != "Healthified Pad Thai" {
		t.Fatalf("request title = %q, want Healthified Pad Thai", gotBody.Title)
	}

	if _, err := c.CreateSavedRecipe(context.Background(), NewRecipe{}); err == nil {
		t.Fatal("CreateSavedRecipe accepted empty title, want error")
	}
}
