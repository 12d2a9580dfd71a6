package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travelo-app/travelo/internal/actions"
	"github.com/travelo-app/travelo/internal/feed"
	"github.com/travelo-app/travelo/internal/hive"
	"github.com/travelo-app/travelo/internal/models"
	"github.com/travelo-app/travelo/internal/store"
	"github.com/travelo-app/travelo/internal/wallet"
	"github.com/travelo-app/travelo/pkg/config"
	"github.com/travelo-app/travelo/pkg/logging"
)

type fakeGateway struct {
	posts []models.Post
}

func (f *fakeGateway) GetDiscussionsByCreated(ctx context.Context, tag string, limit int) ([]models.Post, error) {
	return f.posts, nil
}

func (f *fakeGateway) GetDiscussionsByBlog(ctx context.Context, account string, limit int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.Author == account {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetActiveVotes(ctx context.Context, author, permlink string) ([]hive.Vote, error) {
	return nil, nil
}

func (f *fakeGateway) GetAccounts(ctx context.Context, names []string) ([]hive.Account, error) {
	accounts := make([]hive.Account, 0, len(names))
	for _, n := range names {
		accounts = append(accounts, hive.Account{Name: n})
	}
	return accounts, nil
}

type fakeBridge struct {
	available     bool
	transferResps []*wallet.Response
}

func (f *fakeBridge) Available() bool { return f.available }

func (f *fakeBridge) Login(ctx context.Context, p wallet.LoginPayload) (*wallet.Response, error) {
	return &wallet.Response{Success: true, Data: wallet.ResponseData{Key: "STM8PubKey"}}, nil
}

func (f *fakeBridge) Vote(ctx context.Context, p wallet.VotePayload) (*wallet.Response, error) {
	return &wallet.Response{Success: true}, nil
}

func (f *fakeBridge) Transfer(ctx context.Context, p wallet.TransferPayload) (*wallet.Response, error) {
	if len(f.transferResps) == 0 {
		return &wallet.Response{Success: true}, nil
	}
	resp := f.transferResps[0]
	if len(f.transferResps) > 1 {
		f.transferResps = f.transferResps[1:]
	}
	return resp, nil
}

func (f *fakeBridge) Post(ctx context.Context, p wallet.PostPayload) (*wallet.Response, error) {
	return &wallet.Response{Success: true}, nil
}

func testPosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			Author:       fmt.Sprintf("author%d", i),
			Permlink:     fmt.Sprintf("trip-%d", i),
			Title:        fmt.Sprintf("Trip %d", i),
			Body:         fmt.Sprintf("Day %d of the journey.", i),
			Created:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			JSONMetadata: `{"tags":["travel"],"image":["https://img.example/a.jpg"]}`,
		})
	}
	return posts
}

func newTestServer(bridge wallet.Bridge, gateway hive.Gateway) (*gin.Engine, *store.State) {
	gin.SetMode(gin.TestMode)
	logging.Logger = zap.NewNop()

	cfg := &config.Config{
		Feed: config.FeedConfig{
			Tag:      "travel",
			Limit:    20,
			CacheTTL: 5 * time.Minute,
			PageSize: 9,
		},
		Platform: config.PlatformConfig{
			App:       "hive-travel",
			AdAccount: "abinsaji4",
			Category:  "hive-travel",
		},
	}

	state := store.NewState(store.NewMemory())
	feedSvc := feed.NewService(gateway, state, cfg.Feed)
	actionSvc := actions.New(bridge, gateway, state, cfg)

	engine := gin.New()
	NewRouter(feedSvc, actionSvc, cfg).SetupRoutes(engine)
	return engine, state
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestExcerptSkipsStructuralLines(t *testing.T) {
	body := "# Heading\n\n![alt](https://img.example/a.jpg)\nFirst real sentence.\nSecond sentence."
	got := excerpt(body, 160)
	if got != "First real sentence. Second sentence." {
		t.Errorf("Unexpected excerpt: %q", got)
	}
}

func TestExcerptCutsOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("ü", 100)
	got := excerpt(body, 33)
	if !utf8.ValidString(got) {
		t.Errorf("Excerpt contains a split rune: %q", got)
	}
	if len(got) > 33 {
		t.Errorf("Excerpt exceeds limit: %d bytes", len(got))
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{})

	w := doJSON(engine, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestFeedEndpointPaginates(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{posts: testPosts(15)})

	w := doJSON(engine, http.MethodGet, "/feed", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Posts   []feedItem `json:"posts"`
		Page    int        `json:"page"`
		HasMore bool       `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Posts) != 9 {
		t.Errorf("Expected one page of 9 posts, got %d", len(resp.Posts))
	}
	if !resp.HasMore {
		t.Error("Expected has_more for 15 posts")
	}

	w = doJSON(engine, http.MethodGet, "/feed?page=2", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Posts) != 15 {
		t.Errorf("Expected all 15 posts on page 2, got %d", len(resp.Posts))
	}
	if resp.HasMore {
		t.Error("Expected has_more false once everything is visible")
	}
}

func TestFeedEndpointSearch(t *testing.T) {
	posts := testPosts(5)
	posts[2].Title = "Snorkeling in Palawan"
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{posts: posts})

	w := doJSON(engine, http.MethodGet, "/feed?q=palawan", "")
	var resp struct {
		Posts []feedItem `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].Title != "Snorkeling in Palawan" {
		t.Errorf("Expected single case-insensitive match, got %+v", resp.Posts)
	}
}

func TestPostEndpoint(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{posts: testPosts(3)})

	w := doJSON(engine, http.MethodGet, "/posts/author1/trip-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Blocks      []models.ContentBlock `json:"blocks"`
		ReadingTime int                   `json:"reading_time"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Blocks) == 0 {
		t.Error("Expected segmented content blocks")
	}
	if resp.ReadingTime < 1 {
		t.Errorf("Expected reading time floor of 1, got %d", resp.ReadingTime)
	}
}

func TestPostEndpointNotFound(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{posts: testPosts(2)})

	w := doJSON(engine, http.MethodGet, "/posts/nobody/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestLoginAndSession(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{})

	w := doJSON(engine, http.MethodPost, "/login", `{"username":"alice"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(engine, http.MethodGet, "/session", "")
	var resp struct {
		LoggedIn bool   `json:"logged_in"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.LoggedIn || resp.Username != "alice" {
		t.Errorf("Expected logged-in session for alice, got %+v", resp)
	}

	w = doJSON(engine, http.MethodPost, "/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	w = doJSON(engine, http.MethodGet, "/session", "")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.LoggedIn {
		t.Error("Expected session to be cleared after logout")
	}
}

func TestVoteRequiresLogin(t *testing.T) {
	engine, _ := newTestServer(&fakeBridge{available: true}, &fakeGateway{})

	w := doJSON(engine, http.MethodPost, "/votes", `{"author":"bob","permlink":"trip-1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVoteWalletUnavailable(t *testing.T) {
	engine, state := newTestServer(&fakeBridge{available: false}, &fakeGateway{})
	if err := state.SetSession(context.Background(), models.Session{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(engine, http.MethodPost, "/votes", `{"author":"bob","permlink":"trip-1"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTipEndpointReportsPartialFailure(t *testing.T) {
	bridge := &fakeBridge{
		available: true,
		transferResps: []*wallet.Response{
			{Success: true},
			{Success: false, Error: "insufficient funds"},
			{Success: true},
		},
	}
	engine, state := newTestServer(bridge, &fakeGateway{})
	if err := state.SetSession(context.Background(), models.Session{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(engine, http.MethodPost, "/tips", `{"authors":["bob","carol","dave"],"amount":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report actions.TipReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	if report.Attempted != 3 || report.Succeeded != 2 {
		t.Errorf("Expected 3 attempted / 2 succeeded, got %+v", report)
	}
}

func TestTransferValidationMapsTo400(t *testing.T) {
	engine, state := newTestServer(&fakeBridge{available: true}, &fakeGateway{})
	if err := state.SetSession(context.Background(), models.Session{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(engine, http.MethodPost, "/transfers", `{"to":"bob","amount":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuidesEndpoint(t *testing.T) {
	engine, state := newTestServer(&fakeBridge{available: true}, &fakeGateway{})
	if err := state.SetSession(context.Background(), models.Session{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	w := doJSON(engine, http.MethodPost, "/guides/missing-guide/purchase", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown guide, got %d", w.Code)
	}

	id := models.GuideCatalog[0].ID
	w = doJSON(engine, http.MethodPost, "/guides/"+id+"/purchase", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(engine, http.MethodGet, "/guides", "")
	var resp struct {
		Guides []guideListItem `json:"guides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Guides) != len(models.GuideCatalog) {
		t.Fatalf("Expected full catalog, got %d entries", len(resp.Guides))
	}
	if !resp.Guides[0].Purchased {
		t.Error("Expected purchased flag on the bought guide")
	}
}

func TestAdEndpointGatesPlan(t *testing.T) {
	engine, state := newTestServer(&fakeBridge{available: true}, &fakeGateway{})
	if err := state.SetSession(context.Background(), models.Session{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	body := `{"company_name":"Acme","description":"d","website_url":"https://a.example","plan":"Basic","images":[{"url":"x","size_bytes":10}]}`
	w := doJSON(engine, http.MethodPost, "/ads", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for image on Basic plan, got %d: %s", w.Code, w.Body.String())
	}

	body = `{"company_name":"Acme","description":"d","website_url":"https://a.example","plan":"Basic"}`
	w = doJSON(engine, http.MethodPost, "/ads", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(engine, http.MethodGet, "/ads/current", "")
	var resp struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.Active {
		t.Error("Expected an active placement after payment")
	}
}
