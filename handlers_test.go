package mdblog_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"

	"github.com/eringen/mdblog"
	"github.com/eringen/mdblog/views"
)

func newTestApp(t *testing.T, files map[string]string) *mdblog.App {
	t.Helper()
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts")
	if err := os.MkdirAll(posts, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(posts, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := mdblog.SiteConfig{
		Name:      "Test Blog",
		URL:       "https://example.com",
		PostsDir:  posts,
		OutputDir: filepath.Join(dir, "out"),
	}
	logger := log.New("test")
	logger.SetLevel(log.OFF)
	return mdblog.New(cfg, views.New(cfg),
		mdblog.WithStaticDir(filepath.Join(dir, "public")),
		mdblog.WithLogger(logger),
	)
}

func get(t *testing.T, a *mdblog.App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

var twoPosts = map[string]string{
	"a.md": "---\ntitle: Alpha\ndate: 2024-01-01\nexcerpt: First letter.\n---\n# Heading A\n\nBody of **alpha**.\n",
	"b.md": "---\ntitle: Beta\ndate: 2024-02-01\nexcerpt: Second letter.\n---\nBody of beta.\n",
}

func TestIndexListsPreviews(t *testing.T) {
	a := newTestApp(t, twoPosts)
	rec := get(t, a, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`href="/posts/a"`,
		`href="/posts/b"`,
		"Alpha", "Beta",
		"First letter.", "Second letter.",
		"2024-01-01",
		`href="/">Main page</a>`,
		`href="/posts">Blog page</a>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Count(body, `class="post-preview"`) != 2 {
		t.Errorf("want 2 previews, got %d", strings.Count(body, `class="post-preview"`))
	}
	if strings.Contains(body, "Body of") {
		t.Error("index should not include post bodies")
	}
}

func TestIndexEmpty(t *testing.T) {
	a := newTestApp(t, nil)
	rec := get(t, a, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), `class="post-preview"`) {
		t.Error("empty directory should render no previews")
	}
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, twoPosts)
	rec := get(t, a, "/posts/a")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<h1>Alpha</h1>",
		`<h1 id="heading-a">Heading A</h1>`,
		"<strong>alpha</strong>",
		"<title>Alpha | Test Blog</title>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestPostEscapesTitle(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"x.md": "---\ntitle: \"<script>alert(1)</script>\"\n---\nbody\n",
	})
	body := get(t, a, "/posts/x").Body.String()
	if strings.Contains(body, "<script>alert(1)") {
		t.Error("title must be escaped")
	}
}

func TestPostNotFound(t *testing.T) {
	a := newTestApp(t, twoPosts)

	for _, target := range []string{"/posts/ghost", "/posts/A", "/posts/a.md", "/nowhere"} {
		rec := get(t, a, target)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", target, rec.Code, http.StatusNotFound)
			continue
		}
		if !strings.Contains(rec.Body.String(), "Page not found") {
			t.Errorf("GET %s should render the not-found page", target)
		}
	}
}

func TestPostTraversalRejected(t *testing.T) {
	a := newTestApp(t, twoPosts)
	rec := get(t, a, "/posts/..%2Fsecret")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMissingPostsDirIsServerError(t *testing.T) {
	a := newTestApp(t, nil)
	if err := os.Remove(a.Config.PostsDir); err != nil {
		t.Fatal(err)
	}
	rec := get(t, a, "/")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Error("should render the server error page")
	}
}

func TestPostsRedirect(t *testing.T) {
	a := newTestApp(t, twoPosts)
	rec := get(t, a, "/posts")

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}

func TestFeedsServed(t *testing.T) {
	a := newTestApp(t, twoPosts)

	tests := []struct {
		path, contentType, want string
	}{
		{"/sitemap.xml", "application/xml", "https://example.com/posts/a"},
		{"/feed.xml", "application/rss+xml", "<title>Beta</title>"},
	}
	for _, tt := range tests {
		rec := get(t, a, tt.path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, http.StatusOK)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("GET %s Content-Type = %q, want %q", tt.path, ct, tt.contentType)
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s missing %q", tt.path, tt.want)
		}
	}
}

func TestStylesheetServed(t *testing.T) {
	a := newTestApp(t, nil)
	rec := get(t, a, "/public/style.css")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), ".post-grid") {
		t.Error("stylesheet should define the post grid")
	}
}

func TestSecurityHeaders(t *testing.T) {
	a := newTestApp(t, twoPosts)
	rec := get(t, a, "/")

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("Cache-Control = %q, want %q", got, "public, max-age=60")
	}
}

func TestIndexLinksResolve(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"plain.md", "a b.md", "100%.md", "a%41.md", "a?b.md", "a#b.md", "x.png.md"} {
		files[name] = "---\ntitle: T " + name + "\n---\nbody\n"
	}
	a := newTestApp(t, files)

	index := get(t, a, "/").Body.String()
	hrefs := regexp.MustCompile(`href="(/posts/[^"]+)"`).FindAllStringSubmatch(index, -1)
	if len(hrefs) != len(files) {
		t.Fatalf("index has %d post links, want %d", len(hrefs), len(files))
	}
	for _, m := range hrefs {
		rec := get(t, a, m[1])
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", m[1], rec.Code, http.StatusOK)
			continue
		}
		if !strings.Contains(rec.Body.String(), `<main class="post">`) {
			t.Errorf("GET %s did not render a post page", m[1])
		}
	}
}

func TestPostAndImageShareExtension(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"diagram.png.md": "---\ntitle: About diagrams\n---\nbody\n",
		"logo.svg":       `<svg xmlns="http://www.w3.org/2000/svg"/>`,
	})

	rec := get(t, a, "/posts/diagram.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "<h1>About diagrams</h1>") {
		t.Error("diagram.png should render the post")
	}

	rec = get(t, a, "/posts/logo.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("image status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want %q", ct, "image/svg+xml")
	}

	if rec := get(t, a, "/posts/missing.png"); rec.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
