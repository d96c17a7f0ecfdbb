package mdblog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readOut(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	files := map[string]string{
		"pic.svg": `<svg xmlns="http://www.w3.org/2000/svg"/>`,
	}
	for k, v := range twoPosts {
		files[k] = v
	}
	a := newTestApp(t, files)

	res, err := a.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// index, posts/index, two posts, 404
	if res.Pages != 5 {
		t.Errorf("Pages = %d, want 5", res.Pages)
	}
	if res.Images != 1 {
		t.Errorf("Images = %d, want 1", res.Images)
	}

	out := a.Config.OutputDir
	index := readOut(t, out, "index.html")
	if !strings.Contains(index, `href="/posts/a"`) || !strings.Contains(index, `href="/posts/b"`) {
		t.Error("index.html should link both posts")
	}
	if readOut(t, out, filepath.Join("posts", "index.html")) != index {
		t.Error("posts/index.html should match index.html")
	}
	if !strings.Contains(readOut(t, out, filepath.Join("posts", "a.html")), "<h1>Alpha</h1>") {
		t.Error("posts/a.html should render the post")
	}
	if !strings.Contains(readOut(t, out, "404.html"), "Page not found") {
		t.Error("404.html should render the not-found page")
	}
	for _, rel := range []string{"sitemap.xml", "feed.xml", "public/style.css", "posts/pic.svg"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "posts", "a.md")); err == nil {
		t.Error("Markdown sources should not be copied")
	}
}

func TestBuildCopiesStaticDir(t *testing.T) {
	a := newTestApp(t, twoPosts)
	static := filepath.Join(filepath.Dir(a.Config.PostsDir), "public")
	if err := os.MkdirAll(filepath.Join(static, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	for rel, body := range map[string]string{
		"robots.txt":     "User-agent: *\n",
		"fonts/body.txt": "font",
	} {
		if err := os.WriteFile(filepath.Join(static, rel), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := a.Build(context.Background()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out := a.Config.OutputDir
	for _, rel := range []string{"robots.txt", "public/robots.txt", "public/fonts/body.txt"} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestBuildCanceled(t *testing.T) {
	a := newTestApp(t, twoPosts)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildMissingPostsDir(t *testing.T) {
	a := newTestApp(t, nil)
	if err := os.Remove(a.Config.PostsDir); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Build(context.Background()); err == nil {
		t.Error("Build with a missing posts directory succeeded, want error")
	}
}

func TestBuildRejectsIndexPost(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"index.md": "---\ntitle: Index\n---\nbody\n",
		"other.md": "---\ntitle: Other\n---\nbody\n",
	})

	_, err := a.Build(context.Background())
	if err == nil {
		t.Fatal("Build with a post named index succeeded, want error")
	}
	if !strings.Contains(err.Error(), "index.md") {
		t.Errorf("err = %v, want it to name index.md", err)
	}
	if _, err := os.Stat(filepath.Join(a.Config.OutputDir, "posts", "index.html")); err == nil {
		t.Error("nothing should be written when the listing would be overwritten")
	}
}

func TestBuildSkipsUnroutableNames(t *testing.T) {
	files := map[string]string{
		"...md": "---\ntitle: Dots\n---\n",
		".md":   "---\ntitle: Empty\n---\n",
	}
	for k, v := range twoPosts {
		files[k] = v
	}
	a := newTestApp(t, files)

	res, err := a.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Pages != 5 {
		t.Errorf("Pages = %d, want 5", res.Pages)
	}
}
