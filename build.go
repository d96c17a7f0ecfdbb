package mdblog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// BuildResult summarises a static export.
type BuildResult struct {
	OutputDir string
	Pages     int
	Images    int
	Files     int
}

// Build renders the whole site into Config.OutputDir:
//
//	index.html, posts/index.html, 404.html, posts/{slug}.html, posts/{image},
//	sitemap.xml, feed.xml, public/style.css and the user's static files.
//
// Pages are rendered one after another; the first failure aborts the build.
// Existing files in the output directory are overwritten, never removed.
func (a *App) Build(ctx context.Context) (*BuildResult, error) {
	out := a.Config.OutputDir
	res := &BuildResult{OutputDir: out}

	posts, err := a.Catalog.ListPosts()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == "index" {
			return nil, fmt.Errorf("mdblog: post %q would overwrite the listing at posts/index.html", p.Slug+MarkdownExt)
		}
	}
	a.logger.Infof("building %d posts from %s into %s", len(posts), a.Config.PostsDir, out)

	// posts/index.html backs the header's /posts link, which the server
	// answers with a redirect.
	for _, rel := range []string{"index.html", filepath.Join("posts", "index.html")} {
		if err := a.writeComponent(ctx, rel, a.Views.Index(posts)); err != nil {
			return nil, err
		}
		res.Pages++
	}

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		post, err := a.Catalog.GetPost(PostParams{Slug: p.Slug})
		if err != nil {
			return nil, fmt.Errorf("mdblog: build %s: %w", p.Slug, err)
		}
		if err := a.writeComponent(ctx, filepath.Join("posts", p.Slug+".html"), a.Views.Post(post)); err != nil {
			return nil, err
		}
		res.Pages++
	}

	if err := a.writeComponent(ctx, "404.html", a.Views.NotFound()); err != nil {
		return nil, err
	}
	res.Pages++

	sitemap, err := BuildSitemap(a.Config, posts)
	if err != nil {
		return nil, fmt.Errorf("mdblog: encode sitemap: %w", err)
	}
	if err := a.writeFile("sitemap.xml", sitemap); err != nil {
		return nil, err
	}
	feed, err := BuildFeed(a.Config, posts)
	if err != nil {
		return nil, fmt.Errorf("mdblog: encode feed: %w", err)
	}
	if err := a.writeFile("feed.xml", feed); err != nil {
		return nil, err
	}
	res.Files += 2

	n, err := a.copyImages(ctx)
	if err != nil {
		return nil, err
	}
	res.Images = n

	n, err = a.copyAssets()
	if err != nil {
		return nil, err
	}
	res.Files += n

	a.logger.Infof("build done: %d pages, %d images, %d files", res.Pages, res.Images, res.Files)
	return res, nil
}

func (a *App) writeComponent(ctx context.Context, rel string, cmp templ.Component) error {
	page, err := RenderBytes(ctx, cmp)
	if err != nil {
		return fmt.Errorf("mdblog: render %s: %w", rel, err)
	}
	return a.writeFile(rel, page)
}

func (a *App) writeFile(rel string, data []byte) error {
	target := filepath.Join(a.Config.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mdblog: create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("mdblog: write %s: %w", rel, err)
	}
	a.logger.Debugf("wrote %s (%d bytes)", rel, len(data))
	return nil
}

func (a *App) copyImages(ctx context.Context) (int, error) {
	names, err := a.Catalog.Source().Images()
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		data, err := a.Catalog.Source().ReadImage(name)
		if err != nil {
			return 0, err
		}
		if err := a.writeFile(filepath.Join("posts", name), data); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

// copyAssets writes the embedded stylesheet and mirrors the user's static
// directory under public/. favicon.svg and robots.txt are also placed at the
// root, where the server exposes them.
func (a *App) copyAssets() (int, error) {
	css, err := fs.ReadFile(EmbeddedAssets, "embedded/style.css")
	if err != nil {
		return 0, err
	}
	if err := a.writeFile(filepath.Join("public", "style.css"), css); err != nil {
		return 0, err
	}
	count := 1

	if _, err := os.Stat(a.staticDir); errors.Is(err, fs.ErrNotExist) {
		return count, nil
	}
	err = filepath.WalkDir(a.staticDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.staticDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("mdblog: read static %s: %w", rel, err)
		}
		if err := a.writeFile(filepath.Join("public", rel), data); err != nil {
			return err
		}
		count++
		if rel == "favicon.svg" || rel == "robots.txt" {
			if err := a.writeFile(rel, data); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}
