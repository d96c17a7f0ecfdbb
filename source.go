package mdblog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eringen/mdblog/markdown"
)

// MarkdownExt is the file suffix that marks a post in the posts directory.
const MarkdownExt = ".md"

// Source reads posts straight from a directory of Markdown files. Nothing is
// kept between calls: every call lists the directory and reads the files
// again, so the files on disk stay the only source of truth.
type Source struct {
	dir string
}

// NewSource returns a Source over dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the directory the Source reads from.
func (s *Source) Dir() string {
	return s.dir
}

// Slugs lists the slugs of every Markdown file in the directory without
// reading the files.
func (s *Source) Slugs() ([]string, error) {
	names, err := s.markdownFiles()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(names))
	for _, name := range names {
		slugs = append(slugs, SlugFromFilename(name))
	}
	return slugs, nil
}

// ListPosts returns one metadata record per Markdown file, in directory
// listing order. Non-Markdown files, and Markdown files whose name does not
// yield a valid slug, are ignored. Any read or parse failure
// aborts the whole listing.
func (s *Source) ListPosts() ([]Post, error) {
	names, err := s.markdownFiles()
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(names))
	for _, name := range names {
		content, err := s.readContent(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		posts = append(posts, postFromMeta(SlugFromFilename(name), content.Meta))
	}
	return posts, nil
}

// LoadContent reads the file for slug and splits it into front matter and
// raw body. The slug is used as given; callers handling untrusted input
// should go through Catalog.GetPost instead.
func (s *Source) LoadContent(slug string) (PostContent, error) {
	return s.readContent(filepath.Join(s.dir, slug+MarkdownExt))
}

func (s *Source) readContent(path string) (PostContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PostContent{}, fmt.Errorf("mdblog: read post: %w", err)
	}
	meta, body, err := markdown.SplitFrontMatter(data)
	if err != nil {
		return PostContent{}, fmt.Errorf("mdblog: %s: %w", path, err)
	}
	return PostContent{Meta: meta, Body: string(body)}, nil
}

func (s *Source) markdownFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("mdblog: list posts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), MarkdownExt) {
			continue
		}
		// Names like ".md" or "...md" give slugs no route can carry.
		if (PostParams{Slug: SlugFromFilename(e.Name())}).Validate() != nil {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// SlugFromFilename strips the Markdown suffix from a file name. The result
// is case-sensitive and otherwise untouched.
func SlugFromFilename(name string) string {
	return strings.TrimSuffix(name, MarkdownExt)
}

// PostPath is the site-relative URL of a post.
func PostPath(slug string) string {
	return "/posts/" + slug
}

func postFromMeta(slug string, meta map[string]any) Post {
	return Post{
		Slug:    slug,
		Title:   metaString(meta, "title"),
		Date:    metaString(meta, "date"),
		Excerpt: metaString(meta, "excerpt"),
		Link:    PostPath(slug),
	}
}

// metaString returns meta[key] as text. Absent keys give "", strings pass
// through untouched and other scalars use their default formatting.
func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// sortNewestFirst orders posts by their date text, descending. Posts with
// equal dates keep their relative order.
func sortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
