package mdblog

import "github.com/labstack/gommon/log"

// SiteConfig holds all configuration for an mdblog site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr      string // Listen address (default ":3000")
	PostsDir  string // Markdown source directory (default "posts")
	OutputDir string // Static export directory (default "out")

	// SortNewestFirst orders listings by the date field, descending.
	// Off by default: listings keep directory order.
	SortNewestFirst bool
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default logger used by the server and the static
// builder.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
