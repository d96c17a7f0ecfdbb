// Package mdblog is a small Markdown blog built with Go, Echo, and templ.
// Posts are plain Markdown files with front matter in one directory; mdblog
// lists them, renders them, and either serves the pages or exports them as a
// static site.
//
// Users provide templ components via the ViewFuncs struct (package views has
// a default set), and mdblog handles reading posts, routing and rendering.
package mdblog

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components mdblog calls when rendering pages.
type ViewFuncs struct {
	Index       func(posts []Post) templ.Component
	Post        func(post Post) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the post catalog, views, HTTP routes and the static
// builder.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *Catalog
	Views   ViewFuncs

	logger       *log.Logger
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration and view functions. Routes
// and middleware are registered immediately so the Echo instance can be used
// as an http.Handler without calling Start.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		logger:    log.New("mdblog"),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Catalog = NewCatalog(NewSource(cfg.PostsDir), cfg.SortNewestFirst)

	a.Echo.HideBanner = true
	a.Echo.Logger = a.logger

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Logger returns the logger shared by the server and the builder.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// Start serves the site on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.logger.Infof("serving %s from %s on %s", a.Config.Name, a.Config.PostsDir, a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/posts", handlePostsRedirect)
	e.GET("/posts/:slug", a.handlePost)
}
