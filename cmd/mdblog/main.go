package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/eringen/mdblog"
	"github.com/eringen/mdblog/views"
)

// version is set at build time via ldflags.
var version = "dev"

// siteFlags are shared by serve and build. Every flag can also come from the
// environment or a .env file in the working directory.
type siteFlags struct {
	Name        string `help:"Site name." env:"SITE_NAME" default:"Blog"`
	URL         string `name:"url" help:"Canonical site URL." env:"SITE_URL" default:"http://localhost:3000"`
	Description string `help:"Site description for feeds and meta tags." env:"SITE_DESCRIPTION"`
	Author      string `help:"Author name for structured data." env:"SITE_AUTHOR"`

	Posts  string `short:"p" help:"Directory holding the Markdown posts." env:"POSTS_DIR" default:"posts" type:"path"`
	Static string `help:"Directory with extra static files served under /public." env:"STATIC_DIR" default:"public" type:"path"`

	NewestFirst bool `help:"Order listings by date, newest first." env:"SORT_NEWEST_FIRST"`
	Verbose     bool `short:"v" help:"Log debug output."`
}

func (f *siteFlags) config() mdblog.SiteConfig {
	return mdblog.SiteConfig{
		Name:            f.Name,
		URL:             f.URL,
		Description:     f.Description,
		Author:          f.Author,
		PostsDir:        f.Posts,
		SortNewestFirst: f.NewestFirst,
	}
}

func (f *siteFlags) app(cfg mdblog.SiteConfig) *mdblog.App {
	logger := log.New("mdblog")
	if f.Verbose {
		logger.SetLevel(log.DEBUG)
	}
	return mdblog.New(cfg, views.New(cfg),
		mdblog.WithStaticDir(f.Static),
		mdblog.WithLogger(logger),
	)
}

type cli struct {
	Site siteFlags `embed:""`

	Version kong.VersionFlag `help:"Print the mdblog version."`

	Serve serveCmd `cmd:"" help:"Serve the blog over HTTP."`
	Build buildCmd `cmd:"" help:"Export the blog as static HTML."`
	New   newCmd   `cmd:"" help:"Create a new blog directory with a sample post."`
}

type serveCmd struct {
	Addr string `short:"a" help:"Listen address." env:"ADDR" default:":3000"`
}

func (c *serveCmd) Run(site *siteFlags) error {
	cfg := site.config()
	cfg.Addr = c.Addr
	a := site.app(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

type buildCmd struct {
	Out string `short:"o" help:"Output directory." env:"OUTPUT_DIR" default:"out" type:"path"`
}

func (c *buildCmd) Run(site *siteFlags) error {
	cfg := site.config()
	cfg.OutputDir = c.Out
	a := site.app(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d pages, %d images and %d files to %s\n", res.Pages, res.Images, res.Files, res.OutputDir)
	return nil
}

type newCmd struct {
	Dir string `arg:"" help:"Directory to create."`
}

func (c *newCmd) Run() error {
	return runNew(c.Dir)
}

func main() {
	// A missing .env is fine; flags and the real environment still apply.
	_ = godotenv.Load()

	var c cli
	ctx := kong.Parse(&c,
		kong.Name("mdblog"),
		kong.Description("A minimal Markdown blog: serve a directory of posts or export it as static HTML."),
		kong.UsageOnError(),
		kong.Vars{"version": "mdblog " + version},
		kong.Bind(&c.Site),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
