package mdblog

import (
	"net/http"
	"net/url"

	goerrors "github.com/goliatone/go-errors"
	"github.com/labstack/echo/v4"
)

func (a *App) handleIndex(c echo.Context) error {
	posts, err := a.Catalog.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(posts))
}

func (a *App) handlePost(c echo.Context) error {
	var params PostParams
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &params); err != nil {
		return invalidParamsError(err)
	}
	// Echo matches on RawPath when the request has one, leaving params
	// escaped; otherwise they come from the already-decoded Path.
	if c.Request().URL.RawPath != "" {
		slug, err := url.PathUnescape(params.Slug)
		if err != nil {
			return invalidParamsError(err)
		}
		params.Slug = slug
	}
	if ImageContentType(params.Slug) != "" {
		isPost, err := a.Catalog.HasPost(params.Slug)
		if err != nil {
			return err
		}
		if !isPost {
			return a.handleImage(c, params.Slug)
		}
	}
	post, err := a.Catalog.GetPost(params)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post))
}

func (a *App) handleImage(c echo.Context, name string) error {
	data, err := a.Catalog.Source().ReadImage(name)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, ImageContentType(name), data)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Catalog.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Catalog.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handlePostsRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// httpErrorHandler turns classified errors into status codes. Only slugs the
// catalog rejected become 404s; a missing posts directory stays a 500.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch {
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		err = echo.NewHTTPError(http.StatusBadRequest, "invalid post identifier")
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		err = echo.ErrNotFound
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
