package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/mdblog"
)

// New returns the default page set for a site.
func New(cfg mdblog.SiteConfig) mdblog.ViewFuncs {
	return mdblog.ViewFuncs{
		Index: func(posts []mdblog.Post) templ.Component {
			return Index(cfg, posts)
		},
		Post: func(post mdblog.Post) templ.Component {
			return PostPage(cfg, post)
		},
		NotFound: func() templ.Component {
			return NotFound(cfg)
		},
		ServerError: func() templ.Component {
			return ServerError(cfg)
		},
	}
}

// postHref is the link target of a preview entry.
func postHref(slug string) string {
	return mdblog.PostPath(mdblog.PathEscape(slug))
}

func indexMeta(cfg mdblog.SiteConfig) PageMeta {
	return PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         mdblog.BuildURL(cfg.URL),
		OGType:      "website",
		JSONLD:      mdblog.WebsiteJsonLD(cfg),
	}
}

func postMeta(cfg mdblog.SiteConfig, post mdblog.Post) PageMeta {
	title := cfg.Name
	if post.Title != "" {
		title = post.Title + " | " + cfg.Name
	}
	return PageMeta{
		Title:       title,
		Description: post.Excerpt,
		URL:         mdblog.BuildURL(cfg.URL, "posts", post.Slug),
		OGType:      "article",
		JSONLD:      mdblog.BlogPostingJsonLD(post, cfg),
	}
}

func errorMeta(cfg mdblog.SiteConfig, title string) PageMeta {
	return PageMeta{Title: title + " | " + cfg.Name, OGType: "website"}
}

// jsonLDScript wraps already-marshalled JSON-LD. encoding/json escapes <, >
// and &, so the payload cannot close the script element.
func jsonLDScript(payload string) string {
	if payload == "" {
		return ""
	}
	return `<script type="application/ld+json">` + payload + `</script>`
}
