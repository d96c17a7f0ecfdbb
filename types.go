package mdblog

// Post is one Markdown file under the posts directory. Listing calls fill in
// Slug, Title, Date, Excerpt and Link; Body and Meta are only set when a
// single post is loaded.
type Post struct {
	Slug    string
	Title   string
	Date    string
	Excerpt string
	Link    string
	Body    string
	Meta    map[string]any
}

// PostContent is the parsed form of a single post file: its front matter
// mapping and the raw, unrendered Markdown body.
type PostContent struct {
	Meta map[string]any
	Body string
}
