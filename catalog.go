package mdblog

// Catalog is the read side used by pages. It only ever loads posts whose
// slug was just enumerated from the posts directory, so a request can never
// name a path outside it.
type Catalog struct {
	source          *Source
	sortNewestFirst bool
}

// NewCatalog creates a Catalog backed by the given Source.
func NewCatalog(s *Source, sortNewestFirst bool) *Catalog {
	return &Catalog{source: s, sortNewestFirst: sortNewestFirst}
}

// Source returns the underlying Source.
func (c *Catalog) Source() *Source {
	return c.source
}

// ListPosts returns the metadata of every post.
func (c *Catalog) ListPosts() ([]Post, error) {
	posts, err := c.source.ListPosts()
	if err != nil {
		return nil, err
	}
	if c.sortNewestFirst {
		sortNewestFirst(posts)
	}
	return posts, nil
}

// GetPost validates params, checks the slug against the current directory
// listing and loads the post. Unknown slugs fail before any path is built.
func (c *Catalog) GetPost(params PostParams) (Post, error) {
	if err := params.Validate(); err != nil {
		return Post{}, err
	}
	known, err := c.HasPost(params.Slug)
	if err != nil {
		return Post{}, err
	}
	if !known {
		return Post{}, unknownPostError(c.source.Dir(), params.Slug)
	}
	content, err := c.source.LoadContent(params.Slug)
	if err != nil {
		return Post{}, err
	}
	post := postFromMeta(params.Slug, content.Meta)
	post.Body = content.Body
	post.Meta = content.Meta
	return post, nil
}

// HasPost reports whether slug names a post in the directory right now.
func (c *Catalog) HasPost(slug string) (bool, error) {
	slugs, err := c.source.Slugs()
	if err != nil {
		return false, err
	}
	for _, s := range slugs {
		if s == slug {
			return true, nil
		}
	}
	return false, nil
}
