package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// SplitFrontMatter separates the leading metadata block of source from the
// Markdown body. YAML (---), TOML (+++) and JSON blocks are recognised. When
// source has no metadata block the returned map is empty and body is the
// whole input. Values are passed through exactly as the block decodes them.
func SplitFrontMatter(source []byte) (map[string]any, []byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}
