package mdblog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PostParams are the route parameters of a single post page.
type PostParams struct {
	Slug string `param:"slug" json:"slug"`
}

// Validate checks the slug has the shape of a file-name-derived identifier
// before anything uses it.
func (p PostParams) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Slug,
			validation.Required,
			validation.Length(1, 255),
			validation.By(plainFileName),
		),
	)
	if err != nil {
		return invalidParamsError(err)
	}
	return nil
}

func plainFileName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, 0) {
		return validation.NewError("mdblog.post_params.slug_separator", "must not contain path separators")
	}
	if s == "." || s == ".." {
		return validation.NewError("mdblog.post_params.slug_dot", "must not be a relative path element")
	}
	return nil
}
