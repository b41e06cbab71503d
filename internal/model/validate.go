package model

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	errFieldsRequired = validation.NewError("validation_fields_required", "please fill in all fields")
	errInvalidURL     = validation.NewError("validation_url_invalid", "please enter a valid URL")
	errInvalidColor   = validation.NewError("validation_color_invalid", "please enter a valid hex color code")
	errNameRequired   = validation.NewError("validation_name_required", "please enter a name for the category")
)

// Schemes that require a host to form an absolute URL.
var hostSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// BookmarkInput is the user-editable part of a Bookmark.
type BookmarkInput struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Normalize trims surrounding whitespace from every field.
func (in BookmarkInput) Normalize() BookmarkInput {
	return BookmarkInput{
		Name:     strings.TrimSpace(in.Name),
		URL:      strings.TrimSpace(in.URL),
		Category: strings.TrimSpace(in.Category),
	}
}

// Validate checks that name and URL are present and the URL is absolute.
func (in BookmarkInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.ErrorObject(errFieldsRequired)),
		validation.Field(&in.URL, validation.Required.ErrorObject(errFieldsRequired), validation.By(absoluteURL)),
	)
}

// CategoryInput is the user-editable part of a Category.
type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Normalize trims the name and canonicalizes the color.
func (in CategoryInput) Normalize() CategoryInput {
	return CategoryInput{
		Name:  strings.TrimSpace(in.Name),
		Color: NormalizeColor(in.Color),
	}
}

// Validate checks the name is present and the color, if set, is #RRGGBB.
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.ErrorObject(errNameRequired)),
		validation.Field(&in.Color, validation.Match(hexColor).ErrorObject(errInvalidColor)),
	)
}

// ValidateColor checks a normalized color is a 6-digit hex string.
func ValidateColor(color string) error {
	return validation.Validate(color,
		validation.Required.ErrorObject(errInvalidColor),
		validation.Match(hexColor).ErrorObject(errInvalidColor),
	)
}

// ValidateCategoryName checks a trimmed category name is not empty.
func ValidateCategoryName(name string) error {
	return validation.Validate(name, validation.Required.ErrorObject(errNameRequired))
}

// absoluteURL accepts what a browser URL constructor accepts without a base:
// a scheme is mandatory and web schemes need a host.
func absoluteURL(value interface{}) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return errInvalidURL
	}
	if hostSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return errInvalidURL
	}
	return nil
}
