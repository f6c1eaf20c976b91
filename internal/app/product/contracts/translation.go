package contracts

import (
	"context"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// Format tells the provider how to treat the input text.
type Format string

const (
	// FormatText is plain text.
	FormatText Format = "text"
	// FormatHTML is markup; tags and attributes must survive translation.
	FormatHTML Format = "html"
)

// FormatFor returns the format a field is translated in.
func FormatFor(f domain.Field) Format {
	if f.IsMarkup() {
		return FormatHTML
	}
	return FormatText
}

// TranslationProvider is an external machine-translation service.
// Calls may be slow or fail; callers must not treat a failure as fatal.
type TranslationProvider interface {
	Translate(ctx context.Context, text string, from, to domain.Language, format Format) (string, error)
}
