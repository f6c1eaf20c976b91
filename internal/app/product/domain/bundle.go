package domain

import (
	"fmt"
	"strings"
)

// Field names a translatable piece of product content.
type Field string

// Translatable fields, in storage order.
const (
	FieldName        Field = "name"
	FieldShortDesc   Field = "short_desc"
	FieldDetailDesc  Field = "detail_desc"
	FieldSEOKeywords Field = "seo_keywords"
)

// TranslatableFields returns every translatable field in a fixed order.
func TranslatableFields() []Field {
	return []Field{FieldName, FieldShortDesc, FieldDetailDesc, FieldSEOKeywords}
}

// IsMarkup reports whether the field carries HTML that must survive translation.
func (f Field) IsMarkup() bool {
	return f == FieldDetailDesc
}

// Bundle is the translated content of one product in one language.
// Empty strings mean the field is absent.
type Bundle struct {
	Lang        Language
	Name        string
	ShortDesc   string
	DetailDesc  string
	SEOKeywords string

	// Fallbacks lists fields whose value is the untranslated source text
	// because the provider call failed or timed out.
	Fallbacks []Field

	// Placeholder is set on bundles synthesized by the read side when the
	// stored translation is missing.
	Placeholder bool
}

// Get returns the value of f.
func (b Bundle) Get(f Field) string {
	switch f {
	case FieldName:
		return b.Name
	case FieldShortDesc:
		return b.ShortDesc
	case FieldDetailDesc:
		return b.DetailDesc
	case FieldSEOKeywords:
		return b.SEOKeywords
	default:
		return ""
	}
}

// Set assigns v to f. Unknown fields are ignored.
func (b *Bundle) Set(f Field, v string) {
	switch f {
	case FieldName:
		b.Name = v
	case FieldShortDesc:
		b.ShortDesc = v
	case FieldDetailDesc:
		b.DetailDesc = v
	case FieldSEOKeywords:
		b.SEOKeywords = v
	}
}

// IsDegraded reports whether any field fell back to source text.
func (b Bundle) IsDegraded() bool {
	return len(b.Fallbacks) > 0
}

// PlaceholderBundle is what the catalog renders when a product has no stored
// translation for lang.
func PlaceholderBundle(lang Language, sku string) Bundle {
	return Bundle{
		Lang:        lang,
		Name:        fmt.Sprintf("[%s]", sku),
		Placeholder: true,
	}
}

// BundleSet maps each language to its bundle for a single product.
type BundleSet map[Language]Bundle

// Covers checks the write-side invariant: exactly one bundle per supported
// language, nothing extra, each named.
func (s BundleSet) Covers(langs Languages) error {
	if len(s) != len(langs) {
		return fmt.Errorf("%w: have %d bundles for %d languages", ErrIncompleteBundleSet, len(s), len(langs))
	}
	for _, lang := range langs {
		b, ok := s[lang]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompleteBundleSet, lang)
		}
		if b.Lang != lang {
			return fmt.Errorf("%w: bundle keyed %s carries %s", ErrIncompleteBundleSet, lang, b.Lang)
		}
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("%w: empty name for %s", ErrIncompleteBundleSet, lang)
		}
	}
	return nil
}

// FallbackCount returns the number of degraded fields across the set.
func (s BundleSet) FallbackCount() int {
	n := 0
	for _, b := range s {
		n += len(b.Fallbacks)
	}
	return n
}
