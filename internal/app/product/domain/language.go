package domain

import (
	"fmt"
	"strings"
)

// Language is a display-language code such as "ko" or "en".
type Language string

// Languages served by the storefront out of the box.
const (
	LangKorean  Language = "ko"
	LangEnglish Language = "en"
	LangKhmer   Language = "km"
	LangChinese Language = "zh"
)

// Languages is an ordered set of supported languages.
// Every ACTIVE product has exactly one Bundle per member.
type Languages []Language

// DefaultLanguages returns the storefront's supported-language set.
func DefaultLanguages() Languages {
	return Languages{LangKorean, LangEnglish, LangKhmer, LangChinese}
}

// ParseLanguages parses a comma-separated list such as "ko,en,km,zh".
func ParseLanguages(csv string) (Languages, error) {
	parts := strings.Split(csv, ",")
	out := make(Languages, 0, len(parts))
	seen := make(map[Language]struct{}, len(parts))

	for _, part := range parts {
		code := strings.ToLower(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		if !isLanguageCode(code) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
		}
		lang := Language(code)
		if _, dup := seen[lang]; dup {
			return nil, fmt.Errorf("duplicate language %q", code)
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("language list is empty")
	}
	return out, nil
}

// Contains reports whether l is a member of the set.
func (ls Languages) Contains(l Language) bool {
	for _, candidate := range ls {
		if candidate == l {
			return true
		}
	}
	return false
}

// Without returns the set minus l, preserving order. This is the target-language
// set for a submission written in l.
func (ls Languages) Without(l Language) Languages {
	out := make(Languages, 0, len(ls))
	for _, candidate := range ls {
		if candidate != l {
			out = append(out, candidate)
		}
	}
	return out
}

// Strings returns the codes as plain strings.
func (ls Languages) Strings() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l)
	}
	return out
}

// String joins the codes with commas.
func (ls Languages) String() string {
	return strings.Join(ls.Strings(), ",")
}

// isLanguageCode accepts two or three lowercase ASCII letters.
func isLanguageCode(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
