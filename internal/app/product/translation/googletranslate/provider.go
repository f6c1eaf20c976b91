// Package googletranslate adapts Google Cloud Translation (v2) to the
// catalog's TranslationProvider contract.
package googletranslate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// ErrNoTranslations is returned when the API answers without any result.
var ErrNoTranslations = errors.New("google translate returned no translations")

// Config holds connection settings. Endpoint and HTTPClient are optional.
type Config struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// Provider calls the Cloud Translation REST API.
type Provider struct {
	svc *translate.Service
}

var _ contracts.TranslationProvider = (*Provider)(nil)

// New creates a Provider.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	var opts []option.ClientOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate service: %w", err)
	}
	return &Provider{svc: svc}, nil
}

// Translate implements contracts.TranslationProvider.
func (p *Provider) Translate(ctx context.Context, text string, from, to domain.Language, format contracts.Format) (string, error) {
	resp, err := p.svc.Translations.List([]string{text}, languageTag(to)).
		Source(languageTag(from)).
		Format(string(format)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("google translate %s to %s: %w", from, to, err)
	}
	if resp == nil || len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return "", ErrNoTranslations
	}

	out := resp.Translations[0].TranslatedText
	if format == contracts.FormatText {
		// The API entity-escapes plain text results.
		out = html.UnescapeString(out)
	}
	return out, nil
}

// languageTag maps catalog codes to the tags the API expects.
func languageTag(l domain.Language) string {
	switch l {
	case domain.LangChinese:
		return "zh-CN"
	default:
		return string(l)
	}
}
