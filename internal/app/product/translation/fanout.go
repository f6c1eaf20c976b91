package translation

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

type fieldKey struct {
	field domain.Field
	lang  domain.Language
}

// FanOutTranslator expands a source bundle into one bundle per supported
// language, translating every (field, target language) pair concurrently.
type FanOutTranslator struct {
	fields    *FieldTranslator
	languages domain.Languages
	limit     int
	logger    logging.Logger
}

// NewFanOutTranslator creates a FanOutTranslator for the given language set.
func NewFanOutTranslator(fields *FieldTranslator, languages domain.Languages, cfg Config, logger logging.Logger) *FanOutTranslator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &FanOutTranslator{
		fields:    fields,
		languages: languages,
		limit:     cfg.effectiveMaxConcurrent(),
		logger:    logger,
	}
}

// Languages returns the supported-language set bundles are produced for.
func (f *FanOutTranslator) Languages() domain.Languages {
	return f.languages
}

// Translate returns one bundle per supported language. The source bundle is
// copied verbatim; target bundles hold translations or, per field, the source
// text when the provider failed. It returns only after every call finished.
func (f *FanOutTranslator) Translate(ctx context.Context, source domain.Bundle) domain.BundleSet {
	started := time.Now()
	targets := f.languages.Without(source.Lang)
	fields := domain.TranslatableFields()

	var (
		mu      sync.Mutex
		results = make(map[fieldKey]FieldResult, len(targets)*len(fields))
		g       errgroup.Group
		calls   int
	)
	g.SetLimit(f.limit)

	for _, lang := range targets {
		for _, field := range fields {
			text := source.Get(field)
			if text == "" {
				continue
			}
			calls++
			g.Go(func() error {
				r := f.fields.Translate(ctx, field, text, source.Lang, lang)
				mu.Lock()
				results[fieldKey{field: field, lang: lang}] = r
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	set := make(domain.BundleSet, len(targets)+1)
	src := source
	src.Fallbacks = nil
	src.Placeholder = false
	set[source.Lang] = src

	fallbacks := 0
	for _, lang := range targets {
		b := domain.Bundle{Lang: lang}
		for _, field := range fields {
			r, ok := results[fieldKey{field: field, lang: lang}]
			if !ok {
				continue
			}
			b.Set(field, r.Value)
			if r.Fallback {
				b.Fallbacks = append(b.Fallbacks, field)
				fallbacks++
			}
		}
		set[lang] = b
	}

	f.logger.WithContext(ctx).Debug("translation.fanout.completed",
		"source", string(source.Lang),
		"calls", calls,
		"fallbacks", fallbacks,
		"duration", time.Since(started).String(),
	)

	return set
}
