package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/logging"
)

var (
	// ErrProviderPanic is reported when a provider panics mid-call.
	ErrProviderPanic = errors.New("translation provider panicked")
	// ErrEmptyResponse is reported when a provider returns blank text for non-blank input.
	ErrEmptyResponse = errors.New("translation provider returned empty text")
)

// FieldResult is the outcome of translating one field into one language.
type FieldResult struct {
	Value string
	// Fallback is set when Value is the untranslated source text.
	Fallback bool
	// Err is the provider failure behind a fallback.
	Err error
}

// FieldTranslator translates a single field value and never fails: any
// provider problem yields the source text instead.
type FieldTranslator struct {
	provider contracts.TranslationProvider
	timeout  time.Duration
	logger   logging.Logger
}

// NewFieldTranslator creates a FieldTranslator around provider.
func NewFieldTranslator(provider contracts.TranslationProvider, cfg Config, logger logging.Logger) *FieldTranslator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &FieldTranslator{
		provider: provider,
		timeout:  cfg.effectiveCallTimeout(),
		logger:   logger,
	}
}

// Translate converts text from one language to another.
// Blank input comes back empty and a same-language request comes back
// verbatim; neither reaches the provider.
func (t *FieldTranslator) Translate(ctx context.Context, field domain.Field, text string, from, to domain.Language) FieldResult {
	if strings.TrimSpace(text) == "" {
		return FieldResult{}
	}
	if from == to {
		return FieldResult{Value: text}
	}

	out, err := t.call(ctx, text, from, to, contracts.FormatFor(field))
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		t.logger.WithContext(ctx).Warn("translation.fallback",
			"field", string(field),
			"from", string(from),
			"to", string(to),
			"error", err.Error(),
		)
		return FieldResult{Value: text, Fallback: true, Err: err}
	}

	return FieldResult{Value: out}
}

// call runs the provider under its own deadline. A provider that ignores
// cancellation is abandoned once the deadline passes.
func (t *FieldTranslator) call(ctx context.Context, text string, from, to domain.Language, format contracts.Format) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("%w: %v", ErrProviderPanic, r)}
			}
		}()
		out, err := t.provider.Translate(callCtx, text, from, to, format)
		done <- reply{text: out, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-callCtx.Done():
		return "", fmt.Errorf("translate %s to %s: %w", from, to, callCtx.Err())
	}
}
