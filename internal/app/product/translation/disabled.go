package translation

import (
	"context"
	"errors"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// ErrProviderDisabled is returned by DisabledProvider for every call.
var ErrProviderDisabled = errors.New("translation provider disabled")

// DisabledProvider stands in when no translation service is configured.
// Every target bundle then carries the source text.
type DisabledProvider struct{}

var _ contracts.TranslationProvider = DisabledProvider{}

func (DisabledProvider) Translate(context.Context, string, domain.Language, domain.Language, contracts.Format) (string, error) {
	return "", ErrProviderDisabled
}
