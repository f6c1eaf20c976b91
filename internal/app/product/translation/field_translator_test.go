package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/app/product/translation/translationtest"
	"github.com/Komy007/kkshop-sub000/internal/logging/logtest"
)

func TestFieldTranslator_Translate(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name         string
		field        domain.Field
		text         string
		from, to     domain.Language
		provider     func(ctx context.Context, text string, from, to domain.Language, format contracts.Format) (string, error)
		want         FieldResult
		wantCalls    int
		wantWarnings int
		wantErr      error
	}{
		{
			name:      "translates",
			field:     domain.FieldName,
			text:      "Snail Mucin Essence",
			from:      domain.LangEnglish,
			to:        domain.LangKorean,
			want:      FieldResult{Value: "ko:Snail Mucin Essence"},
			wantCalls: 1,
		},
		{
			name:  "empty input is absent",
			field: domain.FieldShortDesc,
			text:  "",
			from:  domain.LangEnglish,
			to:    domain.LangKorean,
			want:  FieldResult{},
		},
		{
			name:  "blank input is absent",
			field: domain.FieldShortDesc,
			text:  "  \n ",
			from:  domain.LangEnglish,
			to:    domain.LangKorean,
			want:  FieldResult{},
		},
		{
			name:  "same language returns source verbatim",
			field: domain.FieldName,
			text:  "스네일 에센스",
			from:  domain.LangKorean,
			to:    domain.LangKorean,
			want:  FieldResult{Value: "스네일 에센스"},
		},
		{
			name:  "provider error falls back to source",
			field: domain.FieldName,
			text:  "Snail Mucin Essence",
			from:  domain.LangEnglish,
			to:    domain.LangKhmer,
			provider: func(context.Context, string, domain.Language, domain.Language, contracts.Format) (string, error) {
				return "", errBoom
			},
			want:         FieldResult{Value: "Snail Mucin Essence", Fallback: true},
			wantCalls:    1,
			wantWarnings: 1,
			wantErr:      errBoom,
		},
		{
			name:  "empty response falls back to source",
			field: domain.FieldSEOKeywords,
			text:  "snail, essence",
			from:  domain.LangEnglish,
			to:    domain.LangChinese,
			provider: func(context.Context, string, domain.Language, domain.Language, contracts.Format) (string, error) {
				return "   ", nil
			},
			want:         FieldResult{Value: "snail, essence", Fallback: true},
			wantCalls:    1,
			wantWarnings: 1,
			wantErr:      ErrEmptyResponse,
		},
		{
			name:  "panic falls back to source",
			field: domain.FieldName,
			text:  "Snail Mucin Essence",
			from:  domain.LangEnglish,
			to:    domain.LangKorean,
			provider: func(context.Context, string, domain.Language, domain.Language, contracts.Format) (string, error) {
				panic("malformed payload")
			},
			want:         FieldResult{Value: "Snail Mucin Essence", Fallback: true},
			wantCalls:    1,
			wantWarnings: 1,
			wantErr:      ErrProviderPanic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &translationtest.Provider{Func: tt.provider}
			rec := logtest.New()
			tr := NewFieldTranslator(provider, Config{CallTimeout: time.Second}, rec)

			got := tr.Translate(context.Background(), tt.field, tt.text, tt.from, tt.to)

			assert.Equal(t, tt.want.Value, got.Value)
			assert.Equal(t, tt.want.Fallback, got.Fallback)
			if tt.wantErr != nil {
				assert.ErrorIs(t, got.Err, tt.wantErr)
			} else {
				assert.NoError(t, got.Err)
			}
			assert.Equal(t, tt.wantCalls, provider.CallCount())
			assert.Len(t, rec.Find("warn", "translation.fallback"), tt.wantWarnings)
		})
	}
}

func TestFieldTranslator_FormatFollowsField(t *testing.T) {
	provider := &translationtest.Provider{}
	tr := NewFieldTranslator(provider, Config{}, nil)

	tr.Translate(context.Background(), domain.FieldDetailDesc, "<p>Hydrating</p>", domain.LangEnglish, domain.LangKorean)
	tr.Translate(context.Background(), domain.FieldName, "Essence", domain.LangEnglish, domain.LangKorean)

	calls := provider.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, contracts.FormatHTML, calls[0].Format)
	assert.Equal(t, contracts.FormatText, calls[1].Format)
}

func TestFieldTranslator_TimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	provider := &translationtest.Provider{
		Func: func(context.Context, string, domain.Language, domain.Language, contracts.Format) (string, error) {
			// Ignores cancellation on purpose.
			<-release
			return "late", nil
		},
	}
	rec := logtest.New()
	tr := NewFieldTranslator(provider, Config{CallTimeout: 20 * time.Millisecond}, rec)

	started := time.Now()
	got := tr.Translate(context.Background(), domain.FieldName, "Essence", domain.LangEnglish, domain.LangKhmer)

	assert.Less(t, time.Since(started), time.Second)
	assert.True(t, got.Fallback)
	assert.Equal(t, "Essence", got.Value)
	assert.ErrorIs(t, got.Err, context.DeadlineExceeded)

	warnings := rec.Find("warn", "translation.fallback")
	require.Len(t, warnings, 1)
	to, _ := warnings[0].Arg("to")
	assert.Equal(t, "km", to)
}

func TestFieldTranslator_CallerCancellation(t *testing.T) {
	provider := &translationtest.Provider{
		Func: func(ctx context.Context, _ string, _, _ domain.Language, _ contracts.Format) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	tr := NewFieldTranslator(provider, Config{CallTimeout: time.Minute}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := tr.Translate(ctx, domain.FieldName, "Essence", domain.LangEnglish, domain.LangKorean)
	assert.True(t, got.Fallback)
	assert.ErrorIs(t, got.Err, context.Canceled)
}

func TestDisabledProvider(t *testing.T) {
	_, err := DisabledProvider{}.Translate(context.Background(), "x", domain.LangEnglish, domain.LangKorean, contracts.FormatText)
	assert.ErrorIs(t, err, ErrProviderDisabled)
}
