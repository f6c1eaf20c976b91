package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguages(t *testing.T) {
	t.Run("default set round trips", func(t *testing.T) {
		langs, err := ParseLanguages("ko, en ,KM,zh")
		require.NoError(t, err)
		assert.Equal(t, DefaultLanguages(), langs)
		assert.Equal(t, "ko,en,km,zh", langs.String())
	})

	t.Run("empty entries are skipped", func(t *testing.T) {
		langs, err := ParseLanguages("en,,ko,")
		require.NoError(t, err)
		assert.Equal(t, Languages{LangEnglish, LangKorean}, langs)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := ParseLanguages(" , ")
		assert.Error(t, err)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := ParseLanguages("en,ko,en")
		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("malformed code", func(t *testing.T) {
		_, err := ParseLanguages("en,zh-CN")
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})
}

func TestLanguages_Without(t *testing.T) {
	langs := DefaultLanguages()

	targets := langs.Without(LangEnglish)
	assert.Equal(t, Languages{LangKorean, LangKhmer, LangChinese}, targets)
	assert.Len(t, langs, 4, "receiver must not be modified")

	assert.Equal(t, langs, langs.Without(Language("fr")))
}

func TestLanguages_Contains(t *testing.T) {
	langs := DefaultLanguages()
	assert.True(t, langs.Contains(LangKhmer))
	assert.False(t, langs.Contains(Language("fr")))
	assert.False(t, langs.Contains(""))
}
