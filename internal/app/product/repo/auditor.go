package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
	"github.com/Komy007/kkshop-sub000/internal/models/m_product"
	"github.com/Komy007/kkshop-sub000/internal/models/m_translation"
	"github.com/Komy007/kkshop-sub000/internal/pkg/query"
)

// Auditor implements contracts.TranslationAuditor for Spanner.
type Auditor struct {
	client *spanner.Client
}

var _ contracts.TranslationAuditor = (*Auditor)(nil)

// NewAuditor creates a new Auditor.
func NewAuditor(client *spanner.Client) *Auditor {
	return &Auditor{client: client}
}

func missingStatement(lang domain.Language) spanner.Statement {
	return query.From(m_product.TableName+" p").
		Select("p."+m_product.ProductID, "p."+m_product.SKU).
		LeftJoin(m_translation.TableName+" t",
			query.ColumnsEq("t."+m_translation.ProductID, "p."+m_product.ProductID),
			query.Eq("t."+m_translation.LangCode, string(lang)),
		).
		Where(query.Eq("p."+m_product.Status, string(domain.StatusActive))).
		Where(query.IsNull("t."+m_translation.ProductID)).
		OrderBy("p."+m_product.ProductID, query.Asc).
		Build()
}

// MissingTranslations lists ACTIVE products lacking a bundle, one query per language.
func (a *Auditor) MissingTranslations(ctx context.Context, langs domain.Languages) ([]contracts.MissingTranslation, error) {
	var out []contracts.MissingTranslation

	for _, lang := range langs {
		iter := a.client.Single().Query(ctx, missingStatement(lang))
		err := iter.Do(func(row *spanner.Row) error {
			m := contracts.MissingTranslation{Lang: lang}
			if err := row.Columns(&m.ProductID, &m.SKU); err != nil {
				return err
			}
			out = append(out, m)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to audit %s translations: %w", lang, err)
		}
	}

	return out, nil
}
