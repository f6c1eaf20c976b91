// Package translationtest provides a scriptable TranslationProvider for tests.
package translationtest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Komy007/kkshop-sub000/internal/app/product/contracts"
	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// Call records the arguments of one Translate call.
type Call struct {
	Text   string
	From   domain.Language
	To     domain.Language
	Format contracts.Format
}

// Provider answers Translate with Func, or with "<to>:<text>" when Func is nil.
// It counts calls and tracks the peak number of concurrent calls.
type Provider struct {
	Func func(ctx context.Context, text string, from, to domain.Language, format contracts.Format) (string, error)

	mu       sync.Mutex
	calls    []Call
	inFlight atomic.Int64
	peak     atomic.Int64
}

var _ contracts.TranslationProvider = (*Provider)(nil)

// Translate implements contracts.TranslationProvider.
func (p *Provider) Translate(ctx context.Context, text string, from, to domain.Language, format contracts.Format) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Call{Text: text, From: from, To: to, Format: format})
	p.mu.Unlock()

	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if p.Func != nil {
		return p.Func(ctx, text, from, to, format)
	}
	return Prefix(to, text), nil
}

// Calls returns a snapshot of recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallCount returns the number of Translate calls so far.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// Peak returns the highest number of simultaneous Translate calls observed.
func (p *Provider) Peak() int {
	return int(p.peak.Load())
}

// Prefix is the default translation: the target code, a colon, the text.
func Prefix(to domain.Language, text string) string {
	return fmt.Sprintf("%s:%s", to, text)
}
