package services

import (
	"context"
	"sync"
	"time"
)

const (
	autocompleteDebounce = 350 * time.Millisecond
	autocompleteMinChars = 2
)

// TitleSearcher is what the autocompleter needs from the taxonomy client.
type TitleSearcher interface {
	Search(ctx context.Context, query string) ([]Title, error)
}

// Suggestions is one update delivered to the sink. Open is false when the
// query dropped below the minimum length and the list should close.
type Suggestions struct {
	Query  string
	Titles []Title
	Open   bool
}

// Autocompleter debounces keystrokes into title searches. Every keystroke
// bumps a generation counter and cancels the in-flight request; a response
// reaches the sink only if its generation is still the latest, so a stale
// response can never overwrite state written by a newer one.
type Autocompleter struct {
	searcher TitleSearcher
	sink     func(Suggestions)
	debounce time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func NewAutocompleter(searcher TitleSearcher, sink func(Suggestions)) *Autocompleter {
	return &Autocompleter{
		searcher: searcher,
		sink:     sink,
		debounce: autocompleteDebounce,
	}
}

// OnQueryChange registers a keystroke. Short queries close the suggestion
// list and clear any pending request without issuing a call.
func (a *Autocompleter) OnQueryChange(text string) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.gen++
	gen := a.gen
	a.stopPendingLocked()

	if len([]rune(text)) < autocompleteMinChars {
		a.mu.Unlock()
		a.sink(Suggestions{Query: text, Titles: []Title{}, Open: false})
		return
	}

	a.timer = time.AfterFunc(a.debounce, func() { a.fire(gen, text) })
	a.mu.Unlock()
}

func (a *Autocompleter) fire(gen uint64, text string) {
	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.mu.Unlock()

	titles, err := a.searcher.Search(ctx, text)
	if err != nil {
		// cancelled by a newer keystroke or teardown
		return
	}

	a.mu.Lock()
	stale := a.closed || gen != a.gen
	a.mu.Unlock()
	if stale {
		return
	}
	a.sink(Suggestions{Query: text, Titles: titles, Open: true})
}

// Close tears the autocompleter down, cancelling any pending work.
func (a *Autocompleter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.gen++
	a.stopPendingLocked()
}

func (a *Autocompleter) stopPendingLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
