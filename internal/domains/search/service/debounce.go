package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	bookmodel "readerpeak-backend/internal/domains/book/model"
)

// DefaultQuiescence is how long input must stay unchanged before a
// search fires.
const DefaultQuiescence = 300 * time.Millisecond

// Debouncer coalesces a stream of partial queries into searches that
// only run after the input has been quiet for a full window. There is
// at most one pending timer: every Input cancels the previous one. A
// search whose query is no longer the current input is discarded
// instead of delivered, so results never regress to an older query.
type Debouncer struct {
	service    Service
	quiescence time.Duration
	deliver    func(query string, results []bookmodel.Book)

	mu      sync.Mutex
	timer   *time.Timer
	current string
	closed  bool
}

// NewDebouncer wires a debouncer to a search service. deliver is
// called from the timer goroutine with the query that produced the
// results.
func NewDebouncer(service Service, quiescence time.Duration, deliver func(query string, results []bookmodel.Book)) *Debouncer {
	if quiescence <= 0 {
		quiescence = DefaultQuiescence
	}
	return &Debouncer{
		service:    service,
		quiescence: quiescence,
		deliver:    deliver,
	}
}

// Input registers the latest query and restarts the quiescence window.
// Safe for concurrent use.
func (d *Debouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.current = query
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiescence, func() {
		d.fire(query)
	})
}

// fire runs the search and delivers the results unless the input moved
// on while the search was in flight.
func (d *Debouncer) fire(query string) {
	d.mu.Lock()
	if d.closed || d.current != query {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	results, err := d.service.Search(context.Background(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("debounced search failed")
		return
	}

	d.mu.Lock()
	stale := d.closed || d.current != query
	d.mu.Unlock()
	if stale {
		return
	}

	d.deliver(query, results)
}

// Close cancels any pending search. Further Input calls are ignored.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
