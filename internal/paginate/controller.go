// Package paginate tracks the pages fetched for the current query key.
//
// The Controller is plain state: it decides which request to issue and
// whether an arriving result still belongs to the current key, but never
// performs I/O itself. The TUI owns one and mutates it only from its Update
// loop, so no locking is needed.
package paginate

import (
	"github.com/mmcdole/photodeck/internal/domain"
)

// Request is one page fetch the caller should perform
type Request struct {
	Generation uint64
	Page       int
	Filters    domain.PhotoFilters
}

// Query converts the request into the fetch client's input
func (r Request) Query() domain.PageQuery {
	return domain.PageQuery{Page: r.Page, Filters: r.Filters}
}

// Controller holds the fetched pages of one query key at a time
type Controller struct {
	filters  domain.PhotoFilters
	started  bool
	gen      uint64
	pages    []domain.Page
	items    []domain.Photo // flattened pages, append-only per generation
	inFlight *Request
	lastReq  *Request // most recent request, kept for Retry
	err      error
}

// New returns an idle controller with no key
func New() *Controller {
	return &Controller{}
}

// Reset switches to filters. When filters equal the current key (and a
// sequence has already started) it does nothing and returns false.
// Otherwise all pages are discarded, the generation advances so any
// in-flight result is ignored on arrival, and the page-1 request is
// returned.
func (c *Controller) Reset(filters domain.PhotoFilters) (Request, bool) {
	if c.started && filters == c.filters {
		return Request{}, false
	}
	return c.restart(filters), true
}

// Reload restarts the current key from page 1 even though it is unchanged
func (c *Controller) Reload() Request {
	return c.restart(c.filters)
}

func (c *Controller) restart(filters domain.PhotoFilters) Request {
	c.filters = filters
	c.started = true
	c.gen++
	c.pages = nil
	c.items = nil
	c.err = nil
	req := Request{Generation: c.gen, Page: 1, Filters: filters}
	c.inFlight = &req
	c.lastReq = &req
	return req
}

// LoadNext returns the request for the next page, or false when a fetch is
// already in flight, the last page reported no more data, or the last
// fetch failed (see Retry).
func (c *Controller) LoadNext() (Request, bool) {
	if !c.started || c.inFlight != nil || c.err != nil {
		return Request{}, false
	}
	if !c.HasNextPage() {
		return Request{}, false
	}
	last := c.pages[len(c.pages)-1]
	req := Request{Generation: c.gen, Page: last.NextPage, Filters: c.filters}
	c.inFlight = &req
	c.lastReq = &req
	return req, true
}

// Retry re-issues the request that failed. No-op unless in the error state.
func (c *Controller) Retry() (Request, bool) {
	if c.err == nil || c.lastReq == nil || c.inFlight != nil {
		return Request{}, false
	}
	c.err = nil
	req := *c.lastReq
	c.inFlight = &req
	return req, true
}

// Resolve records the outcome of req. Results from an older generation are
// dropped and Resolve returns false.
func (c *Controller) Resolve(req Request, page domain.Page, err error) bool {
	if req.Generation != c.gen {
		return false
	}
	if c.inFlight == nil || c.inFlight.Page != req.Page {
		// Duplicate or unexpected delivery for this generation
		return false
	}
	c.inFlight = nil
	if err != nil {
		c.err = err
		return true
	}
	c.err = nil
	c.pages = append(c.pages, page)
	c.items = append(c.items, page.Items...)
	return true
}

// Filters returns the current query key
func (c *Controller) Filters() domain.PhotoFilters { return c.filters }

// Generation identifies the current key's lifetime
func (c *Controller) Generation() uint64 { return c.gen }

// Items returns every loaded photo in fetch order. Callers must not modify
// the returned slice.
func (c *Controller) Items() []domain.Photo { return c.items }

// Len returns the number of loaded photos
func (c *Controller) Len() int { return len(c.items) }

// Pages returns the number of pages loaded for the current key
func (c *Controller) Pages() int { return len(c.pages) }

// Err returns the last fetch error, if any
func (c *Controller) Err() error { return c.err }

// IsError reports whether the last fetch failed
func (c *Controller) IsError() bool { return c.err != nil }

// IsLoading reports whether the first page of the current key is in flight
func (c *Controller) IsLoading() bool {
	return c.inFlight != nil && c.inFlight.Page == 1 && len(c.pages) == 0
}

// IsFetchingNextPage reports whether a later page is in flight
func (c *Controller) IsFetchingNextPage() bool {
	return c.inFlight != nil && len(c.pages) > 0
}

// InFlight reports whether any fetch is outstanding
func (c *Controller) InFlight() bool { return c.inFlight != nil }

// HasNextPage reports whether the latest page says more data exists
func (c *Controller) HasNextPage() bool {
	if len(c.pages) == 0 {
		return false
	}
	last := c.pages[len(c.pages)-1]
	return last.HasMore && last.NextPage > 0
}

// IsEmpty reports a settled key that produced no photos at all
func (c *Controller) IsEmpty() bool {
	return c.started && c.inFlight == nil && c.err == nil && len(c.pages) > 0 && len(c.items) == 0
}

// Total returns the source total reported with the latest page
func (c *Controller) Total() int {
	if len(c.pages) == 0 {
		return 0
	}
	return c.pages[len(c.pages)-1].Total
}
