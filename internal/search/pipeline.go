package search

import (
	"context"
	"sync"
	"time"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Fetcher loads one page of patients matching a search term. An empty
// term loads the unfiltered listing.
type Fetcher func(ctx context.Context, term string, offset, limit int) (*api.List[clinic.Patient], error)

// Snapshot is the pipeline's observable state at one point in time.
type Snapshot struct {
	Items      []clinic.Patient
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	Window     []PageLink
	Loading    bool
	Err        string
}

// Pipeline coordinates a debounced search term, pagination state and
// client-side filters over a remote patient listing. Query edits are
// debounced; page, page-size and filter changes load immediately.
//
// Responses can arrive out of order when a slow request is overtaken
// by a later one. Every load carries a generation number and a
// response is applied only if its generation is higher than the last
// one applied, so the state always converges to the most recent load.
type Pipeline struct {
	fetch    Fetcher
	debounce *Debouncer
	logger   *logging.Logger
	now      func() time.Time

	mu         sync.Mutex
	term       string
	pager      PageState
	filters    Filters
	items      []clinic.Patient
	total      int
	loading    bool
	errMsg     string
	generation uint64
	appliedGen uint64
}

// PipelineConfig carries the pipeline's collaborators. Fetch is
// required; zero values elsewhere fall back to defaults.
type PipelineConfig struct {
	Fetch      Fetcher
	Quiescence time.Duration
	PageSize   int
	Logger     *logging.Logger
	Now        func() time.Time
}

// NewPipeline builds an idle pipeline. Call Refresh to perform the
// initial load.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		fetch:    cfg.Fetch,
		debounce: NewDebouncer(cfg.Quiescence),
		logger:   logger,
		now:      now,
		pager:    NewPageState(cfg.PageSize),
	}
}

// SetQuery records a new search term. The load fires only after the
// term has been stable for the debounce interval, and resets to the
// first page.
func (p *Pipeline) SetQuery(ctx context.Context, term string) {
	p.mu.Lock()
	p.term = term
	p.mu.Unlock()
	p.debounce.Trigger(func() {
		p.mu.Lock()
		p.pager.SetPage(1)
		p.mu.Unlock()
		p.load(ctx)
	})
}

// SetPage moves to the given page and loads it immediately.
func (p *Pipeline) SetPage(ctx context.Context, page int) {
	p.mu.Lock()
	p.pager.SetPage(page)
	p.mu.Unlock()
	p.load(ctx)
}

// SetPageSize changes the page size, returns to the first page, and
// loads immediately. Sizes outside the allowed set are ignored.
func (p *Pipeline) SetPageSize(ctx context.Context, size int) {
	p.mu.Lock()
	p.pager.SetPageSize(size)
	p.mu.Unlock()
	p.load(ctx)
}

// SetFilters replaces the client-side filters, returns to the first
// page, and loads immediately.
func (p *Pipeline) SetFilters(ctx context.Context, f Filters) {
	p.mu.Lock()
	p.filters = f
	p.pager.SetPage(1)
	p.mu.Unlock()
	p.load(ctx)
}

// Refresh reloads the current page with the current term and filters.
func (p *Pipeline) Refresh(ctx context.Context) {
	p.load(ctx)
}

// Stop cancels any pending debounced load.
func (p *Pipeline) Stop() {
	p.debounce.Stop()
}

func (p *Pipeline) load(ctx context.Context) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	term := p.term
	offset := p.pager.Offset()
	limit := p.pager.Size()
	filters := p.filters
	p.loading = true
	p.mu.Unlock()

	list, err := p.fetch(ctx, term, offset, limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen <= p.appliedGen {
		// A newer load already landed; this response is stale.
		return
	}
	p.appliedGen = gen
	p.loading = false
	if err != nil {
		// Keep whatever was on screen; only surface the failure.
		p.errMsg = err.Error()
		p.logger.Error("patient search failed", "term", term, "offset", offset, "error", err)
		return
	}
	p.errMsg = ""
	items := list.Data
	total := list.Total
	if !filters.IsZero() {
		items = filters.Apply(items, p.now())
		total = len(items)
	}
	p.items = items
	p.total = total
}

// Snapshot returns a copy of the current state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	page := Page[clinic.Patient]{
		Items:    p.items,
		Total:    p.total,
		Number:   p.pager.Page(),
		PageSize: p.pager.Size(),
	}
	totalPages := page.TotalPages()
	items := make([]clinic.Patient, len(p.items))
	copy(items, p.items)
	return Snapshot{
		Items:      items,
		Total:      p.total,
		Page:       p.pager.Page(),
		PageSize:   p.pager.Size(),
		TotalPages: totalPages,
		Window:     VisiblePages(p.pager.Page(), totalPages),
		Loading:    p.loading,
		Err:        p.errMsg,
	}
}
