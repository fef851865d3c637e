package listview

import (
	"context"
	"sync"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/pagination"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/search"

	"go.uber.org/zap"
)

type Config[T Record, D any] struct {
	Source Source[T, D]
	// Facets exposes the filterable values of a record. Without it the
	// local re-filter only applies the search term.
	Facets    func(T) Filters
	NewDraft  func() D
	DraftFrom func(T) D
	PageSize  int
	Debounce  time.Duration
	// OnChange runs after every state change made off the caller's
	// goroutine (fetch results, debounced search). It must not block.
	OnChange func()
	Logger   *zap.Logger
}

// View is a consistent copy of the controller state for rendering.
type View[T Record, D any] struct {
	Rows          []T
	Fetched       int
	RawSearch     string
	Search        string
	Filters       Filters
	Loading       bool
	Page          Page[T]
	Modal         Modal
	Draft         D
	PendingDelete string
}

type Controller[T Record, D any] struct {
	cfg    Config[T, D]
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	debouncer *Debouncer

	mu            sync.Mutex
	closed        bool
	snapshot      []T
	meta          Page[T]
	rawSearch     string
	search        string
	filters       Filters
	page          int
	loading       bool
	issued        uint64
	modal         Modal
	draft         D
	pendingDelete string
}

func New[T Record, D any](cfg Config[T, D]) *Controller[T, D] {
	l := zap.L().Named("listview.controller")
	if cfg.Logger != nil {
		l = cfg.Logger.Named("listview.controller")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = pagination.DefaultLimit
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T, D]{
		cfg:    cfg,
		logger: l,
		ctx:    ctx,
		cancel: cancel,
		page:   pagination.DefaultPage,
	}
	c.debouncer = NewDebouncer(cfg.Debounce, c.commitSearch)
	return c
}

// Load issues the first fetch.
func (c *Controller[T, D]) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchLocked()
}

func (c *Controller[T, D]) Refresh() {
	c.Load()
}

// SetSearch records the typed text. It takes effect after the debounce
// period unless more text arrives first.
func (c *Controller[T, D]) SetSearch(text string) {
	c.mu.Lock()
	c.rawSearch = text
	c.mu.Unlock()
	c.debouncer.Push(text)
}

// CommitSearch applies the typed text without waiting.
func (c *Controller[T, D]) CommitSearch() {
	c.mu.Lock()
	text := c.rawSearch
	c.mu.Unlock()
	c.debouncer.Flush(text)
}

func (c *Controller[T, D]) commitSearch(text string) {
	c.mu.Lock()
	if c.closed || text == c.search {
		c.mu.Unlock()
		return
	}
	c.search = text
	c.page = pagination.DefaultPage
	c.fetchLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T, D]) SetDepartment(department string) {
	c.setFilters(func(f *Filters) { f.Department = department })
}

func (c *Controller[T, D]) SetStatus(status string) {
	c.setFilters(func(f *Filters) { f.Status = status })
}

func (c *Controller[T, D]) setFilters(change func(*Filters)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.filters
	change(&next)
	if next == c.filters {
		return
	}
	c.filters = next
	c.page = pagination.DefaultPage
	c.fetchLocked()
}

func (c *Controller[T, D]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if page == c.page {
		return
	}
	c.page = page
	c.fetchLocked()
}

func (c *Controller[T, D]) NextPage() {
	c.mu.Lock()
	hasMore, page := c.meta.HasMore, c.page
	c.mu.Unlock()
	if hasMore {
		c.SetPage(page + 1)
	}
}

func (c *Controller[T, D]) PrevPage() {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	if page > 1 {
		c.SetPage(page - 1)
	}
}

// fetchLocked starts a query for the current search, filters and page.
// Every query gets a sequence number and only the answer to the newest one
// is applied.
func (c *Controller[T, D]) fetchLocked() {
	if c.closed {
		return
	}
	c.issued++
	seq := c.issued
	q := Query{
		Search:  c.search,
		Filters: c.filters,
		Page:    c.page,
		Limit:   c.cfg.PageSize,
	}
	c.loading = true

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		page, err := c.cfg.Source.List(c.ctx, q)
		c.applyFetch(seq, q, page, err)
	}()
}

func (c *Controller[T, D]) applyFetch(seq uint64, q Query, page Page[T], err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.issued {
		c.mu.Unlock()
		c.logger.Debug("discarding stale list response",
			zap.Uint64("seq", seq),
			zap.String("search", q.Search),
		)
		return
	}

	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("list fetch failed",
			zap.String("search", q.Search),
			zap.String("department", q.Department),
			zap.String("status", q.Status),
			zap.Int("page", q.Page),
			zap.Error(err),
		)
		c.notify()
		return
	}

	c.snapshot = page.Items
	c.meta = page
	c.mu.Unlock()
	c.notify()
}

// Rows is the snapshot filtered locally with the effective search and
// filters.
func (c *Controller[T, D]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rowsLocked()
}

func (c *Controller[T, D]) rowsLocked() []T {
	rows := make([]T, 0, len(c.snapshot))
	for _, r := range c.snapshot {
		if !search.Matches(c.search, r.SearchFields()...) {
			continue
		}
		if c.cfg.Facets != nil && !c.filters.Match(c.cfg.Facets(r)) {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

func (c *Controller[T, D]) View() View[T, D] {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta := c.meta
	meta.Items = nil
	return View[T, D]{
		Rows:          c.rowsLocked(),
		Fetched:       len(c.snapshot),
		RawSearch:     c.rawSearch,
		Search:        c.search,
		Filters:       c.filters,
		Loading:       c.loading,
		Page:          meta,
		Modal:         c.modal,
		Draft:         c.draft,
		PendingDelete: c.pendingDelete,
	}
}

func (c *Controller[T, D]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modal = Modal{Mode: ModalCreate}
	if c.cfg.NewDraft != nil {
		c.draft = c.cfg.NewDraft()
	} else {
		var zero D
		c.draft = zero
	}
}

func (c *Controller[T, D]) OpenEdit(key string) error {
	if _, ok := c.cfg.Source.(Updater[T, D]); !ok {
		return ErrNotSupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(key)
	if i < 0 {
		return ErrUnknownRecord
	}
	c.modal = Modal{Mode: ModalEdit, Key: key}
	switch {
	case c.cfg.DraftFrom != nil:
		c.draft = c.cfg.DraftFrom(c.snapshot[i])
	case c.cfg.NewDraft != nil:
		c.draft = c.cfg.NewDraft()
	}
	return nil
}

func (c *Controller[T, D]) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = Modal{}
}

// EditDraft applies change to the open form's draft.
func (c *Controller[T, D]) EditDraft(change func(*D)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.modal.Mode == ModalClosed {
		return
	}
	change(&c.draft)
}

// Submit sends the open form. On success the snapshot is updated and the
// form closes; on failure the error is logged, the form stays open and the
// snapshot is untouched.
func (c *Controller[T, D]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	modal, draft := c.modal, c.draft
	c.mu.Unlock()

	var (
		record T
		err    error
	)
	switch modal.Mode {
	case ModalCreate:
		record, err = c.cfg.Source.Create(ctx, draft)
	case ModalEdit:
		updater, ok := c.cfg.Source.(Updater[T, D])
		if !ok {
			return ErrNotSupported
		}
		record, err = updater.Update(ctx, modal.Key, draft)
	default:
		return ErrModalClosed
	}
	if err != nil {
		c.logger.Error("submit failed",
			zap.String("mode", modal.Mode.String()),
			zap.String("key", modal.Key),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	if modal.Mode == ModalCreate {
		c.snapshot = append([]T{record}, c.snapshot...)
		c.meta.Total++
	} else if i := c.indexLocked(modal.Key); i >= 0 {
		c.snapshot[i] = record
	}
	if c.modal == modal {
		c.modal = Modal{}
	}
	c.mu.Unlock()
	return nil
}

// RequestDelete asks for confirmation before key is deleted.
func (c *Controller[T, D]) RequestDelete(key string) error {
	if _, ok := c.cfg.Source.(Deleter); !ok {
		return ErrNotSupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexLocked(key) < 0 {
		return ErrUnknownRecord
	}
	c.pendingDelete = key
	return nil
}

func (c *Controller[T, D]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

// ConfirmDelete deletes the record awaiting confirmation and removes it from
// the snapshot. Nothing else is touched.
func (c *Controller[T, D]) ConfirmDelete(ctx context.Context) error {
	deleter, ok := c.cfg.Source.(Deleter)
	if !ok {
		return ErrNotSupported
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	key := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()
	if key == "" {
		return ErrNoPendingDelete
	}

	if err := deleter.Delete(ctx, key); err != nil {
		c.logger.Error("delete failed", zap.String("key", key), zap.Error(err))
		return err
	}

	c.mu.Lock()
	if i := c.indexLocked(key); i >= 0 {
		c.snapshot = append(c.snapshot[:i:i], c.snapshot[i+1:]...)
		if c.meta.Total > 0 {
			c.meta.Total--
		}
	}
	c.mu.Unlock()
	return nil
}

// SetRecordStatus changes the status of key through the source and replaces
// the row with the returned record. Failures leave the snapshot untouched.
func (c *Controller[T, D]) SetRecordStatus(ctx context.Context, key, status string) error {
	setter, ok := c.cfg.Source.(StatusSetter[T])
	if !ok {
		return ErrNotSupported
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	known := c.indexLocked(key) >= 0
	c.mu.Unlock()
	if !known {
		return ErrUnknownRecord
	}

	record, err := setter.SetStatus(ctx, key, status)
	if err != nil {
		c.logger.Error("status change failed",
			zap.String("key", key),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	if i := c.indexLocked(key); i >= 0 {
		c.snapshot[i] = record
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller[T, D]) indexLocked(key string) int {
	for i, r := range c.snapshot {
		if r.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Controller[T, D]) notify() {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange()
	}
}

// Close stops the debouncer and waits for in-flight fetches to return.
func (c *Controller[T, D]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
	c.wg.Wait()
}
