// Package sourcefs is the source registry: it hands out small integer
// SourceId handles and stores each registered file's path, content, and
// line-start index, so the rest of the module can resolve a byte offset to
// a (line, column) pair without threading a file's content everywhere.
//
// Two interchangeable flavors are provided: Scoped, a private-to-a-builder
// vector-backed store, and ProcessWide, the same structure behind a
// reader/writer lock for sharing across goroutines (an LSP server, for
// instance, where many requests read concurrently with the occasional
// file-change write).
package sourcefs

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/mapforge/mapforge/pkg/lines"
)

// SourceId is an opaque handle to a registered source. The zero value,
// Null, means "no source" and is always skipped when a builder emits
// mappings. Handles are dense and allocated monotonically starting at 1;
// two handles are equal iff they name the same registered source.
type SourceId uint16

// Null is the SourceId that denotes "no source".
const Null SourceId = 0

// IsNull reports whether id is the null source.
func (id SourceId) IsNull() bool { return id == Null }

// Source is the triple a registry stores per handle. Path is used only for
// the JSON "sources" field; Content is kept verbatim for "sourcesContent";
// LineStarts is recomputed atomically with any mutation.
type Source struct {
	Path       string
	Content    string
	LineStarts lines.Starts

	hash uint64
}

func newSource(path, content string) Source {
	return Source{
		Path:       path,
		Content:    content,
		LineStarts: lines.New(content),
		hash:       xxhash.Sum64String(content),
	}
}

// Scoped is an in-memory, single-threaded source registry: a vector of
// Source indexed by handle-1. It is the registry a single builder owns for
// the lifetime of one generation pass.
type Scoped struct {
	sources []Source
	byPath  map[string]SourceId
}

// NewScoped creates an empty registry.
func NewScoped() *Scoped {
	return &Scoped{byPath: make(map[string]SourceId)}
}

// NewSource registers content under path and returns its handle. Handles
// are never reused.
func (s *Scoped) NewSource(path, content string) SourceId {
	s.sources = append(s.sources, newSource(path, content))
	id := SourceId(len(s.sources))
	s.byPath[path] = id
	return id
}

// WithSource invokes fn with a read-only view of the source named by id.
// Looking up a handle that was never allocated in this registry is a
// programming error and panics, per the registry's contract.
func (s *Scoped) WithSource(id SourceId, fn func(*Source)) {
	fn(s.get(id))
}

// Source returns a copy of the registered Source named by id.
func (s *Scoped) Source(id SourceId) Source {
	return *s.get(id)
}

func (s *Scoped) get(id SourceId) *Source {
	if id.IsNull() || int(id) > len(s.sources) {
		panic("sourcefs: unknown SourceId")
	}
	return &s.sources[id-1]
}

// GetSourceAtPath returns the handle registered under path, if any.
func (s *Scoped) GetSourceAtPath(path string) (SourceId, bool) {
	id, ok := s.byPath[path]
	return id, ok
}

// CreateOrUpdateFileAtPath registers content under path if no source is
// registered there yet, or replaces the existing source's content
// otherwise. It returns the (possibly new) handle.
func (s *Scoped) CreateOrUpdateFileAtPath(path, content string) SourceId {
	if id, ok := s.byPath[path]; ok {
		s.Update(id, content)
		return id
	}
	return s.NewSource(path, content)
}

// Update replaces the content of an existing source, recomputing its
// line-start index. A no-op update (identical content) is detected via a
// content hash and skips recomputation.
func (s *Scoped) Update(id SourceId, newContent string) {
	src := s.get(id)
	h := xxhash.Sum64String(newContent)
	if h == src.hash {
		return
	}
	src.Content = newContent
	src.LineStarts = lines.New(newContent)
	src.hash = h
}

// Append extends an existing source's content with suffix, extending its
// line-start index rather than rescanning the whole content, and returns
// the previous and new content lengths.
func (s *Scoped) Append(id SourceId, suffix string) (oldLen, newLen int) {
	src := s.get(id)
	oldLen = len(src.Content)
	src.LineStarts = src.LineStarts.Append(oldLen, suffix)
	src.Content += suffix
	newLen = len(src.Content)
	src.hash = xxhash.Sum64String(src.Content)
	return oldLen, newLen
}

// AppendToFile is an alias for Append kept for symmetry with the
// path-indexed accessor names in §6 of the spec.
func (s *Scoped) AppendToFile(id SourceId, suffix string) (oldLen, newLen int) {
	return s.Append(id, suffix)
}

// ChangeFilePath renames the path under which a source is registered,
// updating the path index.
func (s *Scoped) ChangeFilePath(from, to string) {
	id, ok := s.byPath[from]
	if !ok {
		panic("sourcefs: unknown path: " + from)
	}
	delete(s.byPath, from)
	s.byPath[to] = id
	s.get(id).Path = to
}

// ProcessWide is a Scoped registry guarded by a reader/writer lock, for
// sharing a single source registry across goroutines (e.g. an LSP server
// handling requests concurrently with file-watcher-driven updates). All
// mutating calls take the exclusive lock; all reads take the shared lock
// and release it before the call returns (WithSource holds it only for the
// duration of its callback). The lock is never held across a builder's
// Build() call — builders snapshot line starts once at the top of Build
// and operate on that private copy thereafter.
type ProcessWide struct {
	mu    sync.RWMutex
	inner *Scoped
}

// NewProcessWide creates an empty process-wide registry.
func NewProcessWide() *ProcessWide {
	return &ProcessWide{inner: NewScoped()}
}

// NewSource registers content under path and returns its handle.
func (p *ProcessWide) NewSource(path, content string) SourceId {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.NewSource(path, content)
}

// WithSource invokes fn with a read-only view of the source named by id,
// holding only the shared lock for the duration of the callback.
func (p *ProcessWide) WithSource(id SourceId, fn func(*Source)) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	p.inner.WithSource(id, fn)
}

// Source returns a copy of the registered Source named by id.
func (p *ProcessWide) Source(id SourceId) Source {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inner.Source(id)
}

// GetSourceAtPath returns the handle registered under path, if any.
func (p *ProcessWide) GetSourceAtPath(path string) (SourceId, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inner.GetSourceAtPath(path)
}

// CreateOrUpdateFileAtPath registers or replaces content under path.
func (p *ProcessWide) CreateOrUpdateFileAtPath(path, content string) SourceId {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.CreateOrUpdateFileAtPath(path, content)
}

// Update replaces the content of an existing source.
func (p *ProcessWide) Update(id SourceId, newContent string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inner.Update(id, newContent)
}

// Append extends an existing source's content with suffix.
func (p *ProcessWide) Append(id SourceId, suffix string) (oldLen, newLen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inner.Append(id, suffix)
}

// ChangeFilePath renames the path under which a source is registered.
func (p *ProcessWide) ChangeFilePath(from, to string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inner.ChangeFilePath(from, to)
}

// Snapshot returns a copy of the full Source for every handle the caller
// names, taken under a single shared-lock acquisition. Builder.Build does
// not call it: Build reads each source once through WithSource.
func (p *ProcessWide) Snapshot(ids []SourceId) map[SourceId]Source {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[SourceId]Source, len(ids))
	for _, id := range ids {
		out[id] = p.inner.Source(id)
	}
	return out
}

// Registry is the interface the builder and span conversions consume.
// Scoped and ProcessWide both satisfy it.
type Registry interface {
	WithSource(id SourceId, fn func(*Source))
	Source(id SourceId) Source
}

var (
	_ Registry = (*Scoped)(nil)
	_ Registry = (*ProcessWide)(nil)
)
