package artistloader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Entry is one catalog artist.
type Entry struct {
	Name     string
	Keywords string
	Image    string
}

// Source supplies catalog entries.
type Source interface {
	Load() ([]Entry, error)
}

// StaticSource is a fixed entry list.
type StaticSource []Entry

// Load returns a copy of the entries.
func (s StaticSource) Load() ([]Entry, error) {
	return slices.Clone([]Entry(s)), nil
}

// exampleEntries are written to a new catalog file.
var exampleEntries = []Entry{
	{Name: "Akira Toriyama", Keywords: "akira toriyama, dragon ball style, anime", Image: "toriyama.jpg"},
	{Name: "Hayao Miyazaki", Keywords: "hayao miyazaki, studio ghibli, miyazaki", Image: "miyazaki.jpg"},
	{Name: "Greg Rutkowski", Keywords: "greg rutkowski, artstation, fantasy art", Image: "rutkowski.jpg"},
	{Name: "Vincent van Gogh", Keywords: "vincent van gogh, post-impressionism, swirling brushstrokes", Image: "vangogh.jpg"},
	{Name: "Leonardo da Vinci", Keywords: "leonardo da vinci, renaissance, sfumato technique", Image: "davinci.jpg"},
}

// DefaultEntries is the built-in catalog used when no file can be read.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Akira Toriyama", Keywords: "akira toriyama, dragon ball style, anime"},
		{Name: "Hayao Miyazaki", Keywords: "hayao miyazaki, studio ghibli, miyazaki"},
		{Name: "Greg Rutkowski", Keywords: "greg rutkowski, artstation, fantasy art"},
	}
}

// CSVFile reads name,keywords,image rows from Path. A missing file is
// created with example rows and the built-in entries are returned.
type CSVFile struct {
	Path string
}

// Load reads the file.
func (f CSVFile) Load() ([]Entry, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := writeExampleCSV(f.Path); werr != nil {
			logger().Warn("could not create example catalog", slog.String("path", f.Path), slog.Any("error", werr))
		} else {
			logger().Info("created example catalog", slog.String("path", f.Path))
		}
		return DefaultEntries(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("artistloader: open catalog: %w", err)
	}
	defer file.Close()
	entries, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("artistloader: read catalog %s: %w", f.Path, err)
	}
	return entries, nil
}

func writeExampleCSV(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, exampleEntries); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ParseCSV reads catalog rows. Rows need a name and keywords; the image
// column is optional. A leading "name,keywords" header row is skipped. A
// repeated name keeps its first position and its last values.
func ParseCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var entries []Entry
	index := make(map[string]int)
	for line := 0; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		e := Entry{Name: strings.TrimSpace(row[0]), Keywords: strings.TrimSpace(row[1])}
		if len(row) > 2 {
			e.Image = strings.TrimSpace(row[2])
		}
		if e.Name == "" {
			continue
		}
		if line == 0 && strings.EqualFold(e.Name, "name") && strings.EqualFold(e.Keywords, "keywords") {
			continue
		}
		if i, ok := index[e.Name]; ok {
			entries[i] = e
			continue
		}
		index[e.Name] = len(entries)
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteCSV writes entries as name,keywords,image rows.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	for _, e := range entries {
		if err := cw.Write([]string{e.Name, e.Keywords, e.Image}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Catalog is the shared, read-mostly artist list every node chooses from.
// It is safe for concurrent use.
type Catalog struct {
	source Source

	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
	loaded  bool

	subsMu  sync.Mutex
	subs    map[uint32]func()
	nextSub uint32
}

// NewCatalog creates an empty catalog backed by src. Call Refresh to load.
// src may be nil.
func NewCatalog(src Source) *Catalog {
	return &Catalog{source: src, index: map[string]int{}, subs: map[uint32]func(){}}
}

// NewStaticCatalog creates a loaded catalog holding entries.
func NewStaticCatalog(entries []Entry) *Catalog {
	c := NewCatalog(StaticSource(entries))
	c.set(slices.Clone(entries))
	return c
}

// Refresh reloads from the source and notifies subscribers. If the first
// load fails the built-in entries are used; a later failure keeps the
// current entries. Either way the error is returned.
func (c *Catalog) Refresh() error {
	if c.source == nil {
		return nil
	}
	entries, err := c.source.Load()
	if err != nil {
		c.mu.RLock()
		loaded := c.loaded
		c.mu.RUnlock()
		if loaded {
			logger().Warn("catalog refresh failed, keeping previous entries", slog.Any("error", err))
			return err
		}
		logger().Warn("catalog load failed, using built-in artists", slog.Any("error", err))
		entries = DefaultEntries()
	}
	c.set(entries)
	logger().Debug("catalog loaded", slog.Int("artists", len(entries)))
	c.notify()
	return err
}

func (c *Catalog) set(entries []Entry) {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, dup := index[e.Name]; !dup {
			index[e.Name] = i
		}
	}
	c.mu.Lock()
	c.entries = entries
	c.index = index
	c.loaded = true
	c.mu.Unlock()
}

// Lookup returns the entry called name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Names returns every artist name in catalog order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of every entry.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// OnRefresh registers fn to run after every successful refresh. fn runs on
// the refreshing goroutine. The returned func unsubscribes.
func (c *Catalog) OnRefresh(fn func()) (cancel func()) {
	c.subsMu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	c.subsMu.Unlock()
	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Catalog) notify() {
	c.subsMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
