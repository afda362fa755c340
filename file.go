// FILE: strata/file.go
package strata

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is how long a watched file provider waits after a
// filesystem notification before re-reading the file. The delay avoids
// observing a half-written file.
const DefaultReloadDelay = 250 * time.Millisecond

// parseFunc turns raw file content into a flat snapshot keyed by
// uppercased full key.
type parseFunc func(content []byte) (map[string]entry, error)

// FileSource describes a file-backed configuration source. Construct one
// with NewJSONFile, NewTOMLFile, NewYAMLFile, NewINIFile, or NewXMLFile
// and chain the With* methods:
//
//	src := strata.NewJSONFile("app.json").WithOptional().WithReloadOnChange()
type FileSource struct {
	// Path is the file to read.
	Path string

	// Optional makes a missing file equivalent to an empty one. When
	// false, a missing file fails the load with ErrFileNotFound.
	Optional bool

	// ReloadOnChange starts a filesystem watch that reloads the provider
	// when the file changes.
	ReloadOnChange bool

	// ReloadDelay is the debounce applied before re-reading a changed
	// file. Zero means DefaultReloadDelay.
	ReloadDelay time.Duration

	// Logger receives diagnostics from the background watcher, which has
	// no caller to return errors to. Nil discards them.
	Logger *slog.Logger

	format string
	parse  parseFunc
}

func newFileSource(path, format string, parse parseFunc) *FileSource {
	return &FileSource{Path: path, format: format, parse: parse}
}

// WithOptional marks the file as optional.
func (s *FileSource) WithOptional() *FileSource {
	s.Optional = true
	return s
}

// WithReloadOnChange enables reload when the underlying file changes.
func (s *FileSource) WithReloadOnChange() *FileSource {
	s.ReloadOnChange = true
	return s
}

// WithReloadDelay sets the debounce delay used with WithReloadOnChange.
func (s *FileSource) WithReloadDelay(d time.Duration) *FileSource {
	s.ReloadDelay = d
	return s
}

// WithLogger sets the logger used by the background watcher.
func (s *FileSource) WithLogger(l *slog.Logger) *FileSource {
	s.Logger = l
	return s
}

// Build implements Source.
func (s *FileSource) Build(_ *Builder) Provider {
	src := *s
	if src.ReloadDelay <= 0 {
		src.ReloadDelay = DefaultReloadDelay
	}
	if src.Logger == nil {
		src.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &fileProvider{
		src:   src,
		token: NewChangeToken(),
	}
}

// fileProvider is the shared provider for every file format. The format
// only contributes the parse function.
type fileProvider struct {
	src FileSource

	mu    sync.RWMutex
	data  map[string]entry
	token *ChangeToken

	watchOnce sync.Once
	watcher   *fsnotify.Watcher
	done      chan struct{}

	debounceMu sync.Mutex
	debounce   *time.Timer
}

func (p *fileProvider) Name() string {
	return fmt.Sprintf("%sFileProvider(%s)", p.src.format, p.src.Path)
}

func (p *fileProvider) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.data[strings.ToUpper(key)]
	return e.value, ok
}

func (p *fileProvider) Load() error {
	if err := p.read(); err != nil {
		return err
	}
	if p.src.ReloadOnChange {
		p.watchOnce.Do(p.startWatch)
	}
	return nil
}

// read replaces the snapshot wholesale from the current file content.
func (p *fileProvider) read() error {
	content, err := os.ReadFile(p.src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if p.src.Optional {
				p.mu.Lock()
				p.data = map[string]entry{}
				p.mu.Unlock()
				return nil
			}
			return &LoadError{
				Message: "configuration file not found and is not optional",
				Path:    p.src.Path,
				Err:     ErrFileNotFound,
			}
		}
		return &LoadError{Message: "cannot read configuration file", Path: p.src.Path, Err: err}
	}

	data, err := p.src.parse(content)
	if err != nil {
		return &LoadError{
			Message: fmt.Sprintf("cannot parse %s configuration", p.src.format),
			Path:    p.src.Path,
			Err:     err,
		}
	}

	p.mu.Lock()
	p.data = data
	p.mu.Unlock()
	return nil
}

func (p *fileProvider) ReloadToken() *ChangeToken {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

func (p *fileProvider) ChildKeys(earlier []string, parentPath string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return accumulateChildKeys(p.data, earlier, parentPath)
}

// startWatch begins watching the file's directory. Watching the directory
// rather than the file itself survives the rename-then-replace pattern
// editors and atomic writers use.
func (p *fileProvider) startWatch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.src.Logger.Error("cannot create file watcher", "path", p.src.Path, "error", err)
		return
	}
	dir := filepath.Dir(p.src.Path)
	if err := watcher.Add(dir); err != nil {
		p.src.Logger.Error("cannot watch directory", "dir", dir, "error", err)
		watcher.Close()
		return
	}

	p.watcher = watcher
	p.done = make(chan struct{})
	go p.watchLoop()
}

func (p *fileProvider) watchLoop() {
	target := filepath.Clean(p.src.Path)

	for {
		select {
		case <-p.done:
			return
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			p.scheduleReload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.src.Logger.Error("file watcher error", "path", p.src.Path, "error", err)
		}
	}
}

// scheduleReload debounces rapid changes: each notification resets the
// timer, so the reload runs once the file has been quiet for ReloadDelay.
// The wait happens on the timer's goroutine; readers are never blocked by
// a pending debounce.
func (p *fileProvider) scheduleReload() {
	p.debounceMu.Lock()
	defer p.debounceMu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.src.ReloadDelay, p.reloadFromWatch)
}

// reloadFromWatch re-reads the file after a debounced change, replaces
// the provider's token, and fires the previous one. Observers are
// notified even when the re-read fails, since the file's content did
// change; the failure is logged.
func (p *fileProvider) reloadFromWatch() {
	if err := p.readForReload(); err != nil {
		p.src.Logger.Error("reload after file change failed", "path", p.src.Path, "error", err)
	}

	p.mu.Lock()
	old := p.token
	p.token = NewChangeToken()
	p.mu.Unlock()

	old.Notify()
}

// readForReload treats a vanished file as empty regardless of Optional:
// once running, losing the file should not wedge the provider.
func (p *fileProvider) readForReload() error {
	if _, err := os.Stat(p.src.Path); os.IsNotExist(err) {
		p.mu.Lock()
		p.data = map[string]entry{}
		p.mu.Unlock()
		return nil
	}
	return p.read()
}

// Close stops the background watcher, if any.
func (p *fileProvider) Close() error {
	p.debounceMu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
		p.debounce = nil
	}
	p.debounceMu.Unlock()

	if p.watcher != nil {
		close(p.done)
		return p.watcher.Close()
	}
	return nil
}
