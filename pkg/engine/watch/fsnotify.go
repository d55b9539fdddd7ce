package watch

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/zyedidia/generic/mapset"
)

// FsnotifySource is the push-based ChangeSource. It subscribes to filesystem
// events on the artifacts' parent directories (editors and the GM console
// replace files rather than rewriting them in place, so watching the file
// itself would drop the watch on every save) and drains the accumulated
// dirty set on each Tick. Semantics match MtimeDetector: at most one report
// per artifact per tick, coalescing any number of events in between.
type FsnotifySource struct {
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	targets map[Artifact]string // artifact -> watched path
	dirty   mapset.Set[Artifact]

	done chan struct{}
}

// NewFsnotifySource creates a push-based source. The caller registers
// artifacts with Watch and must Close the source on shutdown.
func NewFsnotifySource() (*FsnotifySource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	s := &FsnotifySource{
		watcher: w,
		targets: make(map[Artifact]string),
		dirty:   mapset.New[Artifact](),
		done:    make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Watch registers an artifact at the given path.
func (s *FsnotifySource) Watch(a Artifact, path string) {
	s.mu.Lock()
	s.targets[a] = filepath.Clean(path)
	s.mu.Unlock()

	// Watch the containing directory; a missing target is not an error,
	// the artifact is simply absent until created.
	dir := filepath.Dir(path)
	if err := s.watcher.Add(dir); err != nil {
		log.Printf("watch: cannot subscribe to %s: %v", dir, err)
	}
	// Directory artifacts are also watched directly so writes to their
	// entries are seen.
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if err := s.watcher.Add(path); err != nil {
			log.Printf("watch: cannot subscribe to %s: %v", path, err)
		}
	}
}

// Retarget implements ChangeSource. The previous target's direct watch is
// dropped so theme switches do not accumulate subscriptions.
func (s *FsnotifySource) Retarget(a Artifact, path string) {
	s.mu.Lock()
	old, ok := s.targets[a]
	s.mu.Unlock()
	if ok && old != filepath.Clean(path) {
		// Remove errors when old was never directly watched; that is
		// the normal case for file artifacts.
		_ = s.watcher.Remove(old)
	}
	s.Watch(a, path)
}

// Tick implements ChangeSource: it returns and clears the dirty set.
func (s *FsnotifySource) Tick() mapset.Set[Artifact] {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.dirty
	s.dirty = mapset.New[Artifact]()
	return changed
}

// Close implements ChangeSource.
func (s *FsnotifySource) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *FsnotifySource) run() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.mark(ev.Name)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: fsnotify error: %v", err)
		}
	}
}

// mark flags every artifact whose target is the event path or contains it.
func (s *FsnotifySource) mark(name string) {
	name = filepath.Clean(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	for a, target := range s.targets {
		if name == target || filepath.Dir(name) == target {
			s.dirty.Put(a)
		}
	}
}
