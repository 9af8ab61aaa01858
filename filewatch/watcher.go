package filewatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Reloader is refreshed whenever the watched file changes.
type Reloader interface {
	Reload() error
}

// FileWatcher monitors the storage directory for changes to one file.
type FileWatcher struct {
	name     string
	reloader Reloader
	watcher  *fsnotify.Watcher
	log      logrus.FieldLogger
}

// NewFileWatcher watches dir for writes to the file called name. The
// directory is watched rather than the file because saves replace the file.
func NewFileWatcher(dir, name string, r Reloader, log logrus.FieldLogger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	return &FileWatcher{
		name:     name,
		reloader: r,
		watcher:  w,
		log:      log.WithField("file", filepath.Join(dir, name)),
	}, nil
}

// Watch blocks until Close is called.
func (fw *FileWatcher) Watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && filepath.Base(event.Name) == fw.name {
				fw.log.WithField("op", event.Op.String()).Debug("file changed")
				fw.HandleFileChange()
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.WithError(err).Error("watch error")
		}
	}
}

func (fw *FileWatcher) HandleFileChange() {
	if err := fw.reloader.Reload(); err != nil {
		fw.log.WithError(err).Warn("reload failed")
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
