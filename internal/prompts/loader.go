// Package prompts provides a loader for the generative service prompt templates.
// Templates are embedded at compile time and can be overridden per file from a
// directory that is watched for changes.
package prompts

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/fsnotify/fsnotify"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Template names.
const (
	Content = "content"
	Design  = "design"
)

const templateExt = ".tmpl"

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Loader holds the parsed prompt templates. It is safe for concurrent use.
type Loader struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
	dir       string
	watcher   *fsnotify.Watcher
}

// NewLoader parses the embedded templates and then applies any overrides found
// in dir. An empty dir means embedded templates only.
func NewLoader(dir string) (*Loader, error) {
	l := &Loader{templates: make(map[string]*template.Template), dir: dir}

	entries, err := fs.ReadDir(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts: %w", err)
	}
	for _, e := range entries {
		data, err := embedded.ReadFile("templates/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), templateExt)
		tmpl, err := parse(name, string(data))
		if err != nil {
			return nil, err
		}
		l.templates[name] = tmpl
	}

	if dir != "" {
		overrides, err := filepath.Glob(filepath.Join(dir, "*"+templateExt))
		if err != nil {
			return nil, fmt.Errorf("failed to list prompt overrides: %w", err)
		}
		for _, path := range overrides {
			if err := l.reload(path); err != nil {
				return nil, err
			}
		}
	}

	return l, nil
}

// Render executes the named template with data.
func (l *Loader) Render(name string, data any) (string, error) {
	l.mu.RLock()
	tmpl, ok := l.templates[name]
	l.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("prompt template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", name, err)
	}
	return buf.String(), nil
}

// Watch re-parses override templates whenever a file in the override directory
// is written or created. It blocks until ctx is cancelled. Without an override
// directory it simply waits for ctx.
func (l *Loader) Watch(ctx context.Context) error {
	if l.dir == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return fmt.Errorf("failed to watch prompts directory: %w", err)
	}
	slog.Debug("Watching prompt templates for changes", "directory", l.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			l.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Prompt watcher error", "error", err)
		}
	}
}

func (l *Loader) handleEvent(event fsnotify.Event) {
	if filepath.Ext(event.Name) != templateExt {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if err := l.reload(event.Name); err != nil {
		// The previous version stays active.
		slog.Error("Failed to reload prompt template", "path", event.Name, "error", err)
		return
	}
	slog.Info("Reloaded prompt template", "path", event.Name)
}

func (l *Loader) reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read prompt %s: %w", path, err)
	}
	// Editors truncate before writing; an empty file is a transient state.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	name := strings.TrimSuffix(filepath.Base(path), templateExt)
	tmpl, err := parse(name, string(data))
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.templates[name] = tmpl
	l.mu.Unlock()
	return nil
}

func parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt %q: %w", name, err)
	}
	return tmpl, nil
}
