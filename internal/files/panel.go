// Package files tracks the file records of the upload panel.
//
// A record is created when a local file is added or a remote URL is submitted.
// It starts uploading, moves to describing once the simulated upload delay has
// passed, and ends complete or error depending on the description service.
// Records only move forward and are never removed.
package files

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quocvuong92/remote-hub/internal/logging"
)

// Status is a record lifecycle state.
type Status string

const (
	StatusUploading  Status = "uploading"
	StatusDescribing Status = "describing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Terminal reports whether no further transition can happen.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Source tells uploaded files from remote downloads.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Sizes and descriptions used when there is nothing better to show
const (
	RemoteSize          = "N/A"
	DefaultRemoteName   = "remote_file"
	FallbackDescription = "Failed to generate description."
)

// ErrEmptyURL is returned when a remote download is requested without a URL.
var ErrEmptyURL = errors.New("please enter a valid URL")

// Record is one tracked file.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Size        string   `json:"size"`
	Type        FileType `json:"type"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Source      Source   `json:"source"`
	URL         string   `json:"url,omitempty"`
}

// Describer produces a short description of a file.
type Describer interface {
	Describe(ctx context.Context, fileName, fileContent string) (string, error)
}

// DescriberFunc adapts a function to Describer.
type DescriberFunc func(ctx context.Context, fileName, fileContent string) (string, error)

// Describe calls f.
func (f DescriberFunc) Describe(ctx context.Context, fileName, fileContent string) (string, error) {
	return f(ctx, fileName, fileContent)
}

// Options configures a Panel.
type Options struct {
	// UploadDelay is how long a record stays uploading. Zero means no delay.
	UploadDelay time.Duration
	// Observer, if set, is called with a copy of the record after every change.
	// It runs outside the panel lock.
	Observer func(Record)
	Logger   *logging.Logger
}

// Panel owns the file records.
type Panel struct {
	mu        sync.Mutex
	records   []*Record // newest first
	describer Describer
	opts      Options
	log       *logging.FieldLogger
	pending   sync.WaitGroup
}

// NewPanel creates a panel using describer for every record.
func NewPanel(describer Describer, opts Options) *Panel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Panel{
		describer: describer,
		opts:      opts,
		log:       logger.WithFields(logging.Fields{"component": "files"}),
	}
}

// List returns copies of all records, newest first.
func (p *Panel) List() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Record, len(p.records))
	for i, r := range p.records {
		out[i] = *r
	}
	return out
}

// Get returns a copy of the record with id.
func (p *Panel) Get(id string) (Record, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.records {
		if r.ID == id {
			return *r, true
		}
	}
	return Record{}, false
}

// AddLocal tracks a dropped or selected local file of size bytes.
func (p *Panel) AddLocal(name string, size int64) Record {
	return p.add(Record{
		Name:   name,
		Size:   FormatBytes(size, 2),
		Type:   FileTypeOf(name),
		Source: SourceLocal,
	})
}

// AddRemote tracks a remote download of rawURL. Nothing is fetched; the file
// name is the last path segment of the URL.
func (p *Panel) AddRemote(rawURL string) (Record, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Record{}, ErrEmptyURL
	}
	name := RemoteFileName(rawURL)
	return p.add(Record{
		Name:   name,
		Size:   RemoteSize,
		Type:   FileTypeOf(name),
		Source: SourceRemote,
		URL:    rawURL,
	}), nil
}

// RemoteFileName returns the text after the last slash of rawURL, or
// DefaultRemoteName when that is empty.
func RemoteFileName(rawURL string) string {
	name := rawURL[strings.LastIndex(rawURL, "/")+1:]
	if name == "" {
		return DefaultRemoteName
	}
	return name
}

// MockContent is the stand-in content sent to the describer for name.
func MockContent(name string) string {
	return fmt.Sprintf("This is a mock content for file %s. In a real app, this would be the actual file content.", name)
}

// Wait blocks until every started lifecycle has finished.
func (p *Panel) Wait() {
	p.pending.Wait()
}

func (p *Panel) add(r Record) Record {
	r.ID = uuid.New().String()
	r.Status = StatusUploading

	rec := &r
	p.mu.Lock()
	p.records = append([]*Record{rec}, p.records...)
	p.mu.Unlock()

	p.log.Info("file added", logging.Fields{"id": r.ID, "name": r.Name, "source": r.Source})
	p.notify(r)

	p.pending.Add(1)
	go p.run(r.ID, r.Name)
	return r
}

// run drives one record from uploading to its final status
func (p *Panel) run(id, name string) {
	defer p.pending.Done()

	if p.opts.UploadDelay > 0 {
		time.Sleep(p.opts.UploadDelay)
	}
	p.transition(id, StatusDescribing, "")

	description, err := p.describe(name)
	if err != nil {
		p.log.Error("description failed", err, logging.Fields{"id": id, "name": name})
		p.transition(id, StatusError, FallbackDescription)
		return
	}
	p.transition(id, StatusComplete, description)
}

func (p *Panel) describe(name string) (string, error) {
	if p.describer == nil {
		return "", errors.New("no description service configured")
	}
	// No deadline here; the chat client's HTTP timeout bounds remote calls
	description, err := p.describer.Describe(context.Background(), name, MockContent(name))
	if err != nil {
		return "", err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", errors.New("description service returned an empty description")
	}
	return description, nil
}

// transition moves a record forward. Backward or repeated moves are ignored.
func (p *Panel) transition(id string, to Status, description string) {
	p.mu.Lock()
	var updated *Record
	for _, r := range p.records {
		if r.ID == id && canTransition(r.Status, to) {
			r.Status = to
			if description != "" {
				r.Description = description
			}
			updated = r
			break
		}
	}
	var snapshot Record
	if updated != nil {
		snapshot = *updated
	}
	p.mu.Unlock()

	if updated == nil {
		p.log.Warn("ignored status change", logging.Fields{"id": id, "to": to})
		return
	}
	p.log.Debug("file status changed", logging.Fields{"id": id, "status": to})
	p.notify(snapshot)
}

func (p *Panel) notify(r Record) {
	if p.opts.Observer != nil {
		p.opts.Observer(r)
	}
}

func canTransition(from, to Status) bool {
	switch from {
	case StatusUploading:
		return to == StatusDescribing
	case StatusDescribing:
		return to == StatusComplete || to == StatusError
	default:
		return false
	}
}
