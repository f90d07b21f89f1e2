// Package media turns image picking into a single call returning a tagged
// Result instead of a callback.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
)

// Outcome tags a Result.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeFailed
	OutcomeSelected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	case OutcomeSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// Result is Cancelled, Failed(Reason) or Selected(Asset).
type Result struct {
	Outcome Outcome
	Reason  string
	Asset   models.Asset
}

func Cancelled() Result {
	return Result{Outcome: OutcomeCancelled}
}

func Failed(reason string) Result {
	return Result{Outcome: OutcomeFailed, Reason: reason}
}

func Selected(asset models.Asset) Result {
	return Result{Outcome: OutcomeSelected, Asset: asset}
}

// Picker obtains an image from the user.
type Picker interface {
	Pick(ctx context.Context) Result
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context) Result

func (f PickerFunc) Pick(ctx context.Context) Result { return f(ctx) }

// DefaultMaxSize caps picked files at 10 MiB.
const DefaultMaxSize = 10 << 20

// PathPrompt asks the user for a file path. An empty path cancels.
type PathPrompt func(ctx context.Context) (string, error)

// FilePicker picks an image from the local file system.
type FilePicker struct {
	prompt  PathPrompt
	fsys    fs.FS
	maxSize int64
}

// NewFilePicker returns a picker reading absolute or working-directory
// relative paths from the OS file system.
func NewFilePicker(prompt PathPrompt) *FilePicker {
	return &FilePicker{prompt: prompt, fsys: osFS{}, maxSize: DefaultMaxSize}
}

// WithFS replaces the file system paths are resolved against.
func (p *FilePicker) WithFS(fsys fs.FS) *FilePicker {
	p.fsys = fsys
	return p
}

// WithMaxSize replaces the size cap.
func (p *FilePicker) WithMaxSize(n int64) *FilePicker {
	p.maxSize = n
	return p
}

func (p *FilePicker) Pick(ctx context.Context) Result {
	path, err := p.prompt(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Cancelled()
		}
		return Failed(err.Error())
	}
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "" {
		return Cancelled()
	}

	info, err := fs.Stat(p.fsys, path)
	if err != nil {
		return Failed(fmt.Sprintf("cannot open %s: %v", path, err))
	}
	if info.IsDir() {
		return Failed(fmt.Sprintf("%s is a directory", path))
	}
	if info.Size() > p.maxSize {
		return Failed(fmt.Sprintf("%s is larger than %d bytes", path, p.maxSize))
	}

	data, err := fs.ReadFile(p.fsys, path)
	if err != nil {
		return Failed(fmt.Sprintf("cannot read %s: %v", path, err))
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Failed(fmt.Sprintf("%s is not an image (%s)", path, mime))
	}

	return Selected(models.Asset{FileName: filepath.Base(path), MIMEType: mime, Data: data})
}

// osFS is an fs.FS that accepts the paths users type, including absolute
// ones, which os.DirFS would reject.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
