package factory

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/observability"
	"github.com/starrupture/srfactory/pkg/strictjson"
)

// Loader reads and validates factory layout documents.
//
// Each call to Read or Load is independent: it decodes the document, builds
// the network, indexes outputs and runs [Validate]. Either a fully valid
// network or the first error is returned.
type Loader struct {
	// Catalogue supplies the valid items. Required.
	Catalogue Catalogue
	// Logger receives debug progress. Optional.
	Logger *log.Logger
}

// NewLoader creates a Loader. logger may be nil.
func NewLoader(cat Catalogue, logger *log.Logger) *Loader {
	return &Loader{Catalogue: cat, Logger: logger}
}

// Read loads a network from r. Read does not close r.
func (l *Loader) Read(r io.Reader) (*Network, error) {
	if l.Catalogue == nil {
		return nil, errors.New(errors.ErrCodeInternal, "loader has no catalogue")
	}
	hooks := observability.Load()
	start := time.Now()

	stage := time.Now()
	doc, err := strictjson.Decode(r)
	hooks.OnDecodeComplete(time.Since(stage), err)
	if err != nil {
		return nil, err
	}
	l.debug("decoded document")

	stage = time.Now()
	n, err := Build(doc)
	if err != nil {
		hooks.OnBuildComplete(0, time.Since(stage), err)
		return nil, err
	}
	hooks.OnBuildComplete(len(n.Sites), time.Since(stage), nil)
	l.debug("built network", "sites", len(n.Sites), "outputs", n.Outputs.Len())

	for _, p := range Passes {
		stage = time.Now()
		err := RunPass(p, n, l.Catalogue)
		hooks.OnPassComplete(p.String(), time.Since(stage), err)
		if err != nil {
			l.debug("validation failed", "pass", p.String())
			return nil, err
		}
		l.debug("validation passed", "pass", p.String())
	}

	l.debug("loaded network", "elapsed", time.Since(start).Round(time.Microsecond))
	return n, nil
}

// Load reads the file at path and loads a network from it.
func (l *Loader) Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return l.Read(bytes.NewReader(data))
}

func (l *Loader) debug(msg string, keyvals ...any) {
	if l.Logger != nil {
		l.Logger.Debug(msg, keyvals...)
	}
}
