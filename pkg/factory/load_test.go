package factory

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/observability"
)

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, []byte(site(ironFactory)), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	n, err := NewLoader(ironCatalogue(), logger).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(n.Sites) != 1 {
		t.Errorf("sites = %d, want 1", len(n.Sites))
	}
	out := buf.String()
	for _, want := range []string{"built network", "validation passed", "flow compatibility", "loaded network"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader(ironCatalogue(), nil).Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoaderRequiresCatalogue(t *testing.T) {
	_, err := (&Loader{}).Read(strings.NewReader(site(ironFactory)))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Read = %v, want %s", err, errors.ErrCodeInternal)
	}
}

func TestLoaderRejectsBeforeValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
		path string
		frag string
	}{
		{
			name: "duplicate machine key",
			doc: site(`"f1": {"purpose": "p", "machines": {
				"m1": {"item": "iron ore", "variant": "normal"},
				"m1": {"item": "iron ore", "variant": "pure"}}}`),
			code: errors.ErrCodeDuplicateKey,
			path: "sites▹s1▹factories▹f1▹machines",
			frag: `"m1"`,
		},
		{
			name: "duplicate field key",
			doc:  site(`"f1": {"purpose": "p", "purpose": "q", "machines": {}}`),
			code: errors.ErrCodeDuplicateKey,
			path: "sites▹s1▹factories▹f1",
			frag: `"purpose"`,
		},
		{
			// Unknown items would fail pass 1, but shape errors come first.
			name: "shape before items",
			doc:  site(`"f1": {"purpose": "p", "machines": {"m1": {"item": "gold"}}}`),
			code: errors.ErrCodeMalformed,
			path: "sites▹s1▹factories▹f1▹machines▹m1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadDoc(t, ironCatalogue(), tt.doc)
			if tt.frag == "" {
				wantErr(t, err, tt.code, tt.path)
				return
			}
			wantErr(t, err, tt.code, tt.path, tt.frag)
		})
	}
}

func TestLoaderInvalidJSON(t *testing.T) {
	for _, doc := range []string{`{"sites": {`, `{"sites": {}} {}`, ``, "{\"sites\": {\"s\xff\": {}}}"} {
		if _, err := loadDoc(t, ironCatalogue(), doc); !errors.Is(err, errors.ErrCodeInvalidJSON) {
			t.Errorf("Read(%q) = %v, want %s", doc, err, errors.ErrCodeInvalidJSON)
		}
	}
}

func TestLoaderErrorPathSegments(t *testing.T) {
	_, err := loadDoc(t, ironCatalogue().item("iron ingot", "copper ore"), site(ironFactory))
	got := errors.PathSegments(err)
	want := []string{"sites", "s1", "factories", "f1", "machines", "m2", "inputs", "0"}
	if strings.Join(got, "/") != strings.Join(want, "/") {
		t.Errorf("PathSegments = %v, want %v", got, want)
	}
}

type recordingHooks struct {
	observability.NoopLoadHooks
	passes []string
	failed string
}

func (h *recordingHooks) OnPassComplete(pass string, _ time.Duration, err error) {
	h.passes = append(h.passes, pass)
	if err != nil {
		h.failed = pass
	}
}

func TestLoaderEmitsPassHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetLoadHooks(h)
	t.Cleanup(observability.Reset)

	_, err := loadDoc(t, ironCatalogue().item("iron ingot", "copper ore"), site(ironFactory))
	if err == nil {
		t.Fatal("expected a flow failure")
	}
	if len(h.passes) != 3 || h.failed != PassFlow.String() {
		t.Errorf("passes = %v, failed = %q", h.passes, h.failed)
	}
}
