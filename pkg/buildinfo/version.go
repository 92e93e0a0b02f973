// Package buildinfo identifies the srfactory binary that checked a layout.
//
// Release builds stamp the values through the linker; a plain `go build`
// reports "dev":
//
//	go build -ldflags "-X github.com/starrupture/srfactory/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/starrupture/srfactory/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/starrupture/srfactory/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/srfactory
package buildinfo

import "fmt"

// Stamped by the linker.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String renders the build information for `srfactory version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template renders the build information for `srfactory --version`, in
// cobra's version template syntax.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}
