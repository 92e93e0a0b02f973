package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/starrupture/srfactory/pkg/observability"
)

// timingHooks logs the duration of each load and render stage at debug
// level.
type timingHooks struct {
	logger *log.Logger
}

var (
	_ observability.LoadHooks   = (*timingHooks)(nil)
	_ observability.RenderHooks = (*timingHooks)(nil)
)

func (h *timingHooks) OnDecodeComplete(d time.Duration, err error) {
	h.stage("decode", d, err)
}

func (h *timingHooks) OnBuildComplete(sites int, d time.Duration, err error) {
	h.stage("build", d, err, "sites", sites)
}

func (h *timingHooks) OnPassComplete(pass string, d time.Duration, err error) {
	h.stage("pass: "+pass, d, err)
}

func (h *timingHooks) OnRenderComplete(format string, size int, d time.Duration, err error) {
	h.stage("render: "+format, d, err, "bytes", size)
}

func (h *timingHooks) stage(name string, d time.Duration, err error, keyvals ...any) {
	keyvals = append([]any{"stage", name, "elapsed", d.Round(time.Microsecond)}, keyvals...)
	if err != nil {
		keyvals = append(keyvals, "failed", true)
	}
	h.logger.Debug("timing", keyvals...)
}

// registerHooks installs the timing hooks for the lifetime of the process.
func (c *CLI) registerHooks() {
	h := &timingHooks{logger: c.Logger}
	observability.SetLoadHooks(h)
	observability.SetRenderHooks(h)
}
