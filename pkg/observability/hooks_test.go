package observability

import (
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	l := NoopLoadHooks{}
	l.OnDecodeComplete(time.Millisecond, nil)
	l.OnBuildComplete(2, time.Millisecond, nil)
	l.OnPassComplete("connectivity", time.Millisecond, errors.New("dangling"))

	r := NoopRenderHooks{}
	r.OnRenderComplete("svg", 1024, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Load() should return NoopLoadHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	customLoad := &testLoadHooks{}
	SetLoadHooks(customLoad)
	if Load() != customLoad {
		t.Error("SetLoadHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	Reset()
	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Reset() should restore NoopLoadHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testLoadHooks{}
	SetLoadHooks(custom)
	SetLoadHooks(nil)

	if Load() != custom {
		t.Error("SetLoadHooks(nil) should be ignored")
	}
}

type testLoadHooks struct{ NoopLoadHooks }
type testRenderHooks struct{ NoopRenderHooks }
