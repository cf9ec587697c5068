package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	v := NoopValidationHooks{}
	v.OnValidate(ctx, 3, 2, true, "ok", time.Millisecond)
	v.OnInputError(ctx, errors.New("dangling edge"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "validation")
	c.OnCacheMiss(ctx, "validation")
	c.OnCacheSet(ctx, "validation", 64)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/validate")
	h.OnResponse(ctx, "POST", "/v1/validate", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Error("Validation() should return NoopValidationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customValidation := &testValidationHooks{}
	SetValidationHooks(customValidation)
	if Validation() != customValidation {
		t.Error("SetValidationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil is ignored
	SetValidationHooks(nil)
	if Validation() != customValidation {
		t.Error("SetValidationHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Error("Reset() should restore NoopValidationHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &testValidationHooks{}
	SetValidationHooks(h)

	Validation().OnValidate(context.Background(), 2, 1, true, "ok", time.Millisecond)
	Validation().OnValidate(context.Background(), 2, 2, false, "cycle", time.Millisecond)

	if h.calls != 2 {
		t.Errorf("calls = %d, want 2", h.calls)
	}
	if h.lastReason != "cycle" || h.lastValid {
		t.Errorf("last event = (%v, %q)", h.lastValid, h.lastReason)
	}
}

type testValidationHooks struct {
	calls      int
	lastValid  bool
	lastReason string
}

func (h *testValidationHooks) OnValidate(_ context.Context, _, _ int, valid bool, reason string, _ time.Duration) {
	h.calls++
	h.lastValid = valid
	h.lastReason = reason
}
func (h *testValidationHooks) OnInputError(context.Context, error) {}

type testCacheHooks struct{}

func (testCacheHooks) OnCacheHit(context.Context, string)      {}
func (testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (testCacheHooks) OnCacheSet(context.Context, string, int) {}

type testHTTPHooks struct{}

func (testHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (testHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
