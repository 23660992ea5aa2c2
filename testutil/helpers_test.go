package testutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/netc/component"
	"github.com/kbukum/netc/testutil"
)

// counter is a TestComponent whose state is a single number.
type counter struct {
	name     string
	value    int
	started  bool
	startErr error
}

func (c *counter) Name() string { return c.name }
func (c *counter) Start(context.Context) error {
	if c.startErr != nil {
		return c.startErr
	}
	c.started = true
	return nil
}
func (c *counter) Stop(context.Context) error { c.started = false; return nil }
func (c *counter) Health(context.Context) component.Health {
	return component.Health{Name: c.name, Status: component.StatusHealthy}
}
func (c *counter) Reset(context.Context) error                { c.value = 0; return nil }
func (c *counter) Snapshot(context.Context) (interface{}, error) { return c.value, nil }
func (c *counter) Restore(_ context.Context, s interface{}) error {
	v, ok := s.(int)
	if !ok {
		return errors.New("bad snapshot")
	}
	c.value = v
	return nil
}

var _ testutil.TestComponent = (*counter)(nil)

func TestSetup(t *testing.T) {
	c := &counter{name: "c"}
	cleanup, err := testutil.Setup(c)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if !c.started {
		t.Fatal("expected component to be started")
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if c.started {
		t.Error("expected component to be stopped after cleanup")
	}
}

func TestSetupStartError(t *testing.T) {
	c := &counter{name: "c", startErr: errors.New("no port")}
	if _, err := testutil.Setup(c); err == nil {
		t.Fatal("expected start error")
	}
}

func TestT_SetupStopsOnCleanup(t *testing.T) {
	c := &counter{name: "c"}
	t.Run("inner", func(t *testing.T) {
		testutil.T(t).Setup(c)
		if !c.started {
			t.Fatal("expected component to be started")
		}
	})
	if c.started {
		t.Error("expected component to be stopped when the subtest ended")
	}
}

func TestT_ResetSnapshotRestore(t *testing.T) {
	c := &counter{name: "c", value: 3}
	h := testutil.T(t).WithContext(context.Background())

	snap := h.Snapshot(c)
	c.value = 10
	h.Restore(c, snap)
	if c.value != 3 {
		t.Errorf("expected 3 after restore, got %d", c.value)
	}

	h.Reset(c)
	if c.value != 0 {
		t.Errorf("expected 0 after reset, got %d", c.value)
	}
}

func TestT_Preserve(t *testing.T) {
	c := &counter{name: "c", value: 5}
	t.Run("mutates", func(t *testing.T) {
		testutil.T(t).Preserve(c)
		c.value = 99
	})
	if c.value != 5 {
		t.Errorf("expected value restored to 5, got %d", c.value)
	}
}
