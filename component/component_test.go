package component

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	order    *[]string
	sawDL    bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	_, m.sawDL = ctx.Deadline()
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "http-client", Details: "https://api.example.com"}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockComponent{name: "http"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "http"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if r.Get("http") == nil || r.Get("missing") != nil {
		t.Error("unexpected Get result")
	}
}

func TestStartStopOrder(t *testing.T) {
	var order []string
	r := NewRegistry()
	a := &mockComponent{name: "a", order: &order}
	b := &mockComponent{name: "b", order: &order}
	_ = r.Register(a)
	_ = r.Register(b)

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := "start:a start:b stop:b stop:a"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !a.sawDL {
		t.Error("expected stop context to carry a deadline")
	}
}

func TestStartAllFailure(t *testing.T) {
	var order []string
	r := NewRegistry()
	_ = r.Register(&mockComponent{name: "a", order: &order})
	_ = r.Register(&mockComponent{name: "b", order: &order, startErr: errors.New("boom")})
	_ = r.Register(&mockComponent{name: "c", order: &order})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b") {
		t.Fatalf("expected start failure for b, got %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	want := "start:a start:b stop:a"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStopAllJoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	r := NewRegistry()
	r.SetStopTimeout(time.Second)
	_ = r.Register(&mockComponent{name: "a", stopErr: errA})
	_ = r.Register(&mockComponent{name: "b", stopErr: errB})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both stop errors, got %v", err)
	}
}

func TestHealthAllAndDescribe(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&mockComponent{name: "plain", health: Health{Name: "plain", Status: StatusHealthy}})
	_ = r.Register(&describedComponent{mockComponent{name: "http", health: Health{Name: "http", Status: StatusDegraded}}})

	health := r.HealthAll(context.Background())
	if len(health) != 2 || health[1].Status != StatusDegraded {
		t.Errorf("unexpected health: %+v", health)
	}

	descs := r.Describe()
	if len(descs) != 1 {
		t.Fatalf("expected 1 description, got %d", len(descs))
	}
	if descs[0].Name != "http" || descs[0].Type != "http-client" {
		t.Errorf("unexpected description: %+v", descs[0])
	}
}
