package httpclient_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/httpclient"
	httptestutil "github.com/kbukum/netc/httpclient/testutil"
	"github.com/kbukum/netc/logger"
	"github.com/kbukum/netc/provider"
	"github.com/kbukum/netc/testutil"
)

type newComment struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

func newTransport(t *testing.T) *httptestutil.Transport {
	t.Helper()
	tr := httptestutil.NewTransport()
	testutil.T(t).Setup(tr)
	t.Cleanup(httpclient.ResetDefaults)
	return tr
}

func TestClient_RecordsPlainRequest(t *testing.T) {
	tr := newTransport(t)
	client := httpclient.NewClient[httpclient.Empty, httpclient.Empty](httpclient.WithTransport(tr))

	if _, err := client.Do(context.Background(), httpclient.NewRequest("https://api.example.com/comments")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := tr.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	if got.URL != "https://api.example.com/comments" {
		t.Errorf("unexpected url %q", got.URL)
	}
	if got.Method != httpclient.MethodGet {
		t.Errorf("expected GET, got %s", got.Method)
	}
	if got.Body != nil {
		t.Errorf("expected no body, got %s", got.Body)
	}
}

func TestClient_PostEncodesSnakeCase(t *testing.T) {
	tr := newTransport(t)
	client := httpclient.NewClient[httpclient.Empty, apiError](httpclient.WithTransport(tr))

	req := httpclient.NewBodyRequest("https://api.example.com/comments",
		newComment{Name: "Josue", LastName: "Hernandez"},
		httpclient.WithMethod(httpclient.MethodPost))
	if _, err := client.Do(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tr.LastRequest()
	if string(got.Body) != `{"name":"Josue","last_name":"Hernandez"}` {
		t.Errorf("expected last_name on the wire, got %s", got.Body)
	}
}

func TestClient_Outcomes(t *testing.T) {
	tr := newTransport(t)
	client := httpclient.NewClient[user, apiError](httpclient.WithTransport(tr))
	ctx := context.Background()
	req := httpclient.NewRequest("https://api.example.com/users/1")

	if err := tr.RespondJSON(200, map[string]any{"id": 1, "first_name": "Ada"}); err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(ctx, req)
	if err != nil || resp.Value.FirstName != "Ada" {
		t.Errorf("expected success, got %+v %v", resp, err)
	}
	if resp != nil && resp.Header("Content-Type") != "application/json" {
		t.Errorf("expected headers to be carried, got %v", resp.Headers)
	}

	tr.Respond(404, []byte(`{"message":"not found"}`), nil)
	_, err = client.Do(ctx, req)
	if detail, ok := httpclient.AsInvalidRequest[apiError](err); !ok || detail.Message != "not found" {
		t.Errorf("expected invalid request, got %v", err)
	}

	tr.Respond(500, []byte("<html>oops</html>"), nil)
	_, err = client.Do(ctx, req)
	if !httpclient.IsInvalidResponse(err) {
		t.Errorf("expected invalid response, got %v", err)
	}

	tr.Respond(200, []byte(`{"id":"one"}`), nil)
	_, err = client.Do(ctx, req)
	if !httpclient.IsTypeMismatch(err) {
		t.Errorf("expected type mismatch, got %v", err)
	}

	cause := errors.New("network down")
	tr.Fail(cause)
	_, err = client.Do(ctx, req)
	if !httpclient.IsTransportFailure(err) || !errors.Is(err, cause) {
		t.Errorf("expected transport failure with cause, got %v", err)
	}

	if tr.Count() != 5 {
		t.Errorf("expected 5 recorded requests, got %d", tr.Count())
	}
}

func TestClient_CapturedPolicyIgnoresGlobal(t *testing.T) {
	tr := newTransport(t)
	tr.Respond(200, []byte(`{"first_name":"Ada"}`), nil)

	captured := httpclient.NewClient[user, apiError](
		httpclient.WithTransport(tr),
		httpclient.WithPolicy(casing.DefaultPolicy()),
	)
	late := httpclient.NewClient[user, apiError](httpclient.WithTransport(tr))

	casing.SetGlobal(casing.Policy{Encoding: casing.Identity(), Decoding: casing.Identity()})

	resp, err := captured.Do(context.Background(), httpclient.NewRequest("u"))
	if err != nil || resp.Value.FirstName != "Ada" {
		t.Errorf("expected captured snake_case policy to decode, got %+v %v", resp, err)
	}
	resp, err = late.Do(context.Background(), httpclient.NewRequest("u"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value.FirstName != "" {
		t.Errorf("expected identity global policy to leave first_name unmatched, got %q", resp.Value.FirstName)
	}

	casing.Reset()
	resp, _ = late.Do(context.Background(), httpclient.NewRequest("u"))
	if resp == nil || resp.Value.FirstName != "Ada" {
		t.Error("expected reset policy to be observed by the late-bound client")
	}
}

func TestClient_DefaultTransport(t *testing.T) {
	tr := newTransport(t)
	httpclient.SetDefault(tr)
	client := httpclient.NewClient[httpclient.Empty, httpclient.Empty]()
	if client.Name() != tr.Name() {
		t.Errorf("expected default transport, got %q", client.Name())
	}
	if !client.IsAvailable(context.Background()) {
		t.Error("expected client to be available")
	}
	if _, err := client.Execute(context.Background(), httpclient.NewRequest("u")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if tr.Count() != 1 {
		t.Errorf("expected default transport to receive the call, got %d", tr.Count())
	}
}

func TestClient_CancelBeforeTransportYields(t *testing.T) {
	tr := newTransport(t)
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	tr.Handle(func(ctx context.Context, _ httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
		<-block
		return &httpclient.TransportResponse{StatusCode: 200, Body: []byte(`{}`)}, nil
	})
	client := httpclient.NewClient[httpclient.Empty, apiError](httpclient.WithTransport(tr))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Do(ctx, httpclient.NewRequest("u"))
	if httpclient.KindOf(err) != httpclient.KindUnknown {
		t.Fatalf("expected unknown kind, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline cause, got %v", err)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	tr := newTransport(t)
	client := httpclient.NewClient[httpclient.Empty, apiError](httpclient.WithTransport(tr))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Do(ctx, httpclient.NewRequest("u"))
	if !errors.Is(err, context.Canceled) || !errors.Is(err, httpclient.ErrUnknown) {
		t.Errorf("expected canceled unknown failure, got %v", err)
	}
	if tr.Count() != 0 {
		t.Errorf("expected no dispatch, got %d", tr.Count())
	}
}

func TestClient_DoAsync(t *testing.T) {
	tr := newTransport(t)
	tr.Respond(200, []byte(`{"id":9}`), nil)
	client := httpclient.NewClient[user, apiError](httpclient.WithTransport(tr))

	ch := client.DoAsync(context.Background(), httpclient.NewRequest("u"))
	res, ok := <-ch
	if !ok {
		t.Fatal("expected a result")
	}
	if res.Err != nil || res.Response.Value.ID != 9 {
		t.Errorf("unexpected result %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel to close after one value")
	}
}

func TestClient_DoAsyncCancellation(t *testing.T) {
	tr := newTransport(t)
	tr.Hang()
	client := httpclient.NewClient[user, apiError](httpclient.WithTransport(tr))

	ctx, cancel := context.WithCancel(context.Background())
	ch := client.DoAsync(ctx, httpclient.NewRequest("u"))
	cancel()

	select {
	case res := <-ch:
		if res.Response != nil {
			t.Error("expected no response after cancellation")
		}
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("expected cancellation failure, got %v", res.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected the cancellation failure to be delivered")
	}
}

func TestClient_NilRequest(t *testing.T) {
	client := httpclient.NewClient[user, apiError](httpclient.WithTransport(newTransport(t)))
	if _, err := client.Do(context.Background(), nil); httpclient.KindOf(err) != httpclient.KindUnknown || err == nil {
		t.Errorf("expected unknown failure, got %v", err)
	}
}

func TestClient_Middleware(t *testing.T) {
	tr := newTransport(t)
	var calls atomic.Int32
	counting := func(inner httpclient.Transport) httpclient.Transport {
		return httpclient.TransportFunc(inner.Name(), func(ctx context.Context, req httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
			calls.Add(1)
			return inner.Execute(ctx, req)
		})
	}
	client := httpclient.NewClient[httpclient.Empty, apiError](
		httpclient.WithTransport(tr),
		httpclient.WithLogger(logger.Nop()),
		httpclient.WithMiddleware(
			provider.WithLogging[httpclient.TransportRequest, *httpclient.TransportResponse](logger.Nop()),
			counting,
		),
	)
	if _, err := client.Do(context.Background(), httpclient.NewRequest("u")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected middleware to run once, got %d", calls.Load())
	}
	if client.Transport() == httpclient.Transport(tr) {
		t.Error("expected the transport to be wrapped")
	}
}

func TestTransport_SnapshotRestore(t *testing.T) {
	tr := newTransport(t)
	client := httpclient.NewClient[httpclient.Empty, httpclient.Empty](httpclient.WithTransport(tr))
	h := testutil.T(t)

	_, _ = client.Do(context.Background(), httpclient.NewRequest("first"))
	snap := h.Snapshot(tr)
	tr.Fail(errors.New("x"))
	_, _ = client.Do(context.Background(), httpclient.NewRequest("second"))

	h.Restore(tr, snap)
	if tr.Count() != 1 {
		t.Errorf("expected 1 request after restore, got %d", tr.Count())
	}
	if _, err := client.Do(context.Background(), httpclient.NewRequest("third")); err != nil {
		t.Errorf("expected restored handler to succeed, got %v", err)
	}

	h.Reset(tr)
	if tr.Count() != 0 {
		t.Errorf("expected reset to clear requests, got %d", tr.Count())
	}
}
