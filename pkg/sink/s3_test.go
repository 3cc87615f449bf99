package sink

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ripple-dev/ripple/pkg/ripple"
)

// stubS3 records PutObject calls.
type stubS3 struct {
	puts []*s3.PutObjectInput
	err  error
}

func (s *stubS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.puts = append(s.puts, params)
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3TargetPublishesOnChange(t *testing.T) {
	stub := &stubS3{}
	reg := ripple.New()
	st := reg.GetOrCreate("status", ripple.State{"msg": "booting"})

	target := NewS3Target(stub, "status-bucket", "status.txt")
	Bind(st, target, WithTransform(func(s ripple.State) any {
		return s["msg"]
	}))

	st.Set(ripple.State{"msg": "ready"})

	if len(stub.puts) != 2 {
		t.Fatalf("expected 2 puts (initial + change), got %d", len(stub.puts))
	}

	last := stub.puts[1]
	if *last.Bucket != "status-bucket" || *last.Key != "status.txt" {
		t.Errorf("unexpected destination: %s/%s", *last.Bucket, *last.Key)
	}
	body, err := io.ReadAll(last.Body)
	if err != nil {
		t.Fatalf("reading put body: %v", err)
	}
	if string(body) != "ready" {
		t.Errorf("expected body %q, got %q", "ready", string(body))
	}
	if target.LastError() != nil {
		t.Errorf("unexpected publish error: %v", target.LastError())
	}
}

func TestS3TargetAttrBecomesMetadata(t *testing.T) {
	stub := &stubS3{}
	target := NewS3Target(stub, "b", "k")

	target.SetAttr("version", "7")

	if len(stub.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(stub.puts))
	}
	if got := stub.puts[0].Metadata["version"]; got != "7" {
		t.Errorf("expected metadata version=7, got %q", got)
	}
}

func TestS3TargetContentType(t *testing.T) {
	stub := &stubS3{}
	target := NewS3Target(stub, "b", "k").WithContentType("application/json")

	target.SetText(`{"ok":true}`)

	if got := *stub.puts[0].ContentType; got != "application/json" {
		t.Errorf("expected content type override, got %q", got)
	}
}

func TestS3TargetFailureDoesNotInterruptPropagation(t *testing.T) {
	stub := &stubS3{err: errors.New("denied")}
	reg := ripple.New()
	st := reg.GetOrCreate("status", ripple.State{})

	target := NewS3Target(stub, "b", "k")
	Bind(st, target)

	var notified int
	st.Subscribe(func(next, prev ripple.State) { notified++ })
	st.Set(ripple.State{"msg": "x"})

	if notified != 1 {
		t.Errorf("publish failure must not break fan-out, got %d notifications", notified)
	}
	if target.LastError() == nil {
		t.Error("expected LastError to retain the failure")
	}
}
