package cronrunner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAdd_RejectsBadSpec(t *testing.T) {
	r := New(context.Background(), zap.NewNop())
	_, err := r.Add("feed_sync", "not a spec", func(context.Context) error { return nil })
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "feed_sync") {
		t.Fatalf("err=%v should name the job", err)
	}
}

func TestAdd_DescriptorsAndFieldForms(t *testing.T) {
	r := New(context.Background(), nil)
	for _, spec := range []string{"@every 10m", "*/5 * * * *", "0 */5 * * * *", "@hourly"} {
		if _, err := r.Add("job", spec, func(context.Context) error { return nil }); err != nil {
			t.Fatalf("spec %q: %v", spec, err)
		}
	}
	if n := len(r.Entries()); n != 4 {
		t.Fatalf("entries=%d want 4", n)
	}
}

func TestJob_RunsWithBaseContext(t *testing.T) {
	type key struct{}
	base := context.WithValue(context.Background(), key{}, "base")
	r := New(base, zap.NewNop())

	seen := make(chan any, 4)
	_, err := r.Add("tick", "@every 1s", func(ctx context.Context) error {
		seen <- ctx.Value(key{})
		return errors.New("logged, not fatal")
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	r.Start()
	defer r.Stop()

	select {
	case v := <-seen:
		if v != "base" {
			t.Fatalf("ctx value=%v want base", v)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("job did not run")
	}
}
