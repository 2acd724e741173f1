package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, hit, err := c.Get(ctx, "k"); data != nil || hit || err != nil {
		t.Errorf("Get = %q, %v, %v, want a clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"hello", "hello", true},
		{"hello", "world", false},
		{"", "", true},
	}
	for _, tt := range tests {
		ha, hb := Hash([]byte(tt.a)), Hash([]byte(tt.b))
		if (ha == hb) != tt.same {
			t.Errorf("Hash(%q) == Hash(%q) is %v, want %v", tt.a, tt.b, ha == hb, tt.same)
		}
		if len(ha) != 64 {
			t.Errorf("len(Hash(%q)) = %d, want 64", tt.a, len(ha))
		}
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Format: "svg", Mode: "whole", Scale: 8, LineWidth: 0.08, Palette: "dark", Guides: true}
	want := k.ArtifactKey("grid", base)
	if !strings.HasPrefix(want, "artifact:") || len(want) != len("artifact:")+64 {
		t.Fatalf("ArtifactKey shape = %s", want)
	}
	if again := k.ArtifactKey("grid", base); again != want {
		t.Errorf("ArtifactKey not deterministic: %s != %s", again, want)
	}

	variants := map[string]func(*ArtifactKeyOpts){
		"format":     func(o *ArtifactKeyOpts) { o.Format = "png" },
		"mode":       func(o *ArtifactKeyOpts) { o.Mode = "subgrid" },
		"scale":      func(o *ArtifactKeyOpts) { o.Scale = 4 },
		"line width": func(o *ArtifactKeyOpts) { o.LineWidth = 0.2 },
		"palette":    func(o *ArtifactKeyOpts) { o.Palette = "paper" },
		"guides":     func(o *ArtifactKeyOpts) { o.Guides = false },
		"labels":     func(o *ArtifactKeyOpts) { o.Labels = true },
	}
	for name, edit := range variants {
		o := base
		edit(&o)
		if k.ArtifactKey("grid", o) == want {
			t.Errorf("changing %s did not change the key", name)
		}
	}
	if k.ArtifactKey("other grid", base) == want {
		t.Error("changing the grid hash did not change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := ArtifactKeyOpts{Format: "svg", Mode: "subgrid", Scale: 8}
	tests := []struct {
		name  string
		inner Keyer
	}{
		{"default inner", NewDefaultKeyer()},
		{"nil inner", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScopedKeyer(tt.inner, "deploy:eu:").ArtifactKey("h", opts)
			if want := "deploy:eu:" + NewDefaultKeyer().ArtifactKey("h", opts); got != want {
				t.Errorf("ArtifactKey = %s, want %s", got, want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) || err.Error() != ErrNetwork.Error() {
		t.Errorf("Retryable(ErrNetwork) = %v, lost its identity", err)
	}
	if !IsRetryable(fmt.Errorf("get: %w", err)) {
		t.Error("IsRetryable should see through wrapping")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestBackoffDo(t *testing.T) {
	errPlain := errors.New("plain")
	b := Backoff{Attempts: 3, Initial: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"plain error stops", 5, errPlain, 1, errPlain},
		{"recovers after retry", 1, Retryable(ErrNetwork), 2, nil},
		{"gives up", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("Do() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error { return Retryable(ErrNetwork) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}

func TestBackoffSingleAttempt(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if calls != 1 {
		t.Errorf("zero Backoff made %d calls, want 1", calls)
	}
}
