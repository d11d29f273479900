package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryableHTTPStatus(t *testing.T) {
	t.Parallel()
	for code, want := range map[int]bool{200: false, 404: false, 408: true, 429: true, 500: true, 503: true, 600: false} {
		if got := IsRetryableHTTPStatus(code); got != want {
			t.Fatalf("code %d: got=%v want=%v", code, got, want)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{context.Canceled, false},
		{fmt.Errorf("get: %w", context.DeadlineExceeded), true},
		{fmt.Errorf("dial: %w", timeoutErr{}), true},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("%v: got=%v want=%v", tc.err, got, tc.want)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	t.Parallel()
	resp := &http.Response{Header: http.Header{}}
	if got := RetryAfterDuration(resp, time.Second, 0); got != time.Second {
		t.Fatalf("fallback: got=%v", got)
	}
	resp.Header.Set("Retry-After", "3")
	if got := RetryAfterDuration(resp, time.Second, 0); got != 3*time.Second {
		t.Fatalf("header: got=%v", got)
	}
	if got := RetryAfterDuration(resp, time.Second, 2*time.Second); got != 2*time.Second {
		t.Fatalf("capped: got=%v", got)
	}
}

func TestJitterSleepBounds(t *testing.T) {
	t.Parallel()
	for i := 0; i < 100; i++ {
		d := JitterSleep(time.Second)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("jitter out of range: %v", d)
		}
	}
	if JitterSleep(0) != 0 {
		t.Fatal("zero base should not sleep")
	}
}

func TestSleepHonoursContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("got=%v", err)
	}
}
