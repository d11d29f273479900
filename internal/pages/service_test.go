package pages

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/adtech-learning/internal/domain/content"
	"github.com/yungbote/adtech-learning/internal/platform/apierr"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
	"github.com/yungbote/adtech-learning/internal/render"
)

type countingRenderer struct {
	calls atomic.Int64
	delay time.Duration
	fail  bool
}

func (c *countingRenderer) out(kind, id string) ([]byte, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.fail {
		return nil, errors.New("template exploded")
	}
	return []byte(kind + ":" + id), nil
}

func (c *countingRenderer) Home(id content.ExampleID) ([]byte, error) {
	return c.out("home", string(id))
}
func (c *countingRenderer) Topic(id content.TopicID) ([]byte, error) {
	return c.out("topic", string(id))
}
func (c *countingRenderer) Example(id content.ExampleID) ([]byte, error) {
	return c.out("example", string(id))
}
func (c *countingRenderer) Glossary(id content.GlossaryID) ([]byte, error) {
	return c.out("glossary", string(id))
}

func newService(t *testing.T, r Renderer, cache bool) Service {
	t.Helper()
	reg, err := content.Load()
	require.NoError(t, err)
	return NewPageService(logger.NewNop(), reg, r, Options{CacheEnabled: cache})
}

func TestHome_FallsBackToDefaultExample(t *testing.T) {
	t.Parallel()
	svc := newService(t, &countingRenderer{}, true)
	ctx := context.Background()

	for _, param := range []string{"", "bogus", "INSTAGRAM", "instagram"} {
		body, err := svc.Home(ctx, param)
		require.NoError(t, err)
		assert.Equal(t, "home:instagram", string(body), "param %q", param)
	}
	body, err := svc.Home(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "home:search", string(body))
}

func TestGlossary_FallsBackToFirstTerm(t *testing.T) {
	t.Parallel()
	svc := newService(t, &countingRenderer{}, true)

	for _, param := range []string{"", "cookie", "Yield"} {
		body, err := svc.Glossary(context.Background(), param)
		require.NoError(t, err)
		assert.Equal(t, "glossary:pixel", string(body), "param %q", param)
	}
	body, err := svc.Glossary(context.Background(), "yield")
	require.NoError(t, err)
	assert.Equal(t, "glossary:yield", string(body))
}

func TestTopicAndExample_NotFound(t *testing.T) {
	t.Parallel()
	svc := newService(t, &countingRenderer{}, true)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() ([]byte, error)
		code string
		msg  string
	}{
		{"unknown topic", func() ([]byte, error) { return svc.Topic(ctx, "nonexistent") }, CodeTopicNotFound, "Topic not found"},
		{"empty topic", func() ([]byte, error) { return svc.Topic(ctx, "") }, CodeTopicNotFound, "Topic not found"},
		{"unknown example", func() ([]byte, error) { return svc.Example(ctx, "tiktok") }, CodeExampleNotFound, "Example not found"},
		{"cased example", func() ([]byte, error) { return svc.Example(ctx, "YouTube") }, CodeExampleNotFound, "Example not found"},
	}
	for _, tc := range cases {
		body, err := tc.call()
		require.Error(t, err, tc.name)
		assert.Nil(t, body)
		var ae *apierr.Error
		require.True(t, errors.As(err, &ae), tc.name)
		assert.Equal(t, http.StatusNotFound, ae.Status)
		assert.Equal(t, tc.code, ae.Code)
		assert.Equal(t, tc.msg, ae.Error())
	}
}

func TestCache_FallbackSharesDefaultEntry(t *testing.T) {
	t.Parallel()
	r := &countingRenderer{}
	svc := newService(t, r, true)
	ctx := context.Background()

	_, err := svc.Home(ctx, "")
	require.NoError(t, err)
	_, err = svc.Home(ctx, "bogus")
	require.NoError(t, err)
	_, err = svc.Home(ctx, "instagram")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.calls.Load())
}

func TestCache_ConcurrentMissRendersOnce(t *testing.T) {
	t.Parallel()
	r := &countingRenderer{delay: 20 * time.Millisecond}
	svc := newService(t, r, true)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, err := svc.Topic(context.Background(), "data")
			if err != nil || string(body) != "topic:data" {
				t.Errorf("got=%q err=%v", body, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), r.calls.Load())
}

func TestCache_Disabled(t *testing.T) {
	t.Parallel()
	r := &countingRenderer{}
	svc := newService(t, r, false)

	for i := 0; i < 3; i++ {
		_, err := svc.Example(context.Background(), "search")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), r.calls.Load())
	require.NoError(t, svc.Warm(context.Background()))
	assert.Equal(t, int64(3), r.calls.Load())
}

func TestRenderFailure_IsInternal(t *testing.T) {
	t.Parallel()
	svc := newService(t, &countingRenderer{fail: true}, true)

	_, err := svc.Topic(context.Background(), "data")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.As(err).Status)
}

func TestWarm_FillsEveryPage(t *testing.T) {
	t.Parallel()
	r := &countingRenderer{}
	svc := newService(t, r, true)

	require.NoError(t, svc.Warm(context.Background()))
	want := int64(len(content.ExampleIDs)*2 + len(content.TopicIDs) + len(content.GlossaryIDs))
	assert.Equal(t, want, r.calls.Load())

	_, err := svc.Glossary(context.Background(), "vast")
	require.NoError(t, err)
	assert.Equal(t, want, r.calls.Load())
}

func TestPaths_CoverEveryPage(t *testing.T) {
	t.Parallel()
	paths := AllPaths()
	assert.Equal(t, "/", paths[0])
	assert.Contains(t, paths, "/glossary?term=clean-room")
	assert.Contains(t, paths, "/topic/measurement-currency")
	assert.Contains(t, paths, "/example/video-player")
	assert.Len(t, paths, 2+len(content.ExampleIDs)*2+len(content.GlossaryIDs)+len(content.TopicIDs))
}

func TestRealRenderer_CachedEqualsUncached(t *testing.T) {
	t.Parallel()
	reg, err := content.Load()
	require.NoError(t, err)
	rr, err := render.New(reg)
	require.NoError(t, err)

	cached := NewPageService(logger.NewNop(), reg, rr, Options{CacheEnabled: true})
	uncached := NewPageService(logger.NewNop(), reg, rr, Options{CacheEnabled: false})
	ctx := context.Background()

	for _, p := range []string{"web-display", "nope"} {
		a, err := cached.Home(ctx, p)
		require.NoError(t, err)
		b, err := uncached.Home(ctx, p)
		require.NoError(t, err)
		if !bytes.Equal(a, b) {
			t.Fatalf("home %q differs between cached and uncached", p)
		}
	}
	a, err := cached.Glossary(ctx, "")
	require.NoError(t, err)
	b, err := uncached.Glossary(ctx, "pixel")
	require.NoError(t, err)
	if !bytes.Equal(a, b) {
		t.Fatalf("glossary fallback should equal the pixel page")
	}
}
