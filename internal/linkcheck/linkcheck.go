package linkcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"

	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/httpx"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

const (
	defaultConcurrency = 8
	defaultMaxPages    = 500
	maxBodyBytes       = 4 << 20

	retryBaseDelay = 250 * time.Millisecond
	retryMaxDelay  = 5 * time.Second
)

// Page is one fetched URL.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

// Fetcher retrieves a site-relative path such as "/topic/data?x=1".
type Fetcher interface {
	Fetch(ctx context.Context, path string) (Page, error)
}

type handlerFetcher struct {
	h http.Handler
}

// HandlerFetcher serves requests in-process without opening a socket.
func HandlerFetcher(h http.Handler) Fetcher {
	return &handlerFetcher{h: h}
}

func (f *handlerFetcher) Fetch(ctx context.Context, path string) (Page, error) {
	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return Page{
		Status:      rec.Code,
		ContentType: rec.Header().Get("Content-Type"),
		Body:        rec.Body.Bytes(),
	}, nil
}

type httpFetcher struct {
	client  *http.Client
	base    *url.URL
	retries int
}

// HTTPFetcher resolves paths against baseURL and fetches them over the
// network. Timeouts, 429s and 5xx responses are retried up to retries times.
func HTTPFetcher(client *http.Client, baseURL string, retries int) (Fetcher, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute http(s)", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if retries < 0 {
		retries = 0
	}
	return &httpFetcher{client: client, base: u, retries: retries}, nil
}

func (f *httpFetcher) Fetch(ctx context.Context, path string) (Page, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return Page{}, err
	}
	target := f.base.ResolveReference(ref).String()

	backoff := retryBaseDelay
	for attempt := 0; ; attempt++ {
		page, resp, err := f.fetchOnce(ctx, target)
		retryable := httpx.IsRetryableError(err) || (err == nil && httpx.IsRetryableHTTPStatus(page.Status))
		if !retryable || attempt >= f.retries {
			return page, err
		}
		wait := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, retryMaxDelay))
		if serr := httpx.Sleep(ctx, wait); serr != nil {
			return page, err
		}
		backoff *= 2
	}
}

func (f *httpFetcher) fetchOnce(ctx context.Context, target string) (Page, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Page{}, resp, fmt.Errorf("read body: %w", err)
	}
	return Page{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type"), Body: body}, resp, nil
}

type Options struct {
	Concurrency int
	MaxPages    int
	Metrics     *observability.Metrics
}

// Result is the outcome for one internal URL.
type Result struct {
	Path     string
	Status   int
	Referrer string
	Err      string
}

func (r Result) OK() bool {
	return r.Err == "" && r.Status == http.StatusOK
}

type Report struct {
	Checked int
	Broken  []Result
}

func (r Report) OK() bool { return len(r.Broken) == 0 }

// Checker crawls internal links breadth-first starting from a set of seeds.
type Checker struct {
	log     *logger.Logger
	fetcher Fetcher
	opts    Options
}

func New(log *logger.Logger, fetcher Fetcher, opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	return &Checker{log: log.With("component", "LinkChecker"), fetcher: fetcher, opts: opts}
}

// Run fetches every internal URL reachable from seeds. Links inside HTML
// responses are followed; other content types are only status-checked.
func (c *Checker) Run(ctx context.Context, seeds ...string) (Report, error) {
	if len(seeds) == 0 {
		seeds = []string{"/"}
	}
	start := time.Now()

	visited := make(map[string]struct{})
	var frontier []Result
	for _, s := range seeds {
		p, ok := normalize(s)
		if !ok {
			return Report{}, fmt.Errorf("seed %q is not a site path", s)
		}
		if _, seen := visited[p]; !seen {
			visited[p] = struct{}{}
			frontier = append(frontier, Result{Path: p})
		}
	}

	var report Report
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		results := make([]Result, len(frontier))
		found := make([][]string, len(frontier))
		var mu sync.Mutex

		p := pool.New().WithMaxGoroutines(c.opts.Concurrency)
		for idx, item := range frontier {
			idx, item := idx, item
			p.Go(func() {
				res, links := c.check(ctx, item)
				mu.Lock()
				results[idx] = res
				found[idx] = links
				mu.Unlock()
			})
		}
		p.Wait()

		var next []Result
		for idx, res := range results {
			report.Checked++
			if !res.OK() {
				report.Broken = append(report.Broken, res)
			}
			for _, link := range found[idx] {
				if _, seen := visited[link]; seen {
					continue
				}
				if len(visited) >= c.opts.MaxPages {
					c.log.Warn("link check page limit reached", "max_pages", c.opts.MaxPages)
					break
				}
				visited[link] = struct{}{}
				next = append(next, Result{Path: link, Referrer: res.Path})
			}
		}
		frontier = next
	}

	sort.Slice(report.Broken, func(i, j int) bool { return report.Broken[i].Path < report.Broken[j].Path })
	c.log.Info("link check finished",
		"checked", report.Checked,
		"broken", len(report.Broken),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (c *Checker) check(ctx context.Context, item Result) (Result, []string) {
	page, err := c.fetcher.Fetch(ctx, item.Path)
	if err != nil {
		item.Err = err.Error()
		c.opts.Metrics.IncLinkCheck("error")
		c.log.Warn("link fetch failed", "path", item.Path, "referrer", item.Referrer, "error", err)
		return item, nil
	}
	item.Status = page.Status
	c.opts.Metrics.IncLinkCheck(statusClass(page.Status))
	if page.Status != http.StatusOK {
		c.log.Warn("broken link", "path", item.Path, "status", page.Status, "referrer", item.Referrer)
		return item, nil
	}
	if !isHTML(page.ContentType) {
		return item, nil
	}
	links, err := ExtractLinks(bytes.NewReader(page.Body))
	if err != nil {
		item.Err = fmt.Sprintf("parse html: %v", err)
		return item, nil
	}
	return item, links
}

// ExtractLinks returns the normalized internal targets of every a[href] and
// link[href] in an HTML document, deduplicated, in document order.
func ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	var out []string
	seen := make(map[string]struct{})
	doc.Find("a[href], link[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		p, ok := normalize(href)
		if !ok {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	})
	return out, nil
}

// normalize keeps site-relative paths and drops fragments. Absolute,
// protocol-relative and non-http references are rejected.
func normalize(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.RequestURI(), true
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "other"
	}
}
