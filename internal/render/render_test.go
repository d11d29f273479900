package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/adtech-learning/internal/domain/content"
)

func newTestRenderer(t *testing.T) (*Renderer, *content.Registry) {
	t.Helper()
	reg, err := content.Load()
	require.NoError(t, err)
	r, err := New(reg)
	require.NoError(t, err)
	return r, reg
}

func parse(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestTopic_RendersEveryTopic(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	for _, id := range content.TopicIDs {
		id := id
		t.Run(string(id), func(t *testing.T) {
			body, err := r.Topic(id)
			require.NoError(t, err)
			doc := parse(t, body)
			tp := reg.Topic(id)

			assert.Equal(t, tp.Label, strings.TrimSpace(doc.Find("h1").First().Text()))
			assert.Equal(t, tp.Label+" – Ad Tech Deep Dive", doc.Find("title").Text())
			assert.Equal(t, len(tp.Overview)+len(tp.Technical)+len(tp.DeepDive), doc.Find("ul.topic-bullets li").Length())
			assert.Equal(t, 1, doc.Find(".audit-card").Length(), "topic %s audit card", id)
			assert.Equal(t, 1, doc.Find(".diagram").Length())
			assert.Equal(t, 1, doc.Find(".flow-diagram svg").Length())
		})
	}
}

func TestTopic_FragmentsKeepInlineLinks(t *testing.T) {
	t.Parallel()
	r, _ := newTestRenderer(t)

	body, err := r.Topic(content.TopicSellSide)
	require.NoError(t, err)
	doc := parse(t, body)
	href, ok := doc.Find("ul.topic-bullets a").First().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/glossary?term=yield", href)
}

func TestTopic_LabelIsEscaped(t *testing.T) {
	t.Parallel()
	r, _ := newTestRenderer(t)

	body, err := r.Topic(content.TopicData)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Data &amp; Identity")
	assert.NotContains(t, string(body), "Data & Identity")
}

func TestTopic_AuditCardShowsAuctionFacts(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	key, ok := r.TopicAuditKey(content.TopicSellSide)
	require.True(t, ok)
	audit, ok := reg.FakeAdAudit(key)
	require.True(t, ok)

	body, err := r.Topic(content.TopicSellSide)
	require.NoError(t, err)
	card := parse(t, body).Find(".audit-card")
	assert.Contains(t, card.Find(".audit-facts").Text(), audit.Price)
	assert.Contains(t, card.Find(".audit-facts").Text(), audit.SSP)
	assert.Equal(t, len(audit.Signals), card.Find(".audit-signal").Length())
	assert.Equal(t, 1, card.Find(".surface-banner").Length())
}

func TestTopic_MissingPresentationOmitsSections(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)
	delete(r.pres.Topics, content.TopicBuySide)

	body, err := r.Topic(content.TopicBuySide)
	require.NoError(t, err)
	doc := parse(t, body)
	assert.Equal(t, reg.Topic(content.TopicBuySide).Label, strings.TrimSpace(doc.Find("h1").First().Text()))
	assert.Zero(t, doc.Find(".audit-card").Length())
	assert.Zero(t, doc.Find(".diagram").Length())
	assert.Zero(t, doc.Find(".flow-diagram").Length())
	assert.Zero(t, doc.Find(".references").Length())
}

func TestTopic_DanglingAuditKeyOmitsCard(t *testing.T) {
	t.Parallel()
	r, _ := newTestRenderer(t)
	tp := r.pres.Topics[content.TopicData]
	tp.Audit = "no-such-audit"
	r.pres.Topics[content.TopicData] = tp

	body, err := r.Topic(content.TopicData)
	require.NoError(t, err)
	assert.Zero(t, parse(t, body).Find(".audit-card").Length())
}

func TestExample_RendersEveryExample(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	for _, id := range content.ExampleIDs {
		body, err := r.Example(id)
		require.NoError(t, err)
		doc := parse(t, body)
		ex := reg.Example(id)

		if got := strings.TrimSpace(doc.Find("h1").First().Text()); got != ex.Label {
			t.Fatalf("example %s h1: got=%q want=%q", id, got, ex.Label)
		}
		assert.Contains(t, doc.Find(".ecosystem-subtitle").First().Text(), ex.Surface)
		assert.Equal(t, 1, doc.Find(".surface").Length(), "example %s surface", id)
		assert.Equal(t, 1, doc.Find(".references a").Length())
	}
}

func TestExample_SurfaceFollowsAuditFormat(t *testing.T) {
	t.Parallel()
	r, _ := newTestRenderer(t)

	cases := map[content.ExampleID]string{
		content.ExampleInstagram:   ".surface-native",
		content.ExampleYouTube:     ".surface-video",
		content.ExampleWebDisplay:  ".surface-banner",
		content.ExampleSearch:      ".surface-search",
		content.ExampleVideoPlayer: ".surface-video",
	}
	for id, sel := range cases {
		body, err := r.Example(id)
		require.NoError(t, err)
		assert.Equal(t, 1, parse(t, body).Find(sel).Length(), "example %s", id)
	}
}

func TestHome_ActiveTab(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	body, err := r.Home(content.ExampleSearch)
	require.NoError(t, err)
	doc := parse(t, body)

	tabs := doc.Find(".example-tab")
	assert.Equal(t, len(content.ExampleIDs), tabs.Length())
	active := doc.Find(".example-tab.active")
	require.Equal(t, 1, active.Length())
	href, _ := active.Attr("href")
	assert.Equal(t, "/?example=search", href)

	link, _ := doc.Find(".insight-link").Attr("href")
	assert.Equal(t, "/example/search", link)
	assert.Equal(t, len(reg.Topics()), doc.Find(".topic-card").Length())
}

func TestGlossary_ListAndSelection(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	body, err := r.Glossary(content.GlossaryYield)
	require.NoError(t, err)
	doc := parse(t, body)

	var terms []string
	doc.Find(".glossary-item span").Each(func(_ int, s *goquery.Selection) {
		terms = append(terms, s.Text())
	})
	require.Len(t, terms, len(content.GlossaryIDs))
	for i, g := range reg.Glossary() {
		assert.Equal(t, g.Term, terms[i])
	}

	active := doc.Find(".glossary-item.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Yield", active.Find("span").Text())
	assert.Equal(t, "Yield", doc.Find(".glossary-term").Text())
	assert.Equal(t, 3, doc.Find(".glossary-related a").Length())
	assert.Equal(t, 1, doc.Find(".glossary-illustration svg").Length())
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()
	r, _ := newTestRenderer(t)

	renders := []func() ([]byte, error){
		func() ([]byte, error) { return r.Home(content.DefaultExampleID) },
		func() ([]byte, error) { return r.Glossary(content.GlossaryCleanRoom) },
		func() ([]byte, error) { return r.Topic(content.TopicMeasurementCurrency) },
		func() ([]byte, error) { return r.Example(content.ExampleVideoPlayer) },
	}
	for i, fn := range renders {
		a, err := fn()
		require.NoError(t, err)
		b, err := fn()
		require.NoError(t, err)
		if !bytes.Equal(a, b) {
			t.Fatalf("render %d differs between calls", i)
		}
	}
}

func TestPresentation_KeysResolve(t *testing.T) {
	t.Parallel()
	r, reg := newTestRenderer(t)

	for _, id := range content.TopicIDs {
		key, ok := r.TopicAuditKey(id)
		require.True(t, ok, "topic %s", id)
		_, ok = reg.FakeAdAudit(key)
		assert.True(t, ok, "topic %s audit %q", id, key)
	}
	for _, id := range content.ExampleIDs {
		key, ok := r.ExampleSurfaceKey(id)
		require.True(t, ok, "example %s", id)
		_, ok = reg.FakeAdAudit(key)
		assert.True(t, ok, "example %s surface %q", id, key)
	}
	for _, id := range content.GlossaryIDs {
		assert.NotEmpty(t, r.illustration(id), "glossary %s", id)
	}
}

func TestLoadPresentation_RejectsUnknownIDs(t *testing.T) {
	t.Parallel()
	_, err := loadPresentation([]byte("topics:\n  not-a-topic:\n    audit: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-topic")
}
