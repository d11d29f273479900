package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yungbote/adtech-learning/internal/domain/content"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed styles.css
var stylesCSS string

// Renderer turns registry records into complete HTML documents. It holds no
// mutable state after New and is safe for concurrent use.
type Renderer struct {
	reg   *content.Registry
	pres  *presentation
	pages map[string]*template.Template
}

const (
	pageHome     = "home"
	pageTopic    = "topic"
	pageExample  = "example"
	pageGlossary = "glossary"
)

func New(reg *content.Registry) (*Renderer, error) {
	if reg == nil {
		return nil, fmt.Errorf("render: nil registry")
	}
	pres, err := loadPresentation(presentationYAML)
	if err != nil {
		return nil, err
	}
	base, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/partials.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}
	r := &Renderer{reg: reg, pres: pres, pages: make(map[string]*template.Template, 4)}
	for _, name := range []string{pageHome, pageTopic, pageExample, pageGlossary} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

type pageMeta struct {
	Title       string
	Description string
	Nav         string
	Styles      template.CSS
}

type surfaceView struct {
	Host  string
	Audit content.FakeAdAudit
}

type auditView struct {
	Surface *surfaceView
}

type exampleTab struct {
	ID     content.ExampleID
	Label  string
	Active bool
}

type homeView struct {
	pageMeta
	Topics   []content.Topic
	Tabs     []exampleTab
	Selected content.Example
	Surface  *surfaceView
}

type topicView struct {
	pageMeta
	Topic     content.Topic
	Overview  []template.HTML
	Technical []template.HTML
	DeepDive  []template.HTML
	Rail      *railSpec
	Reference *referenceSpec
	Audit     *auditView
	Flow      *flowView
}

type exampleView struct {
	pageMeta
	Example       content.Example
	Story         []template.HTML
	TechnicalFlow []template.HTML
	Rail          *railSpec
	Reference     *referenceSpec
	Surface       *surfaceView
	Flow          *flowView
}

type glossaryItem struct {
	ID       content.GlossaryID
	Term     string
	Category content.Category
	Active   bool
}

type relatedLink struct {
	ID   content.GlossaryID
	Term string
}

type glossaryView struct {
	pageMeta
	Entries      []glossaryItem
	Active       content.GlossaryEntry
	Illustration template.HTML
	Definition   []template.HTML
	Related      []relatedLink
}

func (r *Renderer) meta(title, description, nav string) pageMeta {
	return pageMeta{Title: title, Description: description, Nav: nav, Styles: template.CSS(stylesCSS)}
}

// Home renders the landing page with selected as the active example tab.
func (r *Renderer) Home(selected content.ExampleID) ([]byte, error) {
	ex := r.reg.Example(selected)
	v := homeView{
		pageMeta: r.meta(
			"Ad Tech Ecosystem – Overview",
			"Visual guide to how modern ad tech, data pipelines, and real-time bidding work, using Instagram and other ad surfaces as examples.",
			"home",
		),
		Topics:   r.reg.Topics(),
		Selected: ex,
		Surface:  r.surfaceFor(selected),
	}
	for _, e := range r.reg.Examples() {
		label := e.Label
		if ep, ok := r.pres.Examples[e.ID]; ok && ep.Tab != "" {
			label = ep.Tab
		}
		v.Tabs = append(v.Tabs, exampleTab{ID: e.ID, Label: label, Active: e.ID == selected})
	}
	return r.execute(pageHome, v)
}

func (r *Renderer) Topic(id content.TopicID) ([]byte, error) {
	tp := r.reg.Topic(id)
	pres := r.pres.Topics[id]
	nav := "topic"
	switch id {
	case content.TopicAdServingRTB:
		nav = "rtb"
	case content.TopicData:
		nav = "data"
	}
	v := topicView{
		pageMeta:  r.meta(tp.Label+" – Ad Tech Deep Dive", tp.ShortDescription, nav),
		Topic:     tp,
		Overview:  fragments(tp.Overview),
		Technical: fragments(tp.Technical),
		DeepDive:  fragments(tp.DeepDive),
		Rail:      railView(pres.Rail),
		Reference: referenceView(pres.Reference),
		Audit:     r.auditFor(id),
		Flow:      layoutFlow(pres.Flow, "topic-flow-arrow"),
	}
	return r.execute(pageTopic, v)
}

func (r *Renderer) Example(id content.ExampleID) ([]byte, error) {
	ex := r.reg.Example(id)
	pres := r.pres.Examples[id]
	v := exampleView{
		pageMeta: r.meta(
			ex.Label+" – How this ad shows up",
			"End-to-end view of how this ad is targeted, auctioned, and measured.",
			"example",
		),
		Example:       ex,
		Story:         fragments(ex.Story),
		TechnicalFlow: fragments(ex.TechnicalFlow),
		Rail:          railView(pres.Rail),
		Reference:     referenceView(pres.Reference),
		Surface:       r.surfaceFor(id),
		Flow:          layoutFlow(pres.Flow, "example-flow-arrow"),
	}
	return r.execute(pageExample, v)
}

// Glossary renders the full term list with selected expanded.
func (r *Renderer) Glossary(selected content.GlossaryID) ([]byte, error) {
	active := r.reg.GlossaryEntry(selected)
	v := glossaryView{
		pageMeta: r.meta(
			"Ad Tech Glossary",
			"Plain-language glossary for core ad tech, data, and marketplace terms.",
			"glossary",
		),
		Active:       active,
		Illustration: r.illustration(selected),
		Definition:   fragments(active.Definition),
	}
	for _, g := range r.reg.Glossary() {
		v.Entries = append(v.Entries, glossaryItem{ID: g.ID, Term: g.Term, Category: g.Category, Active: g.ID == selected})
	}
	for _, rel := range active.Related {
		v.Related = append(v.Related, relatedLink{ID: rel, Term: r.reg.GlossaryEntry(rel).Term})
	}
	return r.execute(pageGlossary, v)
}

func (r *Renderer) execute(page string, data any) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("render: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// fragments marks registry markup as trusted. Content fragments are authored
// alongside the binary and may carry inline links.
func fragments(lines []string) []template.HTML {
	if len(lines) == 0 {
		return nil
	}
	out := make([]template.HTML, len(lines))
	for i, l := range lines {
		out[i] = template.HTML(l)
	}
	return out
}

func railView(spec *railSpec) *railSpec {
	if spec == nil || len(spec.Nodes) == 0 {
		return nil
	}
	return spec
}
