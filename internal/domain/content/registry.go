package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type topicsFile struct {
	Topics []Topic `yaml:"topics"`
}

type examplesFile struct {
	Examples []Example `yaml:"examples"`
}

type glossaryFile struct {
	Glossary []GlossaryEntry `yaml:"glossary"`
}

type fakeAdsFile struct {
	FakeAds []FakeAdAudit `yaml:"fake_ads"`
}

// Registry holds every content record. It is never mutated after Load.
type Registry struct {
	topics   map[TopicID]Topic
	examples map[ExampleID]Example
	glossary map[GlossaryID]GlossaryEntry
	audits   map[string]FakeAdAudit

	glossaryOrder []GlossaryID
	auditKeys     []string
}

// Load decodes the embedded content tables.
func Load() (*Registry, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS decodes topics.yaml, examples.yaml, glossary.yaml and fake_ads.yaml
// from fsys and checks that every identifier has exactly one record.
func LoadFS(fsys fs.FS) (*Registry, error) {
	var tf topicsFile
	if err := decode(fsys, "topics.yaml", &tf); err != nil {
		return nil, err
	}
	var ef examplesFile
	if err := decode(fsys, "examples.yaml", &ef); err != nil {
		return nil, err
	}
	var gf glossaryFile
	if err := decode(fsys, "glossary.yaml", &gf); err != nil {
		return nil, err
	}
	var af fakeAdsFile
	if err := decode(fsys, "fake_ads.yaml", &af); err != nil {
		return nil, err
	}

	r := &Registry{
		topics:   make(map[TopicID]Topic, len(tf.Topics)),
		examples: make(map[ExampleID]Example, len(ef.Examples)),
		glossary: make(map[GlossaryID]GlossaryEntry, len(gf.Glossary)),
		audits:   make(map[string]FakeAdAudit, len(af.FakeAds)),
	}

	for _, t := range tf.Topics {
		if _, ok := ParseTopicID(string(t.ID)); !ok {
			return nil, fmt.Errorf("topics.yaml: unknown topic id %q", t.ID)
		}
		if _, dup := r.topics[t.ID]; dup {
			return nil, fmt.Errorf("topics.yaml: duplicate topic %q", t.ID)
		}
		if strings.TrimSpace(t.Label) == "" {
			return nil, fmt.Errorf("topics.yaml: topic %q has no label", t.ID)
		}
		r.topics[t.ID] = t
	}
	for _, id := range TopicIDs {
		if _, ok := r.topics[id]; !ok {
			return nil, fmt.Errorf("topics.yaml: missing topic %q", id)
		}
	}

	for _, e := range ef.Examples {
		if _, ok := ParseExampleID(string(e.ID)); !ok {
			return nil, fmt.Errorf("examples.yaml: unknown example id %q", e.ID)
		}
		if _, dup := r.examples[e.ID]; dup {
			return nil, fmt.Errorf("examples.yaml: duplicate example %q", e.ID)
		}
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("examples.yaml: example %q has no label", e.ID)
		}
		r.examples[e.ID] = e
	}
	for _, id := range ExampleIDs {
		if _, ok := r.examples[id]; !ok {
			return nil, fmt.Errorf("examples.yaml: missing example %q", id)
		}
	}

	for _, g := range gf.Glossary {
		if _, ok := ParseGlossaryID(string(g.ID)); !ok {
			return nil, fmt.Errorf("glossary.yaml: unknown glossary id %q", g.ID)
		}
		if _, dup := r.glossary[g.ID]; dup {
			return nil, fmt.Errorf("glossary.yaml: duplicate entry %q", g.ID)
		}
		if strings.TrimSpace(g.Term) == "" {
			return nil, fmt.Errorf("glossary.yaml: entry %q has no term", g.ID)
		}
		if !g.Category.Valid() {
			return nil, fmt.Errorf("glossary.yaml: entry %q has unknown category %q", g.ID, g.Category)
		}
		r.glossary[g.ID] = g
	}
	for _, id := range GlossaryIDs {
		if _, ok := r.glossary[id]; !ok {
			return nil, fmt.Errorf("glossary.yaml: missing entry %q", id)
		}
	}
	for _, g := range r.glossary {
		for _, rel := range g.Related {
			if _, ok := r.glossary[rel]; !ok {
				return nil, fmt.Errorf("glossary.yaml: entry %q relates to unknown entry %q", g.ID, rel)
			}
		}
	}

	for _, a := range af.FakeAds {
		if strings.TrimSpace(a.Key) == "" {
			return nil, errors.New("fake_ads.yaml: record without key")
		}
		if _, dup := r.audits[a.Key]; dup {
			return nil, fmt.Errorf("fake_ads.yaml: duplicate key %q", a.Key)
		}
		if !a.Format.Valid() {
			return nil, fmt.Errorf("fake_ads.yaml: %q has unknown format %q", a.Key, a.Format)
		}
		r.audits[a.Key] = a
		r.auditKeys = append(r.auditKeys, a.Key)
	}
	sort.Strings(r.auditKeys)

	r.glossaryOrder = append([]GlossaryID(nil), GlossaryIDs...)
	sort.SliceStable(r.glossaryOrder, func(i, j int) bool {
		a, b := r.glossary[r.glossaryOrder[i]], r.glossary[r.glossaryOrder[j]]
		at, bt := strings.ToLower(a.Term), strings.ToLower(b.Term)
		if at != bt {
			return at < bt
		}
		return a.ID < b.ID
	})

	return r, nil
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Topic returns the record for id. Callers pass ids obtained from
// ParseTopicID or TopicIDs; anything else yields the zero Topic.
func (r *Registry) Topic(id TopicID) Topic {
	return r.topics[id]
}

func (r *Registry) Example(id ExampleID) Example {
	return r.examples[id]
}

func (r *Registry) GlossaryEntry(id GlossaryID) GlossaryEntry {
	return r.glossary[id]
}

// FakeAdAudit is a partial lookup: keys outside the table report false.
func (r *Registry) FakeAdAudit(key string) (FakeAdAudit, bool) {
	a, ok := r.audits[key]
	return a, ok
}

func (r *Registry) FakeAdAuditKeys() []string {
	return append([]string(nil), r.auditKeys...)
}

func (r *Registry) Topics() []Topic {
	out := make([]Topic, 0, len(TopicIDs))
	for _, id := range TopicIDs {
		out = append(out, r.topics[id])
	}
	return out
}

func (r *Registry) Examples() []Example {
	out := make([]Example, 0, len(ExampleIDs))
	for _, id := range ExampleIDs {
		out = append(out, r.examples[id])
	}
	return out
}

// Glossary returns every entry ordered by term, case-insensitively.
func (r *Registry) Glossary() []GlossaryEntry {
	out := make([]GlossaryEntry, 0, len(r.glossaryOrder))
	for _, id := range r.glossaryOrder {
		out = append(out, r.glossary[id])
	}
	return out
}

// DefaultGlossaryID is the first entry in term order.
func (r *Registry) DefaultGlossaryID() GlossaryID {
	return r.glossaryOrder[0]
}
