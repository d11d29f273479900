package render

import (
	_ "embed"
	"fmt"
	"html/template"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/adtech-learning/internal/domain/content"
)

//go:embed presentation.yaml
var presentationYAML []byte

type railSpec struct {
	Label   string     `yaml:"label"`
	Stack   bool       `yaml:"stack"`
	Nodes   []railNode `yaml:"nodes"`
	Caption string     `yaml:"caption"`
}

type railNode struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
	Primary bool   `yaml:"primary"`
}

type flowSpec struct {
	Title string         `yaml:"title"`
	Nodes []flowNodeSpec `yaml:"nodes"`
}

type flowNodeSpec struct {
	Label   string `yaml:"label"`
	Sub     string `yaml:"sub"`
	Primary bool   `yaml:"primary"`
}

type referenceSpec struct {
	Lead string `yaml:"lead"`
	Href string `yaml:"href"`
	Text string `yaml:"text"`
	Tail string `yaml:"tail"`
}

type topicPresentation struct {
	Audit     string         `yaml:"audit"`
	Rail      *railSpec      `yaml:"rail"`
	Flow      *flowSpec      `yaml:"flow"`
	Reference *referenceSpec `yaml:"reference"`
}

type examplePresentation struct {
	Tab       string         `yaml:"tab"`
	Host      string         `yaml:"host"`
	Surface   string         `yaml:"surface"`
	Rail      *railSpec      `yaml:"rail"`
	Flow      *flowSpec      `yaml:"flow"`
	Reference *referenceSpec `yaml:"reference"`
}

type presentation struct {
	Topics        map[content.TopicID]topicPresentation     `yaml:"topics"`
	Examples      map[content.ExampleID]examplePresentation `yaml:"examples"`
	Illustrations map[content.GlossaryID]string             `yaml:"glossary_illustrations"`
}

func loadPresentation(raw []byte) (*presentation, error) {
	var p presentation
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode presentation.yaml: %w", err)
	}
	for id := range p.Topics {
		if _, ok := content.ParseTopicID(string(id)); !ok {
			return nil, fmt.Errorf("presentation.yaml: unknown topic %q", id)
		}
	}
	for id := range p.Examples {
		if _, ok := content.ParseExampleID(string(id)); !ok {
			return nil, fmt.Errorf("presentation.yaml: unknown example %q", id)
		}
	}
	for id := range p.Illustrations {
		if _, ok := content.ParseGlossaryID(string(id)); !ok {
			return nil, fmt.Errorf("presentation.yaml: unknown glossary entry %q", id)
		}
	}
	return &p, nil
}

// TopicAuditKey reports which fake ad audit a topic page embeds.
func (r *Renderer) TopicAuditKey(id content.TopicID) (string, bool) {
	tp, ok := r.pres.Topics[id]
	if !ok || tp.Audit == "" {
		return "", false
	}
	return tp.Audit, true
}

// ExampleSurfaceKey reports which fake ad audit drives an example's surface mockup.
func (r *Renderer) ExampleSurfaceKey(id content.ExampleID) (string, bool) {
	ep, ok := r.pres.Examples[id]
	if !ok || ep.Surface == "" {
		return "", false
	}
	return ep.Surface, true
}

func (r *Renderer) surfaceFor(id content.ExampleID) *surfaceView {
	key, ok := r.ExampleSurfaceKey(id)
	if !ok {
		return nil
	}
	audit, ok := r.reg.FakeAdAudit(key)
	if !ok {
		return nil
	}
	host := r.pres.Examples[id].Host
	if host == "" {
		host = r.reg.Example(id).Label
	}
	return &surfaceView{Host: host, Audit: audit}
}

func (r *Renderer) auditFor(id content.TopicID) *auditView {
	key, ok := r.TopicAuditKey(id)
	if !ok {
		return nil
	}
	audit, ok := r.reg.FakeAdAudit(key)
	if !ok {
		return nil
	}
	return &auditView{Surface: &surfaceView{Host: audit.Advertiser, Audit: audit}}
}

func (r *Renderer) illustration(id content.GlossaryID) template.HTML {
	// Illustrations are static markup shipped with the binary.
	return template.HTML(r.pres.Illustrations[id])
}

func referenceView(spec *referenceSpec) *referenceSpec {
	if spec == nil || spec.Href == "" {
		return nil
	}
	return spec
}
