// Package report renders a plain text status summary of an editor's node
// tree with a pongo2 template.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formstate/pkg/fields"
)

// DefaultTemplate lists one line per node followed by its messages.
const DefaultTemplate = `{% autoescape off %}{% for row in rows %}{{ row.Indent }}[{{ row.Status }}] {{ row.Label }}{% if row.Key %} ({{ row.Key }}){% endif %}{% if row.Value %}: {{ row.Value }}{% endif %}{% if row.Locked %} (locked){% endif %}
{% for msg in row.Messages %}{{ row.Indent }}    {{ msg }}
{% endfor %}{% endfor %}{{ summary }}
{% endautoescape %}`

// Option configures a Reporter.
type Option func(*config)

type config struct {
	source    string
	templates fs.FS
	name      string
}

// WithTemplate replaces the default template source.
func WithTemplate(src string) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithTemplateFS loads the named template from fsys.
func WithTemplateFS(fsys fs.FS, name string) Option {
	return func(c *config) {
		c.templates = fsys
		c.name = name
	}
}

// Reporter renders node trees.
type Reporter struct {
	tpl *pongo2.Template
}

// New compiles the configured template.
func New(opts ...Option) (*Reporter, error) {
	cfg := &config{source: DefaultTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	var (
		tpl *pongo2.Template
		err error
	)
	if cfg.templates != nil {
		set := pongo2.NewSet("formstate", pongo2.NewFSLoader(cfg.templates))
		tpl, err = set.FromFile(cfg.name)
	} else {
		if strings.TrimSpace(cfg.source) == "" {
			return nil, errors.New("report: template is empty")
		}
		tpl, err = pongo2.FromString(cfg.source)
	}
	if err != nil {
		return nil, fmt.Errorf("report: parse template: %w", err)
	}
	return &Reporter{tpl: tpl}, nil
}

// Row is one flattened node as exposed to templates.
type Row struct {
	Depth    int
	Indent   string
	Key      string
	Label    string
	Type     string
	Status   string
	Value    string
	Locked   bool
	Clean    bool
	Valid    bool
	Messages []string
}

// Rows flattens nodes depth first.
func Rows(nodes []fields.Node) []Row {
	var rows []Row
	var walk func(nodes []fields.Node, depth int)
	walk = func(nodes []fields.Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, row(n, depth))
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return rows
}

func row(n fields.Node, depth int) Row {
	r := Row{
		Depth:  depth,
		Indent: strings.Repeat("  ", depth),
		Key:    n.FullKey,
		Label:  n.Label,
		Type:   string(n.Type),
		Status: status(n.Clean, n.Valid),
		Locked: n.Locked,
		Clean:  n.Clean,
		Valid:  n.Valid,
	}
	if r.Label == "" {
		r.Label = string(n.Type)
	}
	switch {
	case n.Placeholder != "":
		r.Value = n.Placeholder
	case n.Type == fields.NodeTypeItem || len(n.Children) > 0:
		// composites are described by their children
	case n.Variant != "":
		r.Value = n.Variant
	default:
		r.Value = formatValue(n.Value)
	}
	for _, msg := range n.Messages {
		r.Messages = append(r.Messages, fmt.Sprintf("%s: %s", msg.Level, msg.Message))
	}
	return r
}

func status(clean, valid bool) string {
	switch {
	case clean && valid:
		return "ok"
	case !valid && !clean:
		return "modified, invalid"
	case !valid:
		return "invalid"
	default:
		return "modified"
	}
}

func formatValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", typed)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

// Render writes the report for nodes. clean and valid describe the whole
// editor.
func (r *Reporter) Render(nodes []fields.Node, clean, valid bool, out ...io.Writer) (string, error) {
	if r == nil || r.tpl == nil {
		return "", errors.New("report: reporter is nil")
	}
	ctx := pongo2.Context{
		"rows":    Rows(nodes),
		"clean":   clean,
		"valid":   valid,
		"summary": "Status: " + status(clean, valid),
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("report: execute template: %w", err)
	}
	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// Render renders nodes with the default template.
func Render(nodes []fields.Node, clean, valid bool) (string, error) {
	r, err := New()
	if err != nil {
		return "", err
	}
	return r.Render(nodes, clean, valid)
}
