package definition

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/roach88/querydsl/internal/search"
)

// Format identifies the syntax of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatFor maps a file extension to its format. JSON is read as YAML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", errorf("", ErrUnsupported, "unsupported document extension %q", filepath.Ext(path))
	}
}

// Document is a named search request loaded from a file.
type Document struct {
	Name    string
	Request search.Request
}

var numberJSON = jsoniter.Config{UseNumber: true}.Froze()

// Load reads and parses the document at path. When the document has no
// name, the file name without its extension is used.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	slog.Debug("loading definition", "path", path, "format", format)

	doc, err := parse(data, format, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse parses a document held in memory.
func Parse(data []byte, format Format) (*Document, error) {
	return parse(data, format, "document."+string(format))
}

func parse(data []byte, format Format, filename string) (*Document, error) {
	raw, err := decode(data, format, filename)
	if err != nil {
		return nil, err
	}
	return ParseDocument(raw)
}

func decode(data []byte, format Format, filename string) (map[string]any, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatCUE:
		return decodeCUE(data, filename)
	default:
		return nil, errorf("", ErrUnsupported, "unsupported document format %q", format)
	}
}

func decodeYAML(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errorf("", ErrInvalidSyntax, "empty document")
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errorf("", ErrInvalidSyntax, "%v", err)
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, errorf("", ErrInvalidType, "document must be a mapping, got %s", typeName(raw))
	}
	return m, nil
}

// decodeCUE evaluates the document and decodes its concrete JSON form, so
// CUE and YAML documents reach the same parser.
func decodeCUE(data []byte, filename string) (map[string]any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, errorf("", ErrInvalidSyntax, "%v", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, errorf("", ErrInvalidSyntax, "%v", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, errorf("", ErrInvalidSyntax, "%v", err)
	}
	var m map[string]any
	if err := numberJSON.Unmarshal(out, &m); err != nil {
		return nil, errorf("", ErrInvalidType, "document must be a struct: %v", err)
	}
	return m, nil
}

// ParseDocument builds a document from its decoded top-level mapping.
func ParseDocument(raw map[string]any) (*Document, error) {
	b, err := newBody("", raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	name, _, err := b.optionalString("name")
	if err != nil {
		return nil, err
	}
	doc.Name = name

	req, err := parseRequest(b)
	if err != nil {
		return nil, err
	}
	doc.Request = req

	if err := b.done(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseRequest builds a search request from a decoded mapping with the
// keys query, from, size and min_score.
func ParseRequest(raw map[string]any) (search.Request, error) {
	b, err := newBody("", raw)
	if err != nil {
		return search.Request{}, err
	}
	req, err := parseRequest(b)
	if err != nil {
		return search.Request{}, err
	}
	if err := b.done(); err != nil {
		return search.Request{}, err
	}
	return req, nil
}

func parseRequest(b *body) (search.Request, error) {
	req := search.NewRequest()

	if v, ok := b.lookup("query"); ok && v != nil {
		q, err := parseQuery(b.child("query"), v)
		if err != nil {
			return req, err
		}
		req = req.Query(q)
	}

	from, ok, err := b.optionalInt("from")
	if err != nil {
		return req, err
	}
	if ok {
		req = req.From(from)
	}

	size, ok, err := b.optionalInt("size")
	if err != nil {
		return req, err
	}
	if ok {
		req = req.Size(size)
	}

	minScore, ok, err := b.optionalFloat("min_score")
	if err != nil {
		return req, err
	}
	if ok {
		req = req.MinScore(minScore)
	}
	return req, nil
}
