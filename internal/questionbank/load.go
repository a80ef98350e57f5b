package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/questions.json
var builtinBank []byte

// ErrUnsupportedFormat is returned for bank files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported question bank format")

// recordSchema describes one question record in a bank file.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"prompt", "options", "correct_index", "category"},
	"properties": map[string]any{
		"prompt": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"minItems": MinOptions,
			"maxItems": MaxOptions,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"correct_index": map[string]any{"type": "integer", "minimum": 0},
		"category":      map[string]any{"type": "string", "minLength": 1},
		"explanation":   map[string]any{"type": "string"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// fileRecord is the on-disk shape of a question.
type fileRecord struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Category     string   `json:"category"`
	Explanation  string   `json:"explanation"`
}

// Builtin returns the bank compiled into the binary.
func Builtin() (*Bank, []LoadIssue, error) {
	return Parse(builtinBank, ".json")
}

// Load reads a bank from path. An empty path loads the built-in bank.
// Individual malformed records are skipped and reported as issues; an error
// is returned only when the file as a whole cannot be read or parsed.
func Load(path string) (*Bank, []LoadIssue, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes bank data in the format implied by ext (".json", ".yaml",
// ".yml"). The document is either a list of records or an object with a
// "questions" list.
func Parse(data []byte, ext string) (*Bank, []LoadIssue, error) {
	raw, err := decodeDocument(data, ext)
	if err != nil {
		return nil, nil, err
	}
	items, err := recordList(raw)
	if err != nil {
		return nil, nil, err
	}

	schema, err := recordValidator()
	if err != nil {
		return nil, nil, err
	}

	var (
		records []QuestionRecord
		source  []int
		issues  []LoadIssue
	)
	for i, item := range items {
		prompt := promptOf(item)
		if err := schema.Validate(item); err != nil {
			issues = append(issues, LoadIssue{Index: i, Prompt: prompt, Reason: firstLine(err.Error())})
			continue
		}
		var fr fileRecord
		if err := remarshal(item, &fr); err != nil {
			issues = append(issues, LoadIssue{Index: i, Prompt: prompt, Reason: err.Error()})
			continue
		}
		records = append(records, QuestionRecord{
			Prompt:       strings.TrimSpace(fr.Prompt),
			Options:      fr.Options,
			CorrectIndex: fr.CorrectIndex,
			Category:     strings.TrimSpace(fr.Category),
			Explanation:  strings.TrimSpace(fr.Explanation),
		})
		source = append(source, i)
	}

	bank, bankIssues := New(records)
	for _, is := range bankIssues {
		is.Index = source[is.Index]
		issues = append(issues, is)
	}
	return bank, issues, nil
}

// decodeDocument parses data into a JSON-compatible value.
func decodeDocument(data []byte, ext string) (any, error) {
	var doc any
	switch ext {
	case ".json", "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse question bank: %w", err)
		}
		return doc, nil
	case ".yaml", ".yml":
		var y any
		if err := yaml.Unmarshal(data, &y); err != nil {
			return nil, fmt.Errorf("parse question bank: %w", err)
		}
		// Round-trip through JSON so the schema validator sees plain JSON types.
		if err := remarshal(y, &doc); err != nil {
			return nil, fmt.Errorf("normalize yaml bank: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func recordList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok {
			return qs, nil
		}
		return nil, errors.New("question bank object has no \"questions\" list")
	default:
		return nil, fmt.Errorf("question bank must be a list or an object, got %T", doc)
	}
}

func recordValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := remarshal(recordSchema, &def); err != nil {
			compileErr = fmt.Errorf("marshal record schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://question-record.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// remarshal converts v into out via JSON.
func remarshal(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func promptOf(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["prompt"].(string)
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
