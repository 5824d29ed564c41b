package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidDocument indicates a learning-path document that does not
// conform to PathDocumentSchema.
var ErrInvalidDocument = errors.New("invalid learning path document")

// PathDocumentSchema is the JSON schema for learning-path documents written
// by the content generator.
var PathDocumentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"topic": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"flashcard", "quiz", "fill_blank", "open_ended"},
					},
					"question": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"answer": map[string]any{
						"type": "string",
					},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []any{"kind", "question"},
				"if": map[string]any{
					"properties": map[string]any{"kind": map[string]any{"const": "quiz"}},
				},
				"then": map[string]any{
					"required": []any{"options"},
					"properties": map[string]any{
						"options": map[string]any{"minItems": 2},
					},
				},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"topic", "items"},
	"additionalProperties": false,
}

// Document is the decoded form of a learning-path document.
type Document struct {
	ID    string         `json:"id,omitempty"`
	Topic string         `json:"topic"`
	Items []DocumentItem `json:"items"`
}

// DocumentItem is one item entry of a Document.
type DocumentItem struct {
	ID       string   `json:"id,omitempty"`
	Kind     ItemKind `json:"kind"`
	Question string   `json:"question"`
	Answer   string   `json:"answer,omitempty"`
	Options  []string `json:"options,omitempty"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func pathSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://learning-path.json"
		if err := c.AddResource(url, PathDocumentSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ParseDocument reads and validates a learning-path document.
func ParseDocument(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidDocument, err)
	}

	schema, err := pathSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	seen := make(map[string]bool, len(doc.Items))
	for i, it := range doc.Items {
		if it.ID == "" {
			continue
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("%w: duplicate item id %q at index %d", ErrInvalidDocument, it.ID, i)
		}
		seen[it.ID] = true
	}
	return &doc, nil
}

// Build turns the document into a Path owned by userID and its items in
// presentation order. Missing IDs are assigned random UUIDs.
func (d *Document) Build(userID string, now time.Time) (Path, []Item) {
	path := Path{
		ID:        d.ID,
		UserID:    userID,
		Topic:     strings.TrimSpace(d.Topic),
		CreatedAt: now,
	}
	if path.ID == "" {
		path.ID = uuid.NewString()
	}

	items := make([]Item, len(d.Items))
	for i, di := range d.Items {
		id := di.ID
		if id == "" {
			id = uuid.NewString()
		}
		items[i] = Item{
			ID:     id,
			PathID: path.ID,
			Topic:  path.Topic,
			Kind:   di.Kind,
			Prompt: Prompt{
				Question: di.Question,
				Answer:   di.Answer,
				Options:  di.Options,
			},
			Position: i,
		}
	}
	return path, items
}
