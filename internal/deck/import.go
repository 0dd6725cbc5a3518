package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/flashiz/internal/models"
)

const importSchemaURL = "schema://deck-import.json"

var compileImportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := json.Marshal(importSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(importSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(importSchemaURL)
})

// Import reads a deck file, validates it and sanitizes every card. Cards in
// an imported file may carry any number of wrong answers; the quiz fills
// missing options from other cards.
func Import(r io.Reader) (*models.Deck, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compileImportSchema()
	if err != nil {
		return nil, fmt.Errorf("compile deck schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("deck file does not match schema: %w", err)
	}

	var d models.Deck
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	if d.Name, err = Sanitize(d.Name); err != nil {
		return nil, fmt.Errorf("deck name: %w", err)
	}
	d.ID = ""
	d.Description = sanitizeOptional(d.Description)
	d.Difficulty = sanitizeOptional(d.Difficulty)
	for i := range d.Cards {
		c := &d.Cards[i]
		if c.Front, err = Sanitize(c.Front); err != nil {
			return nil, fmt.Errorf("card %d front: %w", i+1, err)
		}
		if c.Back, err = Sanitize(c.Back); err != nil {
			return nil, fmt.Errorf("card %d back: %w", i+1, err)
		}
		c.Hint = sanitizeOptional(c.Hint)
		var wrong []string
		for _, w := range c.WrongAnswers {
			if w = sanitizeOptional(w); w != "" {
				wrong = append(wrong, w)
			}
		}
		c.WrongAnswers = wrong
	}
	return &d, nil
}
