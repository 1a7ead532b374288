package generator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nfrund/folio/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/content.schema.json
var contentSchemaJSON string

var contentSchema = gojsonschema.NewStringLoader(contentSchemaJSON)

// decodeContent validates a generative service reply against the content
// contract and decodes it. The title is not part of the contract; it always
// comes from the user's name.
func decodeContent(raw string, in domain.UserInput) (domain.Content, error) {
	res, err := gojsonschema.Validate(contentSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return domain.Content{}, fmt.Errorf("content reply is not valid JSON: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return domain.Content{}, fmt.Errorf("content reply violates schema: %s", strings.Join(msgs, "; "))
	}

	var c domain.Content
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Content{}, fmt.Errorf("failed to decode content reply: %w", err)
	}
	c.Title = contentTitle(in)
	return c, nil
}
