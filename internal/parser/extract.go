// Package parser recovers structured JSON from raw model replies. Models
// wrap their output in markdown fences, prose, or both, so extraction tries
// progressively looser strategies before giving up.
package parser

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

const logExcerptLimit = 500

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Envelope is the classification wrapper the extraction prompt demands:
// a document type plus the type-specific data object.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ExtractObject pulls the first JSON object out of a raw model reply.
// It tries a fenced ```json block, then the outermost brace span, then the
// whole text. Returns (nil, false) when no candidate decodes as an object;
// it never returns an error.
func ExtractObject(text string) (json.RawMessage, bool) {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		if obj, ok := decodeObject(m[1]); ok {
			return obj, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if obj, ok := decodeObject(text[start : end+1]); ok {
			return obj, true
		}
	}

	if obj, ok := decodeObject(text); ok {
		return obj, true
	}

	log.Printf("parser.ExtractObject: no JSON object in model reply: %s", excerpt(text))
	return nil, false
}

// ExtractEnvelope decodes a model reply into the {"type","data"} envelope.
// On any failure it returns the zero Envelope; the caller decides whether a
// missing type is fatal.
func ExtractEnvelope(text string) Envelope {
	obj, ok := ExtractObject(text)
	if !ok {
		return Envelope{}
	}

	var env Envelope
	if err := json.Unmarshal(obj, &env); err != nil {
		log.Printf("parser.ExtractEnvelope: object does not match envelope: %v", err)
		return Envelope{}
	}
	if env.Data == nil {
		env.Data = json.RawMessage(`{}`)
	}
	return env
}

func decodeObject(candidate string) (json.RawMessage, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || candidate[0] != '{' {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

func excerpt(text string) string {
	if len(text) > logExcerptLimit {
		return text[:logExcerptLimit] + "..."
	}
	return text
}
