package publisher

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
)

// ParseReleaseNotes converts a JSON object mapping language tags to text,
// e.g. {"en-US": "Bug fixes."}, into release notes.
//
// Notes are returned in the order they appear in the object. When a language
// is repeated, the last text wins and keeps the position of the first occurrence.
// An empty input yields no release notes. Languages and texts must be valid UTF-8.
//
// Any other input is reported as status.ErrInvalidInput.
func ParseReleaseNotes(raw string) ([]LocalizedText, error) {
	notes := make([]LocalizedText, 0)
	if strings.TrimSpace(raw) == "" {
		return notes, nil
	}

	iter := jsoniter.ParseString(jsoniter.ConfigCompatibleWithStandardLibrary, raw)
	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return nil, invalidNotes(errors.New("expected a JSON object mapping language tags to text"))
	}

	positions := make(map[string]int)
	complete := iter.ReadObjectCB(func(it *jsoniter.Iterator, language string) bool {
		if it.Error != nil {
			return false
		}
		if !utf8.ValidString(language) {
			it.ReportError("release notes", fmt.Sprintf("language %q is not valid UTF-8", language))
			return false
		}
		if it.WhatIsNext() != jsoniter.StringValue {
			it.ReportError("release notes", fmt.Sprintf("text for language %q is not a string", language))
			return false
		}
		text := it.ReadString()
		if it.Error != nil {
			return false
		}
		if !utf8.ValidString(text) {
			it.ReportError("release notes", fmt.Sprintf("text for language %q is not valid UTF-8", language))
			return false
		}
		if pos, seen := positions[language]; seen {
			notes[pos].Text = text
			return true
		}
		positions[language] = len(notes)
		notes = append(notes, LocalizedText{Language: language, Text: text})
		return true
	})
	switch {
	case iter.Error == io.EOF:
		return nil, invalidNotes(errors.New("unexpected end of JSON input"))
	case iter.Error != nil:
		return nil, invalidNotes(iter.Error)
	case !complete:
		return nil, invalidNotes(errors.New("malformed JSON object"))
	}

	// only whitespace may follow the object
	_ = iter.WhatIsNext()
	if iter.Error != io.EOF {
		return nil, invalidNotes(errors.New("unexpected data after the JSON object"))
	}

	return notes, nil
}

func invalidNotes(err error) error {
	return status.ErrInvalidInput.Wrap(fmt.Errorf("invalid release notes: %w", err))
}
