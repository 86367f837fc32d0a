package publisher

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/oneconcern/playpub/internal/rand"
	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseNotes(t *testing.T) {
	for _, toPin := range []struct {
		name     string
		raw      string
		expected []LocalizedText
	}{
		{
			name:     "empty input",
			raw:      "",
			expected: []LocalizedText{},
		},
		{
			name:     "blank input",
			raw:      "  \n",
			expected: []LocalizedText{},
		},
		{
			name:     "empty object",
			raw:      "{}",
			expected: []LocalizedText{},
		},
		{
			name:     "single language",
			raw:      `{"en-US":"Bug fixes."}`,
			expected: []LocalizedText{{Language: "en-US", Text: "Bug fixes."}},
		},
		{
			name: "source order is kept",
			raw:  `{"fr-FR": "Corrections.", "en-US": "Bug fixes.", "de-DE": "Fehlerbehebungen."}`,
			expected: []LocalizedText{
				{Language: "fr-FR", Text: "Corrections."},
				{Language: "en-US", Text: "Bug fixes."},
				{Language: "de-DE", Text: "Fehlerbehebungen."},
			},
		},
		{
			name: "escaped text",
			raw:  `{"ja-JP":"バグ修正", "en-US":"line 1\nline \"2\""}`,
			expected: []LocalizedText{
				{Language: "ja-JP", Text: "バグ修正"},
				{Language: "en-US", Text: "line 1\nline \"2\""},
			},
		},
		{
			name: "repeated language",
			raw:  `{"en-US":"first", "fr-FR":"premier", "en-US":"last"}`,
			expected: []LocalizedText{
				{Language: "en-US", Text: "last"},
				{Language: "fr-FR", Text: "premier"},
			},
		},
		{
			name:     "trailing whitespace",
			raw:      "{\"en-US\":\"Bug fixes.\"}\n\t ",
			expected: []LocalizedText{{Language: "en-US", Text: "Bug fixes."}},
		},
	} {
		testCase := toPin
		t.Run(testCase.name, func(t *testing.T) {
			notes, err := ParseReleaseNotes(testCase.raw)
			require.NoError(t, err)
			require.NotNil(t, notes)
			assert.Equal(t, testCase.expected, notes)
		})
	}
}

func TestParseReleaseNotesInvalid(t *testing.T) {
	for _, raw := range []string{
		"not-json",
		"null",
		"42",
		`"en-US"`,
		`["en-US", "Bug fixes."]`,
		`{"en-US":`,
		`{"en-US":"Bug fixes."`,
		`{"en-US":"Bug fixes.",}`,
		`{"en-US" "Bug fixes."}`,
		`{en-US:"Bug fixes."}`,
		`{"en-US":42}`,
		`{"en-US":{"text":"Bug fixes."}}`,
		`{"en-US":null}`,
		`{"en-US":"Bug fixes."} trailing`,
		`{"en-US":"Bug fixes."}{}`,
		"{\"en-US\":\"Bug fixes \xff\"}",
		"{\"en-\xffUS\":\"Bug fixes.\"}",
	} {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			notes, err := ParseReleaseNotes(raw)
			require.Error(t, err)
			assert.Nil(t, notes)
			assert.True(t, errors.Is(err, status.ErrInvalidInput), "expected an input validation error, got %v", err)
			assert.Equal(t, status.KindValidation, status.KindOf(err))
		})
	}
}

// encodeNotes builds a JSON object preserving the order of notes
func encodeNotes(t testing.TB, notes []LocalizedText) string {
	var b strings.Builder
	b.WriteString("{")
	for i, note := range notes {
		if i > 0 {
			b.WriteString(", ")
		}
		k, err := json.Marshal(note.Language)
		require.NoError(t, err)
		v, err := json.Marshal(note.Text)
		require.NoError(t, err)
		b.Write(k)
		b.WriteString(": ")
		b.Write(v)
	}
	b.WriteString("}")
	return b.String()
}

func TestParseReleaseNotesPreservesPairs(t *testing.T) {
	for i := 0; i < 50; i++ {
		tags := rand.LanguageTags(1 + i%12)
		expected := make([]LocalizedText, 0, len(tags))
		for _, tag := range tags {
			expected = append(expected, LocalizedText{Language: tag, Text: rand.Text(1 + i*3)})
		}
		raw := encodeNotes(t, expected)

		notes, err := ParseReleaseNotes(raw)
		require.NoError(t, err, "input: %s", raw)
		require.Equal(t, expected, notes)

		// same pairs as the standard library decoder
		var asMap map[string]string
		require.NoError(t, json.Unmarshal([]byte(raw), &asMap))
		require.Len(t, notes, len(asMap))
		for _, note := range notes {
			assert.Equal(t, asMap[note.Language], note.Text)
		}
	}
}
