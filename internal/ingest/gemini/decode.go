package gemini

import (
	"encoding/json"
	"regexp"
)

// Models wrap otherwise-valid payloads in markdown fencing or surrounding
// prose. The decoder prefers a tagged fenced block, then an untagged one,
// and finally the whole text; whatever survives must parse strictly.

var (
	fencedTagged   = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")
	fencedUntagged = regexp.MustCompile("(?s)```\\s*\\n(.*?)\\n\\s*```")
)

// ExtractPayload strips conversational wrapping and returns the substring
// the decoder should parse.
func ExtractPayload(text string) string {
	if m := fencedTagged.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := fencedUntagged.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// Decode parses the JSON payload embedded in raw model text into v.
// A response that is not JSON at all fails with *MalformedResponseError
// carrying the raw text; there is no partial or fuzzy recovery.
func Decode(text string, v interface{}) error {
	payload := ExtractPayload(text)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &MalformedResponseError{Raw: text, Err: err}
	}
	return nil
}
