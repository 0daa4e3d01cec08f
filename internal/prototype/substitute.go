package prototype

import (
	"bytes"
	"strings"
)

// Substitutor replaces every literal occurrence of Token with Name.
type Substitutor struct {
	Token string
	Name  string
}

// String substitutes s.
func (s Substitutor) String(in string) string {
	if s.Token == "" {
		return in
	}
	return strings.ReplaceAll(in, s.Token, s.Name)
}

// Bytes substitutes file content. The token never contains a newline, so
// replacing across the whole buffer is the same as replacing line by line.
func (s Substitutor) Bytes(in []byte) []byte {
	if s.Token == "" {
		return in
	}
	return bytes.ReplaceAll(in, []byte(s.Token), []byte(s.Name))
}

// Path substitutes each segment of a slash-separated relative path on its
// own, so a token can never merge or split segments.
func (s Substitutor) Path(rel string) string {
	if rel == "" {
		return rel
	}
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		segments[i] = s.String(seg)
	}
	return strings.Join(segments, "/")
}
