package feedback

import "strings"

// DoneMarker terminates a successful feedback stream.
const DoneMarker = "[DONE]"

const boundaryChars = " .!?,:;"

// Segmenter regroups arbitrary upstream text fragments into word-sized
// chunks. Concatenating everything it emits, minus the final DoneMarker,
// reproduces the upstream text, except that a whitespace-only tail after
// the last space is dropped.
// A Segmenter is not safe for concurrent use.
type Segmenter struct {
	buf strings.Builder
}

// Push appends a fragment and returns any chunks that are now complete.
func (s *Segmenter) Push(fragment string) []string {
	if fragment == "" {
		return nil
	}
	s.buf.WriteString(fragment)
	text := s.buf.String()
	if !strings.ContainsAny(text, boundaryChars) {
		return nil
	}

	tokens := strings.Split(text, " ")
	s.buf.Reset()

	if len(tokens) == 1 {
		// Punctuation with no space: the token is complete as it is.
		return []string{tokens[0]}
	}

	out := make([]string, 0, 2*len(tokens))
	for _, tok := range tokens[:len(tokens)-1] {
		if tok != "" {
			out = append(out, tok)
		}
		out = append(out, " ")
	}
	s.buf.WriteString(tokens[len(tokens)-1])
	return out
}

// Flush returns the non-blank remainder, if any, followed by DoneMarker.
func (s *Segmenter) Flush() []string {
	rest := s.buf.String()
	s.buf.Reset()
	if strings.TrimSpace(rest) == "" {
		return []string{DoneMarker}
	}
	return []string{rest, DoneMarker}
}
