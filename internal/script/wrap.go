package script

import "strings"

// asciiPunctuation matches the set the original textbox logic treats as "this
// chunk already ends a thought", so no ellipsis marker is appended.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Segmenter splits raw dialogue into speakable chunks bounded by WrapLimit
// characters. The limit reserves room for the trailing "..." marker, so a
// chunk plus its marker always fits the textbox.
type Segmenter struct {
	Splitter  SentenceSplitter
	WrapLimit int
}

// Chunks segments text into ordered chunks. Sentences that fit are packed
// together greedily with single separating spaces; oversized sentences are
// hard-wrapped at word boundaries, with "..." appended to every wrapped piece
// except the last unless the piece already ends in punctuation.
func (s *Segmenter) Chunks(text string) []string {
	var chunks []string
	current, accumulating := "", false

	for _, sentence := range s.Splitter.Split(text) {
		if len([]rune(sentence)) > s.WrapLimit {
			wrapped := Wrap(sentence, s.WrapLimit)
			for i, chunk := range wrapped {
				if i != len(wrapped)-1 && !endsInPunctuation(chunk) {
					chunk += "..."
				}
				chunks = append(chunks, chunk)
			}
			current, accumulating = "", false
			continue
		}

		if accumulating && len([]rune(current))+len([]rune(sentence))+1 <= s.WrapLimit {
			current += " " + sentence
			continue
		}

		if accumulating {
			chunks = append(chunks, current)
		}
		current, accumulating = sentence, true
	}

	if accumulating {
		chunks = append(chunks, current)
	}
	return chunks
}

func endsInPunctuation(chunk string) bool {
	runes := []rune(chunk)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(asciiPunctuation, runes[len(runes)-1])
}

// Wrap greedily fills lines of at most width characters, breaking at word
// boundaries and hard-splitting words longer than a whole line. Whitespace is
// normalized, matching the chunker's join rule.
func Wrap(text string, width int) []string {
	var lines []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			lines = append(lines, string(current))
			current = nil
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)

		need := len(w)
		if len(current) > 0 {
			need += len(current) + 1
		}
		if need <= width {
			if len(current) > 0 {
				current = append(current, ' ')
			}
			current = append(current, w...)
			continue
		}

		flush()
		for len(w) > width {
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		current = append(current, w...)
	}

	flush()
	return lines
}

// SplitIntoDisplayLines re-wraps a chunk to the textbox's on-screen width,
// giving each line a trailing padding space. The result is a single string
// with newlines, ready for the typewriter overlay.
func SplitIntoDisplayLines(text string, width int) string {
	wrapped := Wrap(text, width)
	for i, line := range wrapped {
		wrapped[i] = line + " "
	}
	return strings.Join(wrapped, "\n")
}
