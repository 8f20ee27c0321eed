package script

import (
	"strings"
	"unicode"
)

// SentenceSplitter is the sentence-segmentation boundary. The renderer only
// needs ordered sentences; how they are found is someone else's problem.
type SentenceSplitter interface {
	Split(text string) []string
}

// PunctSplitter is the built-in splitter: it ends a sentence at '.', '!', '?'
// or '…' followed by whitespace, keeping the terminator with the sentence.
// Good enough for transcripts; anything smarter can be plugged in behind the
// interface.
type PunctSplitter struct{}

func (PunctSplitter) Split(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if !isSentenceEnd(r) {
			continue
		}
		// Consume trailing quotes and brackets with the terminator.
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}
