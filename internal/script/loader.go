package script

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Author maps a transcript speaker to a theme roster character.
type Author struct {
	Name      string // display name shown on the textbox nameplate
	Character string // roster key in the active theme
}

// Line is one contiguous speaking turn, ready for classification.
type Line struct {
	Text   string
	Author Author
}

// Indentation levels of the screenplay format: dialogue is indented six tab
// stops, stage directions seven, speaker names nine.
const (
	dialogueIndent  = "                        "
	directionIndent = "                            "
	speakerIndent   = "                                    "
)

// LoadScript parses an indentation-formatted screenplay transcript into
// ordered speaking turns. Consecutive dialogue under the same speaker is
// merged into one turn; the turn is emitted when the speaker changes.
// maxTurns caps the output; zero means unlimited.
func LoadScript(path string, cast []Author, maxTurns int) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	castByName := make(map[string]Author, len(cast))
	for _, a := range cast {
		castByName[capitalize(a.Name)] = a
	}

	var (
		lines    []Line
		current  []string
		previous *Author
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		switch {
		case strings.HasPrefix(raw, speakerIndent):
			name := capitalize(strings.TrimSpace(raw))
			author, ok := castByName[name]
			if !ok {
				return nil, fmt.Errorf("speaker %q not in cast", name)
			}

			if previous != nil && previous.Name != author.Name {
				lines = append(lines, Line{
					Text:   strings.Join(current, " "),
					Author: *previous,
				})
				current = current[:0]

				if maxTurns > 0 && len(lines) >= maxTurns {
					return lines, nil
				}
			}
			previous = &author
		case strings.HasPrefix(raw, directionIndent):
			// Stage directions are not spoken.
		case strings.HasPrefix(raw, dialogueIndent):
			if text := strings.TrimSpace(raw); text != "" {
				current = append(current, text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if previous != nil && len(current) > 0 {
		lines = append(lines, Line{
			Text:   strings.Join(current, " "),
			Author: *previous,
		})
	}
	return lines, nil
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
