package maze

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single maze row read by Load.
const maxLineBytes = 1 << 20

// Load reads maze text from r, drops blank lines and trailing whitespace,
// and parses the remaining rectangular block.
func Load(r io.Reader) (*Grid, error) {
	text, err := Normalize(r)
	if err != nil {
		return nil, err
	}

	return Parse(text)
}

// Normalize returns the maze block contained in r: blank lines are removed,
// trailing whitespace is stripped from every row and rows are joined with
// "\n". The result is the canonical form hashed by callers that cache solves.
func Normalize(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var b strings.Builder
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("maze: reading input: %w", err)
	}

	return b.String(), nil
}
