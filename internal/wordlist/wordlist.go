// Package wordlist loads word and line pools from text files.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadWords reads whitespace-separated words from the provided file path.
func LoadWords(path string) ([]string, error) {
	return loadFile(path, ParseWords)
}

// LoadLines reads non-blank, trimmed lines from the provided file path.
func LoadLines(path string) ([]string, error) {
	return loadFile(path, ParseLines)
}

func loadFile(path string, parse func(io.Reader) ([]string, error)) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only pool file.
			_ = cerr
		}
	}()
	return parse(file)
}

// ParseWords splits the input into whitespace-separated words, keeping only
// typeable ones. Line length is unbounded; only a single word is capped.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if word := scanner.Text(); Typeable(word) {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ParseLines returns trimmed, non-blank, typeable lines.
func ParseLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !Typeable(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
