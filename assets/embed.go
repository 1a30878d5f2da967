package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed dictionary.tsv
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// DictionaryLines returns the raw lines of the bundled fallback dictionary,
// one tab-separated entry per line (word, part of speech, definition).
func DictionaryLines() ([]string, error) {
	return readLines("dictionary.tsv")
}
