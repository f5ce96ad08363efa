package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSetNormalisesAndFilters(t *testing.T) {
	set := NewSet([]string{" Combs ", "combs", "AT", "co-op", "shift"}, FilterForLang("en"))
	if set.Size() != 2 {
		t.Fatalf("expected 2 words, got %d (%v)", set.Size(), set.Words())
	}
	if !set.Contains("COMBS") || !set.Contains("shift") {
		t.Fatalf("expected case-insensitive hits")
	}
	if set.Contains("at") {
		t.Fatalf("expected short word to be filtered")
	}
	words := set.Words()
	if words[0] != "combs" || words[1] != "shift" {
		t.Fatalf("expected sorted words, got %v", words)
	}
}

func TestNewSetNilFilterKeepsAll(t *testing.T) {
	set := NewSet([]string{"a", "", "Be"}, nil)
	if set.Size() != 2 || !set.Contains("be") {
		t.Fatalf("unexpected set %v", set.Words())
	}
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	data := "# header\ncombs\n\n  Shift \ntube\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	set, err := Load(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if set.Size() != 3 {
		t.Fatalf("expected 3 words, got %v", set.Words())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.txt"), nil); err == nil {
		t.Fatalf("expected missing file error")
	}
	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	if _, err := LoadWords(empty); err == nil {
		t.Fatalf("expected empty list error")
	}
	short := filepath.Join(dir, "short.txt")
	if err := os.WriteFile(short, []byte("at\nto\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	if _, err := Load(short, FilterForLang("en")); err == nil {
		t.Fatalf("expected no playable words error")
	}
}

func TestWriteWordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "en.txt")
	if err := WriteWords(path, []string{"after", "rest"}); err != nil {
		t.Fatalf("WriteWords failed: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 2 || words[0] != "after" || words[1] != "rest" {
		t.Fatalf("unexpected words %v", words)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestDefaultList(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if set.Size() < 5000 {
		t.Fatalf("expected a sizeable default list, got %d", set.Size())
	}
	words := []string{
		"combs", "after", "rest", "told", "design",
		"lemon", "bison", "cod", "fib", "hums", "humming", "knives", "happier",
	}
	for _, w := range words {
		if !set.Contains(w) {
			t.Fatalf("expected default list to contain %q", w)
		}
	}
	if set.Contains("cubf") {
		t.Fatalf("unexpected nonsense word in default list")
	}
}

func TestParseListErrors(t *testing.T) {
	if _, err := parseList(strings.NewReader(strings.Repeat("a", 70_000)), nil); err == nil {
		t.Fatalf("expected scanner error for an oversized line")
	}
	if _, err := parseList(strings.NewReader("# only\nab\n"), FilterForLang("en")); err == nil {
		t.Fatalf("expected error for a list without playable words")
	}
}
