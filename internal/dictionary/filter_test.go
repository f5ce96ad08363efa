package dictionary

import "testing"

func TestFilterEnglish(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("combs") {
		t.Fatalf("expected combs to pass english filter")
	}
	for _, word := range []string{"résumé", "don’t", "co-op", "at", "Cat"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterOtherLangKeepsLongWords(t *testing.T) {
	filter := FilterForLang("fr")
	if !filter("été") {
		t.Fatalf("expected été to be kept")
	}
	if filter("où") {
		t.Fatalf("expected two-letter word to be rejected")
	}
}
