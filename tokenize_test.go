package isoabbrev

import "testing"

func TestSplitToken(t *testing.T) {
	tests := []struct {
		field string
		want  token
	}{
		{"Journal", token{core: "Journal"}},
		{"(Basel),", token{lead: "(", core: "Basel", trail: "),"}},
		{"Sci.", token{core: "Sci", trail: "."}},
		{"U.S.A.", token{core: "U.S.A", trail: "."}},
		{"&", token{lead: "&"}},
		{"«Études»", token{lead: "«", core: "Études", trail: "»"}},
	}
	for _, tt := range tests {
		if got := splitToken(tt.field); got != tt.want {
			t.Errorf("splitToken(%q) = %+v, want %+v", tt.field, got, tt.want)
		}
	}
}

func TestWordShapes(t *testing.T) {
	for word, want := range map[string]bool{
		"IEEE": true, "U.S.A": true, "COVID-19": true, "A": false, "Journal": false, "2024": false,
	} {
		if got := isAcronym(word); got != want {
			t.Errorf("isAcronym(%q) = %v", word, got)
		}
	}
	if !isShouted("JOURNAL OF SCIENCE") || isShouted("Journal of Science") || isShouted("1984") {
		t.Errorf("isShouted misjudges titles")
	}
}

func TestSplitElision(t *testing.T) {
	tests := []struct {
		word, head, rest string
		ok               bool
	}{
		{"l'Enseignement", "l'", "Enseignement", true},
		{"d’Histoire", "d’", "Histoire", true},
		{"qu'il", "qu'", "il", true},
		{"Women's", "", "", false},
		{"l'", "", "", false},
	}
	for _, tt := range tests {
		head, rest, ok := splitElision(tt.word)
		if ok != tt.ok || head != tt.head || rest != tt.rest {
			t.Errorf("splitElision(%q) = %q, %q, %v", tt.word, head, rest, ok)
		}
	}
}

func TestCutPossessive(t *testing.T) {
	if stem, ok := cutPossessive("Women's"); !ok || stem != "Women" {
		t.Errorf("expected Women, got %q/%v", stem, ok)
	}
	if _, ok := cutPossessive("'s"); ok {
		t.Errorf("bare 's is no possessive")
	}
	if _, ok := cutPossessive("Studies"); ok {
		t.Errorf("Studies is no possessive")
	}
}

func TestCaseHelpers(t *testing.T) {
	if got := matchCase("j.", "Journal"); got != "J." {
		t.Errorf("matchCase upper: %q", got)
	}
	if got := matchCase("Int.", "international"); got != "int." {
		t.Errorf("matchCase lower: %q", got)
	}
	for word, want := range map[string]string{
		"cross-ling.": "Cross-ling.",
		"eLife":       "eLife",
		"étud.":       "Étud.",
		"2nd":         "2nd",
		"...":         "...",
	} {
		if got := capitalize(word); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", word, got, want)
		}
	}
	if got := attachTrail("J.", ".,"); got != "J.," {
		t.Errorf("attachTrail should avoid doubled periods, got %q", got)
	}
}
