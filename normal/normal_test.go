package normal

import (
	"fmt"
	"testing"
)

func TestCleanEscapeArtifacts(t *testing.T) {
	testCases := []struct {
		s      string
		result string
	}{
		{` \\xc3\\xc3`, ` `},
		{`Laminoplasty or \xc3\xb1 Laminectomy`, `Laminoplasty or Laminectomy`},
		{`nursing \xc3\x28`, `nursing `},
		{`nursing`, `nursing`},
		{``, ``},
		{`\xC3`, ``},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("cleaning: %s", tc.s), func(t *testing.T) {
			cleaned := CleanEscapeArtifacts(tc.s)
			if cleaned != tc.result {
				t.Errorf("got %q, want %q", cleaned, tc.result)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	testCases := []struct {
		s      string
		result string
	}{
		{`   Test Title   `, `Test Title`},
		{`Laminoplasty or \xc3\xb1 Laminectomy`, `Laminoplasty or Laminectomy`},
		{`nursing\xc3\x28`, `nursing`},
		{`nursing`, `nursing`},
		{``, ``},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("cleaning: %s", tc.s), func(t *testing.T) {
			cleaned := CleanText(tc.s)
			if cleaned != tc.result {
				t.Errorf("got %q, want %q", cleaned, tc.result)
			}
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	for _, s := range []string{
		"Test Title",
		"  padded  ",
		"Hôpitaux Universitaires de Genève",
		"",
	} {
		once := CleanText(s)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}
