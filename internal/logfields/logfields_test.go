package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "walk", Stage("walk")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "1-hero.md", File("1-hero.md")},
		{"Name", KeyName, "n", Name("n")},
		{"Route", KeyRoute, "/docs", Route("/docs")},
		{"Section", KeySection, "hero", Section("hero")},
		{"Mount", KeyMount, "docs", Mount("docs")},
		{"Mode", KeyMode, "pages", Mode("pages")},
		{"Version", KeyVersion, "v2", Version("v2")},
		{"Subject", KeySubject, "site.built", Subject("site.built")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Pages(3); v.Key != KeyPages || v.Value.Int64() != 3 {
		t.Fatalf("Pages mismatch: %v", v)
	}
	if v := Sections(7); v.Key != KeySections {
		t.Fatalf("Sections key mismatch: %s", v.Key)
	}
	if v := Warnings(1); v.Key != KeyWarnings {
		t.Fatalf("Warnings key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
