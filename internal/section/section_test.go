package section

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "identifier", input: "projects", want: Projects},
		{name: "button label", input: "Volunteering", want: Volunteering},
		{name: "surrounding space", input: "  education ", want: Education},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, input := range []string{"", "contact", "about-me"} {
		if _, err := Parse(input); !errors.Is(err, ErrUnknownSection) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownSection", input, err)
		}
	}
}

func TestAllOrderAndLabels(t *testing.T) {
	want := []string{"About", "Experience", "Projects", "Achievements", "Volunteering", "Education"}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(all))
	}
	for i, id := range all {
		if id.Label() != want[i] {
			t.Errorf("section %d label = %q, want %q", i, id.Label(), want[i])
		}
	}

	all[0] = "mutated"
	if All()[0] != About {
		t.Fatal("All must return a copy")
	}
}

func TestDefaultIsAbout(t *testing.T) {
	if Default != About {
		t.Fatalf("Default = %q want %q", Default, About)
	}
}
