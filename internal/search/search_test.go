package search

import (
	"errors"
	"reflect"
	"testing"
)

func TestFilterCountries(t *testing.T) {
	t.Run("empty term returns all", func(t *testing.T) {
		got := FilterCountries("  ")
		if len(got) != len(Countries) {
			t.Fatalf("len(FilterCountries(\"\")) = %d, want %d", len(got), len(Countries))
		}
	})

	t.Run("case-insensitive substring keeps order", func(t *testing.T) {
		got := FilterCountries("GUINEA")
		want := []string{"Equatorial Guinea", "Guinea", "Guinea-Bissau", "Papua New Guinea"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("FilterCountries() = %#v, want %#v", got, want)
		}
	})

	t.Run("no match", func(t *testing.T) {
		got := FilterCountries("atlantis")
		if len(got) != 0 {
			t.Fatalf("expected no matches, got %#v", got)
		}
	})
}

func TestResolveCountry(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"usa", "USA"},
		{" India ", "India"},
		{"zimb", "Zimbabwe"},
		{"guinea", "Guinea"},
	}
	for _, tc := range cases {
		got, err := ResolveCountry(tc.input)
		if err != nil {
			t.Fatalf("ResolveCountry(%q) error = %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveCountry(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestResolveCountryErrors(t *testing.T) {
	if _, err := ResolveCountry(""); !errors.Is(err, ErrMissingCountry) {
		t.Fatalf("ResolveCountry(\"\") error = %v, want ErrMissingCountry", err)
	}
	if _, err := ResolveCountry("atlantis"); !errors.Is(err, ErrUnknownCountry) {
		t.Fatalf("ResolveCountry(atlantis) error = %v, want ErrUnknownCountry", err)
	}

	_, err := ResolveCountry("land")
	var ambiguous *AmbiguousCountryError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("ResolveCountry(land) error = %v, want AmbiguousCountryError", err)
	}
	if len(ambiguous.Candidates) < 2 {
		t.Fatalf("expected several candidates, got %#v", ambiguous.Candidates)
	}
}

func TestFormSubmit(t *testing.T) {
	q, err := Form{Phrase: "  shoes ", Country: "usa"}.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if q.Phrase != "shoes" || q.Country != "USA" {
		t.Fatalf("Submit() = %+v", q)
	}

	for _, form := range []Form{{Phrase: "shoes"}, {Country: "USA"}, {Phrase: " ", Country: " "}} {
		_, err := form.Submit()
		if !errors.Is(err, ErrIncompleteForm) {
			t.Fatalf("Submit(%+v) error = %v, want ErrIncompleteForm", form, err)
		}
		if err.Error() != "Please enter both a search phrase and a country." {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}
