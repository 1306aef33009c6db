package client_test

import (
	"strings"
	"testing"

	"github.com/adamwoolhether/flowdock/client"
	"github.com/google/go-cmp/cmp"
)

func TestValidLabel(t *testing.T) {
	testCases := map[string]bool{
		"myapp":       true,
		"MyApp":       true,
		"my app":      true,
		"my-app_2":    true,
		"":            false,
		"$foobar":     false,
		"my.app":      false,
		"my/app":      false,
		"äpp":         false,
		"line\nbreak": false,
	}

	for input, exp := range testCases {
		if got := client.ValidLabel(input); got != exp {
			t.Errorf("ValidLabel(%q) = %v, want %v", input, got, exp)
		}
	}
}

func TestIsBlank(t *testing.T) {
	testCases := map[string]bool{
		"":     true,
		"   ":  true,
		"\t\n": true,
		"a":    false,
		" a ":  false,
	}

	for input, exp := range testCases {
		if got := client.IsBlank(input); got != exp {
			t.Errorf("IsBlank(%q) = %v, want %v", input, got, exp)
		}
	}
}

func TestHasWhitespace(t *testing.T) {
	testCases := map[string]bool{
		"foobar":   false,
		"foo bar":  true,
		"foo\tbar": true,
		"foobar\n": true,
		"":         false,
	}

	for input, exp := range testCases {
		if got := client.HasWhitespace(input); got != exp {
			t.Errorf("HasWhitespace(%q) = %v, want %v", input, got, exp)
		}
	}
}

func TestFilterTags(t *testing.T) {
	clean := []string{"cool", "stuff", "cool"}
	noisy := []string{"", "cool", "  ", "stuff", "\t", "cool"}

	if diff := cmp.Diff(clean, client.FilterTags(noisy)); diff != "" {
		t.Errorf("filtered tags mismatch (-want +got):\n%s", diff)
	}

	once := strings.Join(client.FilterTags(clean), ",")
	twice := strings.Join(client.FilterTags(client.FilterTags(noisy)), ",")
	if once != twice || once != "cool,stuff,cool" {
		t.Errorf("expected filtering to be idempotent, got %q and %q", once, twice)
	}

	if got := client.FilterTags(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
