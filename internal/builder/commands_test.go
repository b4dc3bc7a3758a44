package builder

import (
	"reflect"
	"testing"
)

func TestParseCommentCommand(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected commentCommand
	}{
		{"pause", "pause", pauseCommand{}},
		{"padded pause", " pause ", pauseCommand{}},
		{"end slide", "end_slide", endSlideCommand{}},
		{"reset layout", "reset_layout", resetLayoutCommand{}},
		{"column layout", "column_layout: [1, 2]", initColumnLayoutCommand{columns: []int{1, 2}}},
		{"column", "column: 1", enterColumnCommand{column: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			command, err := parseCommentCommand(tc.input)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if !reflect.DeepEqual(command, tc.expected) {
				t.Fatalf("expected %#v, got %#v", tc.expected, command)
			}
		})
	}
}

func TestParseCommentCommandErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unknown word", "potato"},
		{"unknown mapping", "vim: hi"},
		{"two commands", "column: 1\ncolumn_layout: [1]"},
		{"non integer column", "column: banana"},
		{"non list layout", "column_layout: 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseCommentCommand(tc.input); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestShouldIgnoreComment(t *testing.T) {
	cases := []struct {
		input    string
		expected bool
	}{
		{"pause", false},
		{"column: 1", false},
		{"multi\nline", true},
		{"open {{{ fold", true},
		{"close }}} fold", true},
	}
	for _, tc := range cases {
		if got := shouldIgnoreComment(tc.input); got != tc.expected {
			t.Fatalf("shouldIgnoreComment(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}
