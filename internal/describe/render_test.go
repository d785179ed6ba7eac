package describe

import (
	"strings"
	"testing"
)

func TestRender_SubstitutesTitleEverywhere(t *testing.T) {
	got := Render("Watch TITLE now. TITLE is live.", "Cat Special", []string{"cats"})
	want := "Watch Cat Special now. Cat Special is live."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, TitlePlaceholder) {
		t.Fatalf("leftover TITLE placeholder in %q", got)
	}
}

func TestRender_CyclesKeywordsInOrder(t *testing.T) {
	got := Render("KEYWORD KEYWORD KEYWORD", "t", []string{"k1", "k2"})
	want := "k1 k2 k1"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_EmptyKeywordsRemovesPlaceholders(t *testing.T) {
	got := Render("Tags: KEYWORD and KEYWORD here. TITLE", "My Video", nil)
	want := "Tags: and here. My Video"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, KeywordPlaceholder) {
		t.Fatalf("leftover KEYWORD placeholder in %q", got)
	}
}

func TestRender_EmptyKeywordsTrimsResult(t *testing.T) {
	got := Render("KEYWORD TITLE KEYWORD", "mid", nil)
	if got != "mid" {
		t.Fatalf("expected %q, got %q", "mid", got)
	}
}

func TestRender_TitleContainingTokenIsNotRescanned(t *testing.T) {
	got := Render("TITLE: KEYWORD", "ALL ABOUT KEYWORD", []string{"dogs"})
	want := "ALL ABOUT KEYWORD: dogs"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_NoPlaceholdersIsIdentity(t *testing.T) {
	tpl := "plain description text"
	if got := Render(tpl, "t", []string{"k"}); got != tpl {
		t.Fatalf("expected identity render, got %q", got)
	}
}
