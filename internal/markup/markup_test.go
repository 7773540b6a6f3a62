package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAcceptsPlainElements(t *testing.T) {
	root, err := Parse("<div><p>Our return policy...</p></div>", NewRegistry())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(root.Children))
	}

	div := root.Children[0]
	if div.Tag != "div" {
		t.Fatalf("expected div, got %s", div.Tag)
	}
	if len(div.Children) != 1 || div.Children[0].Tag != "p" {
		t.Fatalf("expected nested p, got %+v", div.Children)
	}
}

func TestParseRejectsEmptyMarkup(t *testing.T) {
	if _, err := Parse("  \n\t ", NewRegistry()); !errors.Is(err, ErrEmptyMarkup) {
		t.Fatalf("expected ErrEmptyMarkup, got %v", err)
	}
}

func TestParseRejectsModuleStatements(t *testing.T) {
	sources := []string{
		"import React from 'react'\n<div>hi</div>",
		"<div>hi</div>\nexport default Page",
	}
	for _, src := range sources {
		if _, err := Parse(src, NewRegistry()); err == nil {
			t.Fatalf("expected error for source %q", src)
		}
	}
}

func TestParseRejectsUnclosedTag(t *testing.T) {
	if _, err := Parse("<div><p>hello</div>", NewRegistry()); err == nil {
		t.Fatal("expected error for mismatched closing tag")
	}

	if _, err := Parse("<div>hello", NewRegistry()); err == nil {
		t.Fatal("expected error for unclosed tag")
	}

	if _, err := Parse("hello</div>", NewRegistry()); err == nil {
		t.Fatal("expected error for stray closing tag")
	}
}

func TestParseRejectsUnknownComponent(t *testing.T) {
	_, err := Parse("<div><UnknownComp /></div>", NewRegistry())
	if err == nil {
		t.Fatal("expected error for unregistered component")
	}
	if !strings.Contains(err.Error(), "UnknownComp") {
		t.Fatalf("expected error to name the component, got %v", err)
	}
}

func TestParseRejectsScriptTags(t *testing.T) {
	if _, err := Parse("<script>alert(1)</script>", NewRegistry()); err == nil {
		t.Fatal("expected script tags to be outside the grammar")
	}
}

func TestParseAllowsRegisteredComponent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Greeting", func(attrs []Attribute, children string) (string, error) {
		return "<p>hello</p>", nil
	})

	if _, err := Parse("<div><Greeting /></div>", reg); err != nil {
		t.Fatalf("expected registered component to parse, got %v", err)
	}
}

func TestRenderPreservesStructure(t *testing.T) {
	got, err := Render("<div><p>a</p><p>b</p></div>", NewRegistry())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got != "<div><p>a</p><p>b</p></div>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderEscapesText(t *testing.T) {
	got, err := Render("<p>fish &amp; chips</p>", NewRegistry())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(got, "fish &amp; chips") {
		t.Fatalf("expected escaped ampersand, got %q", got)
	}
}

func TestRenderStripsEventHandlerAttributes(t *testing.T) {
	got, err := Render(`<div onclick="steal()">safe</div>`, NewRegistry())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("expected onclick to be sanitized away, got %q", got)
	}
	if !strings.Contains(got, "safe") {
		t.Fatalf("expected content to survive, got %q", got)
	}
}

func TestRenderInvokesRegisteredComponent(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Notice", func(attrs []Attribute, children string) (string, error) {
		return "<p>" + children + "</p>", nil
	})

	got, err := Render("<Notice>heads up</Notice>", reg)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if got != "<p>heads up</p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderFailsClosedOnInvalidMarkup(t *testing.T) {
	got, err := Render("<div><UnknownComp /></div>", NewRegistry())
	if err == nil {
		t.Fatal("expected error for invalid markup")
	}
	if got != "" {
		t.Fatalf("expected no partial output, got %q", got)
	}
}
