package dom

import (
	"errors"
	"testing"

	"github.com/chrisuehlinger/vibeui/css"
)

const styledPage = `<html><head>
	<style>
		.box { margin-left: 10px; overflow: auto; position: relative }
		.box.wide { margin-left: 20px }
		#target { margin-top: 5px !important }
		[data-placement=top] { margin-top: 1px }
	</style>
	<style type="text/less">.box { margin-left: 99px }</style>
</head><body>
	<div id="target" class="box" style="margin-top: 3px; position: absolute"></div>
	<p id="plain"></p>
</body></html>`

func loadStyled(t *testing.T) *Document {
	t.Helper()
	doc, err := NewWindow(800, 600).LoadHTML(styledPage)
	if err != nil {
		t.Fatalf("LoadHTML failed: %v", err)
	}
	return doc
}

func TestComputedStyleCascade(t *testing.T) {
	doc := loadStyled(t)
	target := doc.GetElementById("target")

	tests := []struct {
		property string
		want     string
	}{
		{"margin-left", "10px"},  // class rule
		{"margin-top", "5px"},    // important rule beats the inline value
		{"position", "absolute"}, // inline beats a normal rule
		{"overflow-y", "auto"},   // shorthand rule feeds the longhands
		{"margin-right", "0px"},  // user agent default
		{"marginLeft", "10px"},   // script spelling
	}
	for _, tt := range tests {
		if got := target.ComputedStyle(tt.property); got != tt.want {
			t.Errorf("ComputedStyle(%q) = %q; expected %q", tt.property, got, tt.want)
		}
	}
	if !target.IsScrollContainer() {
		t.Error("Expected overflow from a stylesheet to make a scroll container")
	}
	if got := doc.GetElementById("plain").ComputedStyle("margin-left"); got != "0px" {
		t.Errorf("Expected unmatched elements to fall back to the user agent, got %q", got)
	}

	target.Style().SetProperty("margin-top", "2px", "important")
	if got := target.ComputedStyle("margin-top"); got != "2px" {
		t.Errorf("Expected an important inline value to win, got %q", got)
	}
}

func TestComputedStyleFollowsMutations(t *testing.T) {
	doc := loadStyled(t)
	target := doc.GetElementById("target")
	plain := doc.GetElementById("plain")

	if err := target.ClassList().Add("wide"); err != nil {
		t.Fatal(err)
	}
	if got := target.ComputedStyle("margin-left"); got != "20px" {
		t.Errorf("Expected the class change to apply, got %q", got)
	}

	plain.SetAttribute("data-placement", "top")
	if got := plain.ComputedStyle("margin-top"); got != "1px" {
		t.Errorf("Expected the attribute rule to apply, got %q", got)
	}
	plain.RemoveAttribute("data-placement")
	if got := plain.ComputedStyle("margin-top"); got != "0px" {
		t.Errorf("Expected the attribute rule to stop applying, got %q", got)
	}

	style := doc.CreateElement("style")
	style.SetTextContent("p { margin-left: 7px }")
	if _, err := doc.Head().AppendChild(style.AsNode()); err != nil {
		t.Fatal(err)
	}
	if got := plain.ComputedStyle("margin-left"); got != "7px" {
		t.Errorf("Expected an added style element to apply, got %q", got)
	}
	style.SetTextContent("p { margin-left: 8px }")
	if got := plain.ComputedStyle("margin-left"); got != "8px" {
		t.Errorf("Expected edited style text to apply, got %q", got)
	}
	style.Remove()
	if got := plain.ComputedStyle("margin-left"); got != "0px" {
		t.Errorf("Expected a removed style element to stop applying, got %q", got)
	}

	if n := len(doc.StyleSheets()); n != 1 {
		t.Errorf("Expected 1 css style sheet, got %d", n)
	}
}

func TestAttributeInvalidation(t *testing.T) {
	doc := loadStyled(t)
	plain := doc.GetElementById("plain")
	doc.documentData.dirty = false

	plain.SetAttribute("data-x", "1")
	if !doc.NeedsLayout() {
		t.Error("Expected a new attribute to invalidate layout")
	}
	doc.documentData.dirty = false
	plain.SetAttribute("data-x", "1")
	if doc.NeedsLayout() {
		t.Error("Expected an unchanged attribute not to invalidate layout")
	}
	plain.RemoveAttribute("data-missing")
	if doc.NeedsLayout() {
		t.Error("Expected removing a missing attribute not to invalidate layout")
	}
}

func TestQuerySelectorAll(t *testing.T) {
	doc := loadStyled(t)

	found, err := doc.QuerySelectorAll("body > *, head style:first-child")
	if err != nil {
		t.Fatalf("QuerySelectorAll failed: %v", err)
	}
	var ids []string
	for _, el := range found {
		ids = append(ids, el.LocalName()+"#"+el.Id())
	}
	want := []string{"style#", "div#target", "p#plain"}
	if len(ids) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, ids)
			break
		}
	}

	target := doc.GetElementById("target")
	if ok, err := target.Matches("div.box + p"); err != nil || ok {
		t.Errorf("Matches(div.box + p) = %v, %v; expected false", ok, err)
	}
	if ok, err := doc.GetElementById("plain").Matches("div.box + p"); err != nil || !ok {
		t.Errorf("Matches(div.box + p) = %v, %v; expected true", ok, err)
	}
	if _, err := target.Matches("div >"); !errors.Is(err, css.ErrInvalidSelector) {
		t.Errorf("Expected ErrInvalidSelector, got %v", err)
	}
}
