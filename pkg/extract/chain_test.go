package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func selectionFrom(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	return doc.Selection
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	sel := selectionFrom(t, `<div><span class="b">  second   choice </span><span class="c">third</span></div>`)
	chain := Chain{Text(".a"), Text(".b"), Text(".c")}

	got, idx := chain.First(sel)
	if got != "second choice" {
		t.Errorf("expected %q, got %q", "second choice", got)
	}
	if idx != 1 {
		t.Errorf("expected step 1, got %d", idx)
	}
}

func TestChain_NoMatch(t *testing.T) {
	sel := selectionFrom(t, `<div></div>`)
	got, idx := Chain{Text(".missing"), Attr("img", "alt")}.First(sel)
	if got != "" || idx != -1 {
		t.Errorf("expected no match, got %q at %d", got, idx)
	}
}

func TestAttr_SkipsElementsWithoutAttribute(t *testing.T) {
	sel := selectionFrom(t, `<div><img src="a.png"><img alt="BER A2"></div>`)
	if got := Attr("img", "alt")(sel); got != "BER A2" {
		t.Errorf("expected %q, got %q", "BER A2", got)
	}
}

func TestSegment(t *testing.T) {
	sel := selectionFrom(t, `<p class="meta">2 Bed · 1 Bath · Apartment</p>`)
	if got := Segment(".meta", "·", "bath")(sel); got != "1 Bath" {
		t.Errorf("expected %q, got %q", "1 Bath", got)
	}
	if got := Segment(".meta", "·", "garden")(sel); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := LastSegment(".meta", "·")(sel); got != "Apartment" {
		t.Errorf("expected %q, got %q", "Apartment", got)
	}
}

func TestLastSegment_RejectsCounts(t *testing.T) {
	sel := selectionFrom(t, `<p class="meta">2 Bed · 1 Bath</p>`)
	if got := LastSegment(".meta", "·")(sel); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestCandidates_FirstMatchingSelector(t *testing.T) {
	sel := selectionFrom(t, `<ul class="new"><li>a</li><li>b</li></ul>`)
	found := Candidates{"ul.old li", "ul.new li"}.Find(sel)
	if found.Length() != 2 {
		t.Errorf("expected 2 matches, got %d", found.Length())
	}
	if none := (Candidates{".nothing"}).Find(sel); none.Length() != 0 {
		t.Errorf("expected empty selection, got %d", none.Length())
	}
}
