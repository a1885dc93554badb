package filter

import (
	"testing"
	"time"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/htmldom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
)

const page = `<html><body>
<section id="projects">
  <div class="projects-tabs">
    <button class="projects-tab-btn projects-tab-btn-active" id="all">All</button>
    <button class="projects-tab-btn" id="web">Web</button>
    <button class="projects-tab-btn" id="mobile">Mobile</button>
    <button class="projects-tab-btn" id="games">Games</button>
  </div>
  <div class="projects-grid">
    <article class="projects-item web" id="p1"></article>
    <article class="projects-item mobile" id="p2"></article>
    <article class="projects-item web" id="p3"></article>
    <article class="projects-item design" id="p4"></article>
    <article class="projects-item web" id="p5"></article>
  </div>
</section>
</body></html>`

func setup(t *testing.T) (*htmldom.Document, *timing.Manual, *Controller) {
	t.Helper()
	doc, err := htmldom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clock := timing.NewManual()
	c := New(doc, clock, config.Default().Timings)
	if !c.Init() {
		t.Fatal("expected controller to initialise")
	}
	clock.Advance(time.Second)
	return doc, clock, c
}

func displays(doc *htmldom.Document) (block, none []string) {
	for _, item := range doc.QueryAll(dom.SelectorProjectItem) {
		switch item.Style("display") {
		case "block":
			block = append(block, item.ID())
		case "none":
			none = append(none, item.ID())
		}
	}
	return block, none
}

func TestInitShowsEverything(t *testing.T) {
	doc, _, c := setup(t)
	block, none := displays(doc)
	if len(block) != 5 || len(none) != 0 {
		t.Fatalf("all cards should be shown after init: block=%v none=%v", block, none)
	}
	for _, item := range doc.QueryAll(dom.SelectorProjectItem) {
		if item.Style("opacity") != "1" || item.Style("transform") != "translateY(0)" {
			t.Fatalf("card %s not at rest: %q", item.ID(), item.Attr("style"))
		}
		if c.Phase(item) != Visible {
			t.Fatalf("card %s phase %v", item.ID(), c.Phase(item))
		}
	}
	if c.Selected() != dom.FilterAll {
		t.Fatalf("expected all selected, got %q", c.Selected())
	}
}

func TestWebFilterAfter350ms(t *testing.T) {
	doc, clock, c := setup(t)
	doc.Click(doc.ByID("web"))
	clock.Advance(350 * time.Millisecond)

	block, none := displays(doc)
	if len(block) != 3 || len(none) != 2 {
		t.Fatalf("expected 3 shown and 2 hidden, got block=%v none=%v", block, none)
	}
	for _, id := range block {
		if !doc.ByID(id).HasClass("web") {
			t.Fatalf("non-web card %s shown", id)
		}
	}
	if c.Phase(doc.ByID("p2")) != Hidden || c.Phase(doc.ByID("p1")) != Visible {
		t.Fatalf("unexpected phases: p1=%v p2=%v", c.Phase(doc.ByID("p1")), c.Phase(doc.ByID("p2")))
	}
}

func TestTransitionPhases(t *testing.T) {
	doc, clock, c := setup(t)
	doc.Click(doc.ByID("mobile"))
	p1, p2 := doc.ByID("p1"), doc.ByID("p2")

	if c.Phase(p2) != Entering || p2.Style("display") != "block" {
		t.Fatalf("matching card should enter immediately: %v %q", c.Phase(p2), p2.Attr("style"))
	}
	if c.Phase(p1) != Leaving || p1.Style("opacity") != "0" || p1.Style("transform") != "translateY(20px)" {
		t.Fatalf("other cards should start fading immediately: %v %q", c.Phase(p1), p1.Attr("style"))
	}
	if p1.Style("display") != "block" {
		t.Fatal("leaving card keeps its layout until the transition ends")
	}

	clock.Advance(50 * time.Millisecond)
	if c.Phase(p2) != Visible {
		t.Fatalf("entering card should rest after the show delay, got %v", c.Phase(p2))
	}
	clock.Advance(249 * time.Millisecond)
	if p1.Style("display") != "block" {
		t.Fatal("leaving card hidden before the transition ended")
	}
	clock.Advance(time.Millisecond)
	if p1.Style("display") != "none" || c.Phase(p1) != Hidden {
		t.Fatalf("leaving card should be hidden at 300ms: %q", p1.Attr("style"))
	}
}

func TestKnownCategoriesShowExactlyTheirCards(t *testing.T) {
	for _, category := range []string{"all", "web", "mobile"} {
		doc, clock, _ := setup(t)
		doc.Click(doc.ByID(category))
		clock.Advance(time.Second)
		for _, item := range doc.QueryAll(dom.SelectorProjectItem) {
			want := category == "all" || item.HasClass(category)
			shown := item.Style("display") == "block" && item.Style("opacity") == "1"
			if shown != want {
				t.Fatalf("%s: card %s shown=%v want %v", category, item.ID(), shown, want)
			}
		}
	}
}

func TestUnknownCategoryHidesEverything(t *testing.T) {
	doc, clock, _ := setup(t)
	doc.Click(doc.ByID("games"))
	clock.Advance(time.Second)
	block, none := displays(doc)
	if len(block) != 0 || len(none) != 5 {
		t.Fatalf("unknown category should hide all: block=%v none=%v", block, none)
	}
}

func TestActiveButtonIsExclusive(t *testing.T) {
	doc, _, _ := setup(t)
	doc.Click(doc.ByID("web"))
	doc.Click(doc.ByID("mobile"))
	var active []string
	for _, btn := range doc.QueryAll(dom.SelectorFilterButton) {
		if btn.HasClass(dom.ClassFilterButtonActive) {
			active = append(active, btn.ID())
		}
	}
	if len(active) != 1 || active[0] != "mobile" {
		t.Fatalf("expected only mobile active, got %v", active)
	}
}

func TestEachPassForcesReflow(t *testing.T) {
	doc, _, _ := setup(t)
	before := doc.Reflows()
	doc.Click(doc.ByID("web"))
	if doc.Reflows() != before+1 {
		t.Fatalf("expected one forced reflow per pass, got %d", doc.Reflows()-before)
	}
	if got := doc.Query(dom.SelectorProjectGrid).Style("display"); got != "grid" {
		t.Fatalf("grid should end displayed as grid, got %q", got)
	}
}

func TestStaleCallbacksStillRun(t *testing.T) {
	doc, clock, _ := setup(t)
	doc.Click(doc.ByID("web"))
	clock.Advance(100 * time.Millisecond)
	doc.Click(doc.ByID("all"))
	clock.Advance(time.Second)

	// p2 was shown again by "all" but the hide scheduled by "web" fired after it.
	if got := doc.ByID("p2").Style("display"); got != "none" {
		t.Fatalf("stale hide should still apply, got display %q", got)
	}
}

func TestInitSkipsWithoutCards(t *testing.T) {
	doc, err := htmldom.ParseString(`<html><body><button class="projects-tab-btn" id="all"></button></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clock := timing.NewManual()
	if New(doc, clock, config.Default().Timings).Init() {
		t.Fatal("init should report false without cards")
	}
	if clock.Pending() != 0 {
		t.Fatal("nothing should be scheduled")
	}
}
