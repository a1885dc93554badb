package sections

import (
	"testing"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/htmldom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/viewport"
)

const page = `<html><body>
<nav class="nav"><ul class="nav-links">
  <li><a class="nav-item" href="#home">Home</a></li>
  <li><a class="nav-item" href="#about">About</a></li>
  <li><a class="nav-item" href="#contact">Contact</a></li>
</ul></nav>
<section id="home"></section>
<section id="about"></section>
<section id="contact"></section>
</body></html>`

type fakeObserver struct {
	opts    viewport.Options
	cb      viewport.Callback
	targets []dom.Element
}

func (f *fakeObserver) Observe(target dom.Element) { f.targets = append(f.targets, target) }

func (f *fakeObserver) NewObserver(opts viewport.Options, cb viewport.Callback) viewport.Observer {
	f.opts = opts
	f.cb = cb
	return f
}

func load(t *testing.T) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func active(doc *htmldom.Document) []string {
	var out []string
	for _, item := range doc.QueryAll(dom.SelectorNavItem) {
		if item.HasClass(dom.ClassNavItemActive) {
			out = append(out, item.Attr("href"))
		}
	}
	return out
}

func TestObservesEverySectionWithLayoutOptions(t *testing.T) {
	doc := load(t)
	fake := &fakeObserver{}
	if !New(doc, fake, Options(config.Default().Layout)).Init() {
		t.Fatal("expected controller to initialise")
	}
	if len(fake.targets) != 3 {
		t.Fatalf("expected 3 observed sections, got %d", len(fake.targets))
	}
	want := viewport.Options{Threshold: 0.5, MarginTop: 100, MarginBottom: 100}
	if fake.opts != want {
		t.Fatalf("unexpected options %+v", fake.opts)
	}
}

func TestIntersectingSectionActivatesItsItem(t *testing.T) {
	doc := load(t)
	fake := &fakeObserver{}
	c := New(doc, fake, Options(config.Default().Layout))
	c.Init()

	fake.cb([]viewport.Entry{{Target: doc.ByID("about"), Intersecting: true, Ratio: 0.7}})
	if got := active(doc); len(got) != 1 || got[0] != "#about" {
		t.Fatalf("expected #about active, got %v", got)
	}

	fake.cb([]viewport.Entry{{Target: doc.ByID("about"), Intersecting: false}})
	if got := active(doc); len(got) != 1 || got[0] != "#about" {
		t.Fatalf("leaving entries do not change the active item, got %v", got)
	}
	if c.Current() != "about" {
		t.Fatalf("expected current about, got %q", c.Current())
	}
}

func TestLastIntersectingEntryInBatchWins(t *testing.T) {
	doc := load(t)
	fake := &fakeObserver{}
	New(doc, fake, Options(config.Default().Layout)).Init()

	fake.cb([]viewport.Entry{
		{Target: doc.ByID("contact"), Intersecting: true},
		{Target: doc.ByID("home"), Intersecting: false},
		{Target: doc.ByID("about"), Intersecting: true},
	})
	if got := active(doc); len(got) != 1 || got[0] != "#about" {
		t.Fatalf("last intersecting entry should win, got %v", got)
	}
}

func TestTrackerDrivesActiveItemOnScroll(t *testing.T) {
	doc := load(t)
	doc.SetViewport(1280, 800)
	for i, id := range []string{"home", "about", "contact"} {
		doc.SetBox(doc.ByID(id), htmldom.Box{Top: float64(i) * 700, Height: 500})
	}
	clock := timing.NewManual()
	factory := viewport.TrackerFactory{Layout: doc, Events: doc, Scheduler: clock}
	New(doc, factory, Options(config.Default().Layout)).Init()

	clock.Advance(0)
	if got := active(doc); len(got) != 1 || got[0] != "#home" {
		t.Fatalf("expected #home active at the top, got %v", got)
	}

	doc.ScrollTo(1400, true)
	if got := active(doc); len(got) != 1 || got[0] != "#contact" {
		t.Fatalf("expected #contact active after scrolling, got %v", got)
	}
}

func TestInitSkipsWithoutNavItems(t *testing.T) {
	doc, err := htmldom.ParseString(`<html><body><section id="home"></section></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fake := &fakeObserver{}
	if New(doc, fake, Options(config.Default().Layout)).Init() {
		t.Fatal("init should report false without nav items")
	}
	if fake.cb != nil {
		t.Fatal("no observer should be created")
	}
}
