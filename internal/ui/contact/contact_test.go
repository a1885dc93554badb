package contact

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/htmldom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

const page = `<html><body>
<section id="contact">
  <form id="contactForm">
    <input type="text" name="name" />
    <input type="email" name="email" />
    <select name="topic"><option value="hire">Hire</option><option value="chat">Chat</option></select>
    <textarea name="message"></textarea>
    <button type="submit">Send Message</button>
  </form>
</section>
</body></html>`

type senderFunc func(values map[string]string, done func(error))

func (f senderFunc) Send(values map[string]string, done func(error)) { f(values, done) }

type fixture struct {
	doc   *htmldom.Document
	clock *timing.Manual
	ctrl  *Controller
	logs  *bytes.Buffer
}

func setup(t *testing.T, markup string, sender Sender) fixture {
	t.Helper()
	doc, err := htmldom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clock := timing.NewManual()
	logs := &bytes.Buffer{}
	ids := 0
	ctrl := New(doc, clock, Options{
		Timings: config.Default().Timings,
		Sender:  sender,
		Logger:  logging.New("test", logging.DEBUG, logs),
		NewID: func() string {
			ids++
			return "banner-" + string(rune('0'+ids))
		},
	})
	if !ctrl.Init() {
		t.Fatal("expected controller to initialise")
	}
	return fixture{doc: doc, clock: clock, ctrl: ctrl, logs: logs}
}

func (f fixture) fillAll() {
	f.doc.Fill(f.doc.Query(`[name="name"]`), "Ada")
	f.doc.Fill(f.doc.Query(`[name="email"]`), "ada@example.com")
	f.doc.Fill(f.doc.Query(`[name="topic"]`), "chat")
	f.doc.Fill(f.doc.Query(`[name="message"]`), "Hello there")
}

func (f fixture) button() dom.Element {
	return f.doc.Query(dom.SelectorSubmitButton)
}

func (f fixture) banners() []dom.Element {
	return f.doc.QueryAll(dom.SelectorBanner)
}

func TestSuccessfulSubmission(t *testing.T) {
	f := setup(t, page, nil)
	f.fillAll()

	if prevented := f.doc.Click(f.button()); prevented {
		t.Fatal("the button click itself is not cancelled")
	}
	if !f.button().Disabled() || f.button().Text() != BusyLabel {
		t.Fatalf("button should be busy, got disabled=%v text=%q", f.button().Disabled(), f.button().Text())
	}
	if f.ctrl.Phase() != Submitting {
		t.Fatalf("expected submitting, got %v", f.ctrl.Phase())
	}
	values := f.ctrl.LastValues()
	if values["name"] != "Ada" || values["email"] != "ada@example.com" || values["topic"] != "chat" || values["message"] != "Hello there" {
		t.Fatalf("unexpected collected values: %v", values)
	}

	f.clock.Advance(1499 * time.Millisecond)
	if len(f.banners()) != 0 {
		t.Fatal("banner shown before the simulated send finished")
	}
	f.clock.Advance(time.Millisecond)

	banners := f.banners()
	if len(banners) != 1 {
		t.Fatalf("expected one banner, got %d", len(banners))
	}
	banner := banners[0]
	if banner.Text() != "Thank you for your message! I will get back to you soon." {
		t.Fatalf("unexpected banner text %q", banner.Text())
	}
	if !banner.HasClass("form-alert-success") || banner.Attr(dom.DataAttrBannerID) != "banner-1" {
		t.Fatalf("unexpected banner markup: class=%q id=%q", banner.Attr("class"), banner.Attr(dom.DataAttrBannerID))
	}
	form := f.doc.ByID(dom.IDContactForm)
	if first := form.Query("*"); first == nil || !first.Same(banner) {
		t.Fatal("banner should be the form's first child")
	}
	for _, name := range []string{"name", "email", "message"} {
		if got := f.doc.Value(f.doc.Query(`[name="` + name + `"]`)); got != "" {
			t.Fatalf("field %s should be cleared, got %q", name, got)
		}
	}
	if got := f.doc.Value(f.doc.Query(`[name="topic"]`)); got != "hire" {
		t.Fatalf("select should reset to its default, got %q", got)
	}
	if f.button().Disabled() || f.button().Text() != "Send Message" {
		t.Fatalf("button should be restored, got disabled=%v text=%q", f.button().Disabled(), f.button().Text())
	}
	if f.ctrl.Phase() != Succeeded || !f.ctrl.Phase().Resolved() {
		t.Fatalf("expected succeeded, got %v", f.ctrl.Phase())
	}
}

func TestBannerLifetime(t *testing.T) {
	f := setup(t, page, nil)
	f.doc.Submit(f.doc.ByID(dom.IDContactForm))
	f.clock.Advance(1500 * time.Millisecond)
	banner := f.banners()[0]

	f.clock.Advance(4999 * time.Millisecond)
	if banner.Style("opacity") != "" {
		t.Fatal("banner should not fade before 5000ms")
	}
	f.clock.Advance(time.Millisecond)
	if banner.Style("opacity") != "0" || len(f.banners()) != 1 {
		t.Fatal("banner should be fading but still present at 5000ms")
	}
	f.clock.Advance(299 * time.Millisecond)
	if len(f.banners()) != 1 {
		t.Fatal("banner removed before 5300ms")
	}
	f.clock.Advance(time.Millisecond)
	if len(f.banners()) != 0 {
		t.Fatal("banner should be gone at 5300ms")
	}
}

func TestSenderErrorShowsErrorBanner(t *testing.T) {
	sendErr := errors.New("upstream unavailable")
	var pending func(error)
	f := setup(t, page, senderFunc(func(_ map[string]string, done func(error)) { pending = done }))
	f.fillAll()

	f.doc.Submit(f.doc.ByID(dom.IDContactForm))
	if pending == nil {
		t.Fatal("sender was not called")
	}
	pending(sendErr)

	banners := f.banners()
	if len(banners) != 1 || !banners[0].HasClass("form-alert-error") || banners[0].Text() != ErrorMessage {
		t.Fatalf("expected one error banner, got %d", len(banners))
	}
	if got := f.doc.Value(f.doc.Query(`[name="name"]`)); got != "Ada" {
		t.Fatalf("form must not reset on error, name=%q", got)
	}
	if f.button().Disabled() || f.button().Text() != "Send Message" {
		t.Fatal("button should be restored after an error")
	}
	if !strings.Contains(f.logs.String(), "upstream unavailable") || !strings.Contains(f.logs.String(), `"category":"contact"`) {
		t.Fatalf("error should be logged, got %s", f.logs.String())
	}
	if f.ctrl.Phase() != Failed {
		t.Fatalf("expected failed, got %v", f.ctrl.Phase())
	}
}

func TestCollectionErrorRestoresButton(t *testing.T) {
	markup := `<html><body><div id="contactForm"><button type="submit">Send</button></div></body></html>`
	f := setup(t, markup, nil)

	f.doc.Submit(f.doc.ByID(dom.IDContactForm))

	if f.button().Disabled() || f.button().Text() != "Send" {
		t.Fatal("button should be restored when collecting values fails")
	}
	banners := f.banners()
	if len(banners) != 1 || !banners[0].HasClass("form-alert-error") {
		t.Fatal("expected an error banner")
	}
	if f.ctrl.Sends() != 0 {
		t.Fatal("nothing should reach the sender")
	}
	if f.clock.Pending() != 1 {
		t.Fatalf("only the banner fade should be pending, got %d", f.clock.Pending())
	}
}

func TestNewBannerReplacesExisting(t *testing.T) {
	f := setup(t, page, nil)
	form := f.doc.ByID(dom.IDContactForm)

	f.doc.Submit(form)
	f.clock.Advance(1500 * time.Millisecond)
	f.doc.Submit(form)
	f.clock.Advance(1500 * time.Millisecond)

	banners := f.banners()
	if len(banners) != 1 {
		t.Fatalf("expected a single banner, got %d", len(banners))
	}
	if banners[0].Attr(dom.DataAttrBannerID) != "banner-2" {
		t.Fatalf("expected the second banner to remain, got %q", banners[0].Attr(dom.DataAttrBannerID))
	}

	// The first banner's timers still fire against the detached element.
	f.clock.Advance(3800 * time.Millisecond)
	if len(f.banners()) != 1 {
		t.Fatal("the first banner's removal must not touch the second")
	}
	f.clock.Advance(1500 * time.Millisecond)
	if len(f.banners()) != 0 {
		t.Fatal("second banner should be removed after its own lifetime")
	}
}

func TestSubmitAlwaysRestoresButton(t *testing.T) {
	outcomes := []error{nil, errors.New("boom")}
	for _, outcome := range outcomes {
		f := setup(t, page, senderFunc(func(_ map[string]string, done func(error)) { done(outcome) }))
		f.doc.Submit(f.doc.ByID(dom.IDContactForm))
		if f.button().Disabled() || f.button().Text() != "Send Message" {
			t.Fatalf("outcome %v: button not restored", outcome)
		}
	}
}

func TestBusyButtonIgnoresClicks(t *testing.T) {
	f := setup(t, page, nil)
	f.fillAll()

	f.doc.Click(f.button())
	f.clock.Advance(500 * time.Millisecond)
	f.doc.Click(f.button())
	f.clock.Advance(2 * time.Second)

	if f.ctrl.Sends() != 1 {
		t.Fatalf("expected one send, got %d", f.ctrl.Sends())
	}
	if f.button().Disabled() || f.button().Text() != "Send Message" {
		t.Fatalf("button should be restored, got disabled=%v text=%q", f.button().Disabled(), f.button().Text())
	}
}

func TestInitSkipsWithoutForm(t *testing.T) {
	doc, err := htmldom.ParseString(`<html><body></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if New(doc, timing.NewManual(), Options{Timings: config.Default().Timings}).Init() {
		t.Fatal("init should report false without a form")
	}
}
