// Package view models the slice of the rendering layer the save logic
// touches: save controls with their bound data attributes, the cards and
// lists they sit in, and the render-completion signal the synchronizer and
// deep-link resolver wait on.
//
// The model mirrors the page's event-driven threading: all mutation happens
// on the UI goroutine, so the types carry no locks. The one cross-goroutine
// surface is [List.Rendered], a channel closed exactly once when the list
// has finished rendering.
package view

// Attribute names bound onto every save control by the rendering layer.
// These are a bit-exact contract with the templates: `item-type` carries the
// kind, `item-id` the encoded key, and the rest are kind-specific display
// fields.
const (
	AttrItemType    = "item-type"
	AttrItemID      = "item-id"
	AttrName        = "name"
	AttrDescription = "description"
	AttrImage       = "image"
	AttrHref        = "href"
	AttrCompany     = "company"
	AttrLocation    = "location"
)

// Navigator is where the controller sends an unauthenticated user.
type Navigator interface {
	Redirect(path string)
}

// Event is a UI click event. Save controls are nested inside whole-card
// links, so the controller must both suppress the default navigation and
// stop the click from reaching the enclosing link.
type Event struct {
	defaultPrevented   bool
	propagationStopped bool
}

func (e *Event) PreventDefault()  { e.defaultPrevented = true }
func (e *Event) StopPropagation() { e.propagationStopped = true }

func (e *Event) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Control is a rendered save button. Its attributes are set once by the
// renderer; the saved flag is purely visual and is only ever derived from
// the store, never the other way around.
type Control struct {
	attrs map[string]string
	saved bool
	card  *Card
}

// NewControl builds a control with the given bound attributes.
func NewControl(attrs map[string]string) *Control {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return &Control{attrs: cp}
}

// Attr returns the bound attribute value, or "" when absent.
func (c *Control) Attr(name string) string { return c.attrs[name] }

func (c *Control) Saved() bool         { return c.saved }
func (c *Control) SetSaved(saved bool) { c.saved = saved }

// Card returns the enclosing card, or nil for a detached control.
func (c *Control) Card() *Card { return c.card }

// Card is the clickable card a control is nested in.
type Card struct {
	control *Control
	list    *List
	active  bool
}

// NewCard wraps a control in a card and links the two.
func NewCard(control *Control) *Card {
	card := &Card{control: control}
	control.card = card
	return card
}

func (c *Card) Control() *Control { return c.control }

// Activate marks the card as the focused entry, used when a deep link
// targets it.
func (c *Card) Activate()    { c.active = true }
func (c *Card) Active() bool { return c.active }

// Remove detaches the card from its list. Used on the library view when an
// item is unsaved and no longer belongs there.
func (c *Card) Remove() {
	if c.list != nil {
		c.list.remove(c)
		c.list = nil
	}
}

// List is the rendered sequence of cards for one kind on the current page.
type List struct {
	cards    []*Card
	rendered chan struct{}
	done     bool

	emptyMessage string
	errorMessage string
}

func NewList() *List {
	return &List{rendered: make(chan struct{})}
}

// Append adds a card to the list.
func (l *List) Append(card *Card) {
	card.list = l
	l.cards = append(l.cards, card)
}

// Cards returns the cards currently in the list, in render order.
func (l *List) Cards() []*Card {
	out := make([]*Card, len(l.cards))
	copy(out, l.cards)
	return out
}

// Controls returns the save controls of all cards in the list.
func (l *List) Controls() []*Control {
	out := make([]*Control, 0, len(l.cards))
	for _, card := range l.cards {
		out = append(out, card.control)
	}
	return out
}

// MarkRendered signals that the list has finished rendering. Idempotent.
func (l *List) MarkRendered() {
	if !l.done {
		l.done = true
		close(l.rendered)
	}
}

// Rendered is closed once the list has finished rendering. Consumers that
// must only run over a complete list (the synchronizer, the deep-link
// resolver) wait on it instead of relying on call order.
func (l *List) Rendered() <-chan struct{} { return l.rendered }

// ShowEmpty replaces the list body with an empty-state message.
func (l *List) ShowEmpty(msg string) { l.emptyMessage = msg }

// ShowError replaces the list body with a user-visible error message.
func (l *List) ShowError(msg string) { l.errorMessage = msg }

func (l *List) EmptyMessage() string { return l.emptyMessage }
func (l *List) ErrorMessage() string { return l.errorMessage }

func (l *List) remove(card *Card) {
	for i, c := range l.cards {
		if c == card {
			l.cards = append(l.cards[:i], l.cards[i+1:]...)
			return
		}
	}
}

// Page holds the per-kind lists of the current document plus the flag that
// distinguishes the "my library" view from the main listings.
type Page struct {
	lists   map[string]*List
	library bool
}

// NewPage builds a page with one list per named kind.
func NewPage(library bool, kinds ...string) *Page {
	p := &Page{lists: make(map[string]*List), library: library}
	for _, k := range kinds {
		p.lists[k] = NewList()
	}
	return p
}

// IsLibrary reports whether this page is the "my saved items" view.
func (p *Page) IsLibrary() bool { return p.library }

// List returns the list for a kind, or nil when the page does not render
// that kind at all.
func (p *Page) List(kind string) *List { return p.lists[kind] }
