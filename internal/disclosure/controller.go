package disclosure

// RegionFunc returns the current bounds of a popup, or nil when the popup
// has not been laid out yet.
type RegionFunc func() Region

// Controller tracks whether one popup is open and closes it when the pointer
// is pressed outside the popup's region.
//
// The document listener exists only while the popup is open: Open attaches
// it, and Close and Release detach it. A page with many controllers holds at
// most one listener per open popup.
type Controller struct {
	doc      *Document
	region   RegionFunc
	open     bool
	attached bool
	handle   Handle
	onClose  func()
}

// NewController creates a closed controller bound to doc. region is consulted
// on every press while open.
func NewController(doc *Document, region RegionFunc) *Controller {
	return &Controller{doc: doc, region: region}
}

// OnClose registers fn to run whenever an open popup closes.
func (c *Controller) OnClose(fn func()) {
	c.onClose = fn
}

// IsOpen reports whether the popup is open.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Toggle flips the open state.
func (c *Controller) Toggle() {
	if c.open {
		c.Close()
		return
	}
	c.Open()
}

// Open opens the popup and starts listening for outside presses.
func (c *Controller) Open() {
	if c.open {
		return
	}
	c.open = true
	c.attach()
}

// Close closes the popup and stops listening. Closing a closed popup does
// nothing.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.detach()
	if c.onClose != nil {
		c.onClose()
	}
}

// Release tears the controller down. After Release no listener belonging to
// this controller remains on the document, whatever state it was in.
func (c *Controller) Release() {
	c.Close()
	c.detach()
}

// Listening reports whether a document listener is currently attached.
func (c *Controller) Listening() bool {
	return c.attached
}

func (c *Controller) attach() {
	if c.attached || c.doc == nil {
		return
	}
	c.handle = c.doc.AddListener(c.handlePress)
	c.attached = true
}

func (c *Controller) detach() {
	if !c.attached {
		return
	}
	c.doc.RemoveListener(c.handle)
	c.attached = false
}

func (c *Controller) handlePress(ev PointerEvent) {
	if !c.open || c.region == nil {
		return
	}
	r := c.region()
	if r == nil {
		return
	}
	if !r.Contains(ev.X, ev.Y) {
		c.Close()
	}
}
