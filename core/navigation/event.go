package navigation

// Node is an element in a tree that can be walked towards the root.
type Node interface {
	ParentNode() Node
}

// Anchor is a node that links somewhere.
type Anchor interface {
	Node
	Link() (href, target string)
}

// Element is a plain node.
type Element struct {
	Tag    string
	Parent Node
}

func (e *Element) ParentNode() Node {
	if e == nil {
		return nil
	}
	return e.Parent
}

// AnchorElement is an <a> node.
type AnchorElement struct {
	Href   string
	Target string
	Parent Node
}

func (a *AnchorElement) ParentNode() Node {
	if a == nil {
		return nil
	}
	return a.Parent
}

func (a *AnchorElement) Link() (string, string) {
	return a.Href, a.Target
}

// ClickEvent is a pointer click delivered to the controller.
type ClickEvent struct {
	Target Node
	// Button is 0 for the primary button.
	Button   int
	MetaKey  bool
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool

	defaultPrevented   bool
	propagationStopped bool
}

func (e *ClickEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *ClickEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *ClickEvent) StopImmediatePropagation() {
	e.propagationStopped = true
}

func (e *ClickEvent) PropagationStopped() bool {
	return e.propagationStopped
}

func (e *ClickEvent) hasModifier() bool {
	return e.MetaKey || e.CtrlKey || e.ShiftKey || e.AltKey
}

func closestAnchor(n Node) Anchor {
	for n != nil {
		if a, ok := n.(Anchor); ok {
			return a
		}
		n = n.ParentNode()
	}
	return nil
}
