package ui

// notice is a one-shot, dismissible alert. Write failures surface here
// with the failed action's name; it stays visible until dismissed and is
// never re-raised automatically.
type notice struct {
	text    string
	danger  bool
	visible bool
}

func (n *notice) showError(action, reason string) {
	n.text = action + " failed: " + reason
	n.danger = true
	n.visible = true
}

func (n *notice) showInfo(text string) {
	n.text = text
	n.danger = false
	n.visible = true
}

func (n *notice) dismiss() {
	n.text = ""
	n.danger = false
	n.visible = false
}
