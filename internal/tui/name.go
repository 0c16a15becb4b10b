package tui

// nameModel is the inline name prompt shown until the player has a display
// name, and again when they edit it.
type nameModel struct {
	input string
}

func (n *nameModel) handleKey(key string) {
	n.input = editRune(n.input, key)
}

// value returns the trimmed-for-use input; callers refuse empty names.
func (n nameModel) value() string {
	return n.input
}

func (n nameModel) View() string {
	field := n.input + "█"
	body := panelTitleStyle.Render("What should we call you?") + "\n\n" +
		field + "\n\n" +
		dimStyle.Render("enter to save · esc to keep current name")
	return modalStyle.Render(body)
}
