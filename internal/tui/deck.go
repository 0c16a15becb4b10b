package tui

import "strings"

// deckModel is the card strip at the bottom of the table: one fixed deck,
// a cursor, and the player's current pick.
type deckModel struct {
	cards    []string
	cursor   int
	selected string // "" when nothing picked
}

func newDeckModel(cards []string) deckModel {
	return deckModel{cards: cards}
}

func (d *deckModel) moveLeft() {
	if d.cursor > 0 {
		d.cursor--
	}
}

func (d *deckModel) moveRight() {
	if d.cursor < len(d.cards)-1 {
		d.cursor++
	}
}

// current returns the card under the cursor.
func (d *deckModel) current() string {
	if len(d.cards) == 0 {
		return ""
	}
	return d.cards[d.cursor]
}

func (d deckModel) View() string {
	var sb strings.Builder
	for i, card := range d.cards {
		if i > 0 {
			sb.WriteByte(' ')
		}
		cell := " " + card + " "
		switch {
		case card == d.selected && i == d.cursor:
			sb.WriteString(cardSelectedStyle.Render("[" + cell + "]"))
		case card == d.selected:
			sb.WriteString(cardSelectedStyle.Render(cell))
		case i == d.cursor:
			sb.WriteString(cardCursorStyle.Render("[" + cell + "]"))
		default:
			sb.WriteString(cardStyle.Render(cell))
		}
	}
	hint := "←/→ pick a card, enter to play it, c to take it back"
	return sb.String() + "\n" + dimStyle.Render(hint)
}
