package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokerize/pokerize/internal/identity"
	"github.com/pokerize/pokerize/pkg/domain"
	"github.com/pokerize/pokerize/pkg/realtime"
	"github.com/pokerize/pokerize/pkg/store"
)

type view int

const (
	viewConnecting view = iota
	viewFailed
	viewTable
)

// joinedMsg carries the result of the join protocol.
type joinedMsg struct {
	sess *realtime.Session
	err  error
}

// roomChangedMsg signals that the session's room model changed.
type roomChangedMsg struct{}

// noticeMsg shows a transient status-line message.
type noticeMsg struct {
	text string
}

type clearNoticeMsg struct{}

// Config wires the app to its collaborators.
type Config struct {
	RoomID string
	Store  store.Store
	Cache  *identity.Cache
	// Deck defaults to domain.DefaultDeck.
	Deck []string
}

// App is the root Bubbletea model: a connecting screen, a blocking failure
// screen with retry / new-room actions, and the table itself.
type App struct {
	cfg    Config
	roomID string

	view    view
	sess    *realtime.Session
	joinErr string

	deck     deckModel
	name     nameModel
	nameOpen bool

	players []domain.PlayerPresence
	state   domain.RoomState
	history []domain.Round

	notice string
	width  int
	height int
}

// NewApp creates the TUI application for one room.
func NewApp(cfg Config) App {
	if len(cfg.Deck) == 0 {
		cfg.Deck = domain.DefaultDeck
	}
	return App{
		cfg:    cfg,
		roomID: cfg.RoomID,
		deck:   newDeckModel(cfg.Deck),
		width:  80,
		height: 24,
	}
}

func (a App) Init() tea.Cmd {
	return a.joinCmd()
}

func (a App) joinCmd() tea.Cmd {
	cfg := a.cfg
	roomID := a.roomID
	return func() tea.Msg {
		playerID, err := cfg.Cache.DeviceID()
		if err != nil {
			return joinedMsg{err: err}
		}
		sess, err := realtime.Join(context.Background(), realtime.Config{
			RoomID:   roomID,
			PlayerID: playerID,
			Store:    cfg.Store,
		})
		return joinedMsg{sess: sess, err: err}
	}
}

// watchCmd blocks on the session's update signal and wakes the view.
func watchCmd(sess *realtime.Session) tea.Cmd {
	return func() tea.Msg {
		<-sess.Updates()
		return roomChangedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case joinedMsg:
		if msg.err != nil {
			a.view = viewFailed
			a.joinErr = msg.err.Error()
			return a, nil
		}
		a.sess = msg.sess
		a.view = viewTable
		a.refresh()

		cmds := []tea.Cmd{watchCmd(a.sess)}
		if cached := a.cfg.Cache.Name(); cached != "" {
			cmds = append(cmds, a.setNameCmd(cached))
		} else {
			a.nameOpen = true
		}
		return a, tea.Batch(cmds...)

	case roomChangedMsg:
		a.refresh()
		return a, watchCmd(a.sess)

	case noticeMsg:
		a.notice = msg.text
		return a, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearNoticeMsg{} })

	case clearNoticeMsg:
		a.notice = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg.String())
	}
	return a, nil
}

// refresh re-snapshots the session's room model into view state.
func (a *App) refresh() {
	a.players = a.sess.Players()
	a.state = a.sess.State()
	a.history = a.sess.History()
	a.deck.selected = a.sess.Self().Selection()
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return a, a.quitCmd()
	}

	switch a.view {
	case viewConnecting:
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil

	case viewFailed:
		switch key {
		case "r":
			a.view = viewConnecting
			return a, a.joinCmd()
		case "n":
			a.roomID = identity.NewToken(identity.TokenLen)
			a.view = viewConnecting
			return a, a.joinCmd()
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.nameOpen {
		return a.handleNameKey(key)
	}

	switch key {
	case "q":
		return a, a.quitCmd()
	case "i":
		return a, a.inviteCmd()
	case "e":
		a.name.input = a.editableName()
		a.nameOpen = true
	case "left", "h":
		a.deck.moveLeft()
	case "right", "l":
		a.deck.moveRight()
	case "enter", " ":
		card := a.deck.current()
		a.deck.selected = card
		return a, a.selectCmd(&card)
	case "c":
		a.deck.selected = ""
		return a, a.selectCmd(nil)
	case "v":
		if !a.state.Revealed {
			return a, a.revealCmd()
		}
	case "n":
		if a.state.Revealed {
			return a, a.resetCmd()
		}
	}
	return a, nil
}

func (a App) handleNameKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		name := strings.TrimSpace(a.name.value())
		if name == "" {
			return a, nil
		}
		a.nameOpen = false
		return a, a.setNameCmd(name)
	case "esc":
		// Only dismissable once some name exists.
		if a.hasName() {
			a.nameOpen = false
		}
		return a, nil
	default:
		a.name.handleKey(key)
		return a, nil
	}
}

func (a App) hasName() bool {
	return a.sess != nil && a.sess.Self().Name != domain.DefaultName
}

// editableName pre-fills the prompt with the current name, except the
// placeholder guest name.
func (a App) editableName() string {
	if !a.hasName() {
		return ""
	}
	return a.sess.Self().Name
}

func (a App) quitCmd() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		if sess != nil {
			sess.Close()
		}
		return tea.QuitMsg{}
	}
}

func (a App) inviteCmd() tea.Cmd {
	roomID := a.roomID
	return func() tea.Msg {
		if err := clipboard.WriteAll("pokerize " + roomID); err != nil {
			return noticeMsg{text: "couldn't reach the clipboard"}
		}
		return noticeMsg{text: "invite copied — friends run: pokerize " + roomID}
	}
}

func (a App) setNameCmd(name string) tea.Cmd {
	sess, cache := a.sess, a.cfg.Cache
	return func() tea.Msg {
		// Session logs write failures; a stale remote name is harmless.
		sess.SetName(context.Background(), name)
		cache.SetName(name)
		return nil
	}
}

func (a App) selectCmd(card *string) tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		sess.SetSelected(context.Background(), card)
		return nil
	}
}

func (a App) revealCmd() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		if err := sess.Reveal(context.Background()); err != nil {
			return noticeMsg{text: "Failed to reveal cards. Please try again."}
		}
		return nil
	}
}

func (a App) resetCmd() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		if err := sess.ResetRound(context.Background()); err != nil {
			return noticeMsg{text: "Failed to reset the round. Please try again."}
		}
		return nil
	}
}

func (a App) View() string {
	switch a.view {
	case viewConnecting:
		body := "connecting to room " + brandStyle.Render(a.roomID) + "…\n\n" +
			dimStyle.Render("setting up your pokerize session")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)

	case viewFailed:
		body := errStyle.Render("connection failed") + "\n\n" +
			"Unable to connect to room " + a.roomID + ".\n" +
			dimStyle.Render(a.joinErr) + "\n\n" +
			"[r] try again   [n] new room   [q] quit"
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
	}

	top := renderTopBar(a.roomID, a.displayName(), len(a.players), a.width)

	status := dimStyle.Render("pick a card, then reveal when everyone is in")
	if a.notice != "" {
		status = noticeStyle.Render(a.notice)
	}

	deckView := a.deck.View()
	bodyHeight := a.height - 2 - lipgloss.Height(deckView)
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	var body string
	if a.nameOpen {
		body = lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, a.name.View())
	} else {
		tableWidth := a.width
		var side string
		if a.width >= 100 {
			side = renderHistory(a.history)
			tableWidth = a.width - lipgloss.Width(side) - 1
		}
		body = renderTable(a.players, a.state.Revealed, tableWidth, bodyHeight)
		if side != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " "+side)
		}
	}

	return top + "\n" + status + "\n" + body + "\n" + deckView
}

func (a App) displayName() string {
	if a.sess == nil {
		return domain.DefaultName
	}
	return a.sess.Self().Name
}
