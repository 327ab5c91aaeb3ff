package tui

import (
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/auth"
	"github.com/colorcarnival/carnival/grid"
	"github.com/colorcarnival/carnival/internal/ui"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/pressure"
	"github.com/colorcarnival/carnival/route"
	"github.com/colorcarnival/carnival/session"
	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/util"
)

// statefulBubble holds every screen of the interface and the feature components behind them.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	// pending counts commands still waiting for the color service.
	pending int

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	helpC      help.Model
	palettesC  list.Model
	colorsC    list.Model
	nameC      textinput.Model
	pathC      textinput.Model
	targetC    textinput.Model
	actualC    textinput.Model
	usernameC  textinput.Model
	passwordC  textinput.Model
	focusIndex int

	// features
	palettes   *palette.Synchronizer
	analyzer   *grid.Analyzer
	calculator *pressure.Calculator
	authFlow   *auth.Flow

	lastError     error
	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state for back navigation.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}
	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}
	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// openPage switches to the first state of p and forgets the navigation history.
// Only one feature page is active at a time.
func (b *statefulBubble) openPage(p route.Page) {
	b.statesHistory.Clear()
	b.setState(pageState(p))
	b.focusInputs()
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	// header and alert banner
	listHeight := (height - yy - 2) / 2

	b.palettesC.SetSize(listWidth, listHeight)
	b.palettesC.Help.Width = listWidth
	b.colorsC.SetSize(listWidth, listHeight)
	b.colorsC.Help.Width = listWidth

	for _, input := range []*textinput.Model{&b.nameC, &b.pathC, &b.targetC, &b.actualC, &b.usernameC, &b.passwordC} {
		input.Width = listWidth - len(input.Prompt)
	}

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() {
	b.pending++
}

func (b *statefulBubble) stopLoading() {
	b.pending = util.Max(b.pending-1, 0)
}

func (b *statefulBubble) loading() bool {
	return b.pending > 0
}

// focusInputs focuses the text inputs of the current state and blurs the rest.
func (b *statefulBubble) focusInputs() {
	inputs := map[state][]*textinput.Model{
		nameInputState: {&b.nameC},
		gridState:      {&b.pathC},
		pressureState:  {&b.targetC, &b.actualC},
		authState:      {&b.usernameC, &b.passwordC},
	}

	for _, group := range inputs {
		for _, input := range group {
			input.Blur()
		}
	}

	group := inputs[b.state]
	if len(group) == 0 {
		return
	}
	b.focusIndex %= len(group)
	group[b.focusIndex].Focus()
}

// cycleFocus moves focus to the next input of the current state.
func (b *statefulBubble) cycleFocus(delta int) {
	count := 2
	if b.state == nameInputState || b.state == gridState {
		count = 1
	}
	b.focusIndex = (b.focusIndex + delta + count) % count
	b.focusInputs()
}

// preconfirmed approves deletes; the confirm screen has already asked.
var preconfirmed = palette.ConfirmFunc(func(string) (bool, error) { return true, nil })

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options, caller network.Caller, box *alert.Box, sess *session.Session) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		palettes:   palette.New(caller, box, preconfirmed),
		analyzer:   grid.New(caller, box),
		calculator: pressure.New(caller, box),
		authFlow:   auth.New(caller, box, sess),

		notifier: ui.NewModel(box, sess),
		options:  options,
	}

	makeList := func(title string, background lipgloss.Color, singular, plural string) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(background).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)
		listC.SetShowHelp(false)
		listC.SetStatusBarItemName(singular, plural)
		return listC
	}

	makeInput := func(prompt, placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Prompt = prompt
		input.Placeholder = placeholder
		input.CharLimit = limit
		input.PromptStyle = lipgloss.NewStyle().Foreground(style.AccentColor)
		return input
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.palettesC = makeList("Palettes", style.Strawberry, "palette", "palettes")
	bubble.colorsC = makeList("Colors", style.Grape, "color", "colors")

	bubble.nameC = makeInput("Name: ", "Sunset", 64)
	bubble.pathC = makeInput("Image: ", "path/to/image.png", 4096)
	bubble.targetC = makeInput("Target: ", "#FF0000", 16)
	bubble.actualC = makeInput("Actual: ", "#FF0000", 16)
	bubble.usernameC = makeInput("Username: ", "", 64)
	bubble.passwordC = makeInput("Password: ", "", 128)
	bubble.passwordC.EchoMode = textinput.EchoPassword

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.openPage(options.Page)

	return &bubble
}
