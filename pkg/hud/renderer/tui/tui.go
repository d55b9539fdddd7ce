// Package tui is a terminal renderer for debugging the overlay without a
// display. It prints the same state the graphical overlay draws, once per
// poll tick, with ANSI colors standing in for the theme.
package tui

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"encounterhud/pkg/engine/terminal"
	"encounterhud/pkg/engine/textwrap"
	"encounterhud/pkg/hud/frame"
	"encounterhud/pkg/hud/session"
	"encounterhud/pkg/hud/state"
)

const barWidth = 30

// TUIRenderer prints overlay frames to the terminal.
type TUIRenderer struct {
	session *session.Session

	colorName   color.Style
	colorActive color.Style
	colorHPGood color.Style
	colorHPBack color.Style
	colorStatus color.Style
	colorSubtle color.Style
	colorDialog color.Style
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the color styles.
func (t *TUIRenderer) Init(s *session.Session) error {
	t.session = s

	t.colorName = color.Style{color.FgWhite, color.OpBold}
	t.colorActive = color.Style{color.FgYellow, color.OpBold}
	t.colorHPGood = color.Style{color.FgGreen}
	t.colorHPBack = color.Style{color.FgRed}
	t.colorStatus = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorDialog = color.Style{color.FgCyan}

	return nil
}

// Run polls and reprints until interrupted.
func (t *TUIRenderer) Run() error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(state.MinPollInterval)
	defer ticker.Stop()

	t.printFrame()
	for {
		select {
		case <-interrupt:
			return nil
		case <-ticker.C:
			if res := t.session.Poll(time.Now()); res.Reloaded {
				t.printFrame()
			}
		}
	}
}

// Close releases nothing; the terminal is left as the last frame printed it.
func (t *TUIRenderer) Close() error { return nil }

func (t *TUIRenderer) printFrame() {
	if terminal.IsInteractive() {
		fmt.Print("\033[2J\033[H")
	}

	snap := t.session.Snapshot()
	if snap.Config.Mode == state.ModeCombat {
		t.printCombat(snap)
	} else {
		t.printDialog(snap)
	}
}

func (t *TUIRenderer) printCombat(snap state.Snapshot) {
	enc := snap.Roster
	if len(enc.Combatants) == 0 {
		fmt.Println(t.colorSubtle.Sprint(gotext.Get("(no combatants)")))
		return
	}

	if a := enc.Active(); a != nil {
		fmt.Println(t.colorActive.Sprint(gotext.Get("Round %d. Turn %d/%d: %s",
			enc.Round, enc.ActiveIndex+1, len(enc.Combatants), a.Name)))
	} else {
		fmt.Println(t.colorActive.Sprint(gotext.Get("Round %d", enc.Round)))
	}
	fmt.Println()

	t.printRoster(snap)
}

func (t *TUIRenderer) printRoster(snap state.Snapshot) {
	for i, c := range snap.Roster.Combatants {
		name := t.colorName.Sprint(c.Name)
		if i == snap.Roster.ActiveIndex {
			name = t.colorActive.Sprint("> " + c.Name)
		}
		fmt.Println(name)

		if c.Side != state.SideEnemy {
			fmt.Printf("  %s %d/%d\n", t.hpBar(c.HPFraction()), c.HP, c.HPMax)
		} else {
			fmt.Printf("  %s\n", gotext.Get("Status: %s", frame.ConditionWord(c)))
		}
		if len(c.Statuses) > 0 {
			fmt.Printf("  %s\n", t.colorStatus.Sprint(strings.Join(c.Statuses, " ")))
		}
		fmt.Println()
	}
}

func (t *TUIRenderer) hpBar(fill float64) string {
	filled := int(float64(barWidth) * fill)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return t.colorHPGood.Sprint(strings.Repeat("█", filled)) +
		t.colorHPBack.Sprint(strings.Repeat("░", barWidth-filled))
}

func (t *TUIRenderer) printDialog(snap state.Snapshot) {
	cur := snap.Dialog.Current()
	if cur == nil {
		return
	}

	width := terminal.GetWidth() - 4
	if width < 20 {
		width = 20
	}

	rule := t.colorSubtle.Sprint(strings.Repeat("─", width+4))
	fmt.Println(rule)
	speaker := cur.Speaker
	if speaker == "" {
		speaker = gotext.Get("Narrator")
	}
	fmt.Println("  " + t.colorActive.Sprint(speaker))
	for _, line := range textwrap.Wrap(cur.Text, float64(width), textwrap.Runes) {
		fmt.Println("  " + t.colorDialog.Sprint(line))
	}
	fmt.Println(rule)
	fmt.Println(t.colorSubtle.Sprint(fmt.Sprintf("%d/%d", snap.Dialog.CurrentIndex+1, len(snap.Dialog.Blocks))))
}
