package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/npc-engine/internal/storage"
	"github.com/jwebster45206/npc-engine/pkg/engine"
	"github.com/jwebster45206/npc-engine/pkg/state"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)

// ConsoleUI is the BubbleTea model that runs the debug viewer.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	store     *storage.RedisStorage
	sessionID uuid.UUID
	sess      *state.Session
	selector  *engine.Selector

	npcIDs   []string
	selected int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	err      error
}

type sessionRefreshedMsg struct {
	sess *state.Session
	err  error
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return nil
}

func (ui *ConsoleUI) refreshSession() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sess, err := ui.store.LoadSession(ctx, ui.sessionID)
	return sessionRefreshedMsg{sess: sess, err: err}
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width, msg.Height-4)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width
			ui.viewport.Height = msg.Height - 4
		}
		ui.viewport.SetContent(ui.renderPreview())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return ui, tea.Quit
		case "up", "k":
			if ui.selected > 0 {
				ui.selected--
				ui.viewport.SetContent(ui.renderPreview())
			}
		case "down", "j":
			if ui.selected < len(ui.npcIDs)-1 {
				ui.selected++
				ui.viewport.SetContent(ui.renderPreview())
			}
		case "r":
			return ui, ui.refreshSession
		}

	case sessionRefreshedMsg:
		if msg.err != nil {
			ui.err = msg.err
		} else if msg.sess != nil {
			ui.sess = msg.sess
			ui.err = nil
		}
		ui.viewport.SetContent(ui.renderPreview())
	}

	var cmd tea.Cmd
	ui.viewport, cmd = ui.viewport.Update(msg)
	return ui, cmd
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "loading..."
	}

	header := titleStyle.Render("npc-engine console") +
		dimStyle.Render(fmt.Sprintf("  tick %d  %s", ui.sess.Tick, state.TimeOfDayBucket(ui.sess.WorldTime)))
	footer := dimStyle.Render("↑/↓ select NPC · r refresh · q quit")
	if ui.err != nil {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(ui.err.Error())
	}
	return header + "\n\n" + ui.viewport.View() + "\n" + footer
}

// renderPreview builds the ranked-candidate view for the selected NPC.
func (ui *ConsoleUI) renderPreview() string {
	var b strings.Builder

	for i, id := range ui.npcIDs {
		if i == ui.selected {
			b.WriteString(selectedStyle.Render("> " + id))
		} else {
			b.WriteString(dimStyle.Render("  " + id))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	npcID := ui.npcIDs[ui.selected]
	npc := ui.sess.NPC(npcID)
	preview := ui.selector.ScoreAll(ui.sess, npcID, ui.sess.WorldTime, ui.sess.Tick)

	b.WriteString(fmt.Sprintf("energy %.0f · mood %s · activity %s\n",
		npc.Energy(), strings.Join(npc.MoodTags(), ","), orNone(npc.CurrentActivityID)))
	if preview.NodeID != "" {
		b.WriteString(dimStyle.Render("routine node: "+preview.NodeID) + "\n")
	}
	if preview.Frozen {
		b.WriteString(dimStyle.Render("frozen until min duration elapses") + "\n")
	}
	b.WriteString("\n")

	if len(preview.Candidates) == 0 {
		b.WriteString(dimStyle.Render("no candidates — fallback would be selected") + "\n")
	}
	for rank, c := range preview.Candidates {
		b.WriteString(fmt.Sprintf("%d. %-18s %s\n", rank+1, c.ActivityID,
			scoreStyle.Render(fmt.Sprintf("%.3f", c.Score))))
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"   base=%.2f act=%.2f cat=%.2f trait=%+.2f mood=%.2f rel=%.2f urg=%.2f inertia=%.1f",
			c.Factors.BaseWeight, c.Factors.ActivityPreference, c.Factors.CategoryPreference,
			c.Factors.TraitModifier, c.Factors.MoodCompatibility, c.Factors.RelationshipBonus,
			c.Factors.Urgency, c.Factors.Inertia)) + "\n")
	}

	width := ui.width
	if width <= 0 {
		width = 80
	}
	return wordwrap.String(b.String(), width)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
