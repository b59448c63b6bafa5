// Package tui provides the interactive terminal browser for stream formats.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/vidq-cli/vidq/stream"
	"github.com/vidq-cli/vidq/style"
)

// keyMap defines the supplementary key bindings of the browser.
type keyMap struct {
	confirm key.Binding
	quit    key.Binding
}

var keys = keyMap{
	confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select stream"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// bubble is the Bubble Tea model: a filterable list of stream variants.
type bubble struct {
	list     list.Model
	selected *stream.Stream
}

func newBubble(title string, streams []*stream.Stream) *bubble {
	items := lo.Map(streams, func(s *stream.Stream, _ int) list.Item {
		return &listItem{stream: s}
	})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(style.AccentColor).
		BorderForeground(style.ActiveBorderColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(style.SecondaryColor).
		BorderForeground(style.ActiveBorderColor)

	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.confirm}
	}

	return &bubble{list: l}
}

func (b *bubble) Init() tea.Cmd {
	return nil
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		// Do not intercept keys while the fuzzy filter input is active.
		if b.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.confirm):
			if item, ok := b.list.SelectedItem().(*listItem); ok {
				b.selected = item.stream
			}
			return b, tea.Quit

		case key.Matches(msg, keys.quit):
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *bubble) View() string {
	return b.list.View()
}
