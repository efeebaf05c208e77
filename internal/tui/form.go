package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/financeflow/internal/expense"
)

// form field indices, in focus order.
const (
	fieldTitle = iota
	fieldAmount
	fieldDate
	fieldCategory
	fieldCount
)

// form is the modal create/edit expense form. When editing is non-nil the
// form replaces that record on submit instead of creating a new one.
type form struct {
	title    textinput.Model
	amount   textinput.Model
	date     textinput.Model
	category int // index into expense.Categories()
	focus    int
	editing  *expense.Record
	errText  string
}

func newForm(editing *expense.Record, today string) *form {
	f := &form{
		title:  textinput.New(),
		amount: textinput.New(),
		date:   textinput.New(),
	}
	f.title.Placeholder = "Coffee with friends"
	f.title.CharLimit = 80
	f.amount.Placeholder = "0.00"
	f.amount.CharLimit = 16
	f.date.Placeholder = expense.DateLayout
	f.date.CharLimit = 10

	cats := expense.Categories()
	f.category = len(cats) - 1 // Other, the original's default
	f.date.SetValue(today)

	if editing != nil {
		rec := *editing
		f.editing = &rec
		f.title.SetValue(rec.Title)
		f.amount.SetValue(strconv.FormatFloat(rec.Amount, 'f', -1, 64))
		f.date.SetValue(rec.Date)
		for i, c := range cats {
			if c.Label == rec.Category {
				f.category = i
				break
			}
		}
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *form) setFocus(idx int) {
	f.focus = idx
	inputs := []*textinput.Model{&f.title, &f.amount, &f.date}
	for i, in := range inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// update routes key input to the focused field. It returns any cmd from the
// underlying textinput (cursor blink).
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	}

	if f.focus == fieldCategory {
		cats := expense.Categories()
		switch msg.String() {
		case "left", "h":
			f.category = (f.category + len(cats) - 1) % len(cats)
		case "right", "l", " ":
			f.category = (f.category + 1) % len(cats)
		}
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return cmd
}

// draft validates the form input and returns it as a store draft.
func (f *form) draft() (expense.Draft, error) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return expense.Draft{}, expense.ErrEmptyTitle
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.amount.Value()), 64)
	if err != nil || !expense.ValidAmount(amount) {
		return expense.Draft{}, expense.ErrInvalidAmount
	}
	date := strings.TrimSpace(f.date.Value())
	if _, err := time.Parse(expense.DateLayout, date); err != nil {
		return expense.Draft{}, fmt.Errorf("date must be %s", expense.DateLayout)
	}
	return expense.Draft{
		Title:    title,
		Amount:   amount,
		Category: expense.Categories()[f.category].Label,
		Date:     date,
	}, nil
}

func (f *form) view() string {
	heading := "Add New Expense"
	if f.editing != nil {
		heading = "Edit Expense"
	}

	cats := expense.Categories()
	var catParts []string
	for i, c := range cats {
		label := string(c.Label)
		if i == f.category {
			label = categoryStyle(c.Label).Bold(true).Render("[" + label + "]")
		} else {
			label = subtleStyle.Render(label)
		}
		catParts = append(catParts, label)
	}

	marker := func(idx int) string {
		if f.focus == idx {
			return "▶"
		}
		return " "
	}

	out := titleStyle.Render(heading) + "\n"
	out += fmt.Sprintf("%s Title:    %s\n", marker(fieldTitle), f.title.View())
	out += fmt.Sprintf("%s Amount:   %s\n", marker(fieldAmount), f.amount.View())
	out += fmt.Sprintf("%s Date:     %s\n", marker(fieldDate), f.date.View())
	out += fmt.Sprintf("%s Category: %s\n", marker(fieldCategory), strings.Join(catParts, " "))
	if f.errText != "" {
		out += errorStyle.Render(f.errText) + "\n"
	}
	out += subtleStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel")
	return out
}

// textCursorBlink starts the textinput cursor blink when a form opens.
func textCursorBlink() tea.Cmd {
	return textinput.Blink
}
