package tui

import (
	"errors"
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/model"

	"github.com/charmbracelet/huh"
)

// formBindings lives on the heap so huh's Value pointers stay valid while
// the Bubble Tea model is copied around.
type formBindings struct {
	title       string
	description string
	priority    string
	category    string
}

func newFormBindings() *formBindings {
	return &formBindings{priority: string(model.PriorityMedium)}
}

func (fb *formBindings) reset() {
	*fb = *newFormBindings()
}

func (fb *formBindings) request() dto.CreateTodoRequest {
	return dto.CreateTodoRequest{
		Title:       strings.TrimSpace(fb.title),
		Description: strings.TrimSpace(fb.description),
		Priority:    model.Priority(fb.priority),
		Category:    strings.TrimSpace(fb.category),
	}
}

// buildTodoForm creates a fresh form bound to fb. Whatever fb holds is
// shown as the initial field values.
func buildTodoForm(fb *formBindings, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&fb.description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(model.PriorityLow)),
					huh.NewOption("Medium", string(model.PriorityMedium)),
					huh.NewOption("High", string(model.PriorityHigh)),
				).
				Value(&fb.priority),
			huh.NewInput().
				Title("Category").
				Placeholder("Optional, e.g. work").
				Value(&fb.category),
		),
	).WithWidth(width).WithShowHelp(true)
}
