package usecase

import (
	"fmt"
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

const (
	// EmptyListMessage is returned instead of a summary when there is
	// nothing to summarize.
	EmptyListMessage = "You don't have any todos yet. Start by adding some tasks to get personalized insights!"

	// FallbackSummary replaces an empty model answer.
	FallbackSummary = "Unable to generate summary"
)

const promptInstructions = `Please provide:
1. A brief overview of their productivity
2. Key patterns or themes in their tasks
3. Suggestions for prioritization
4. Motivational insights
5. Areas for improvement

Keep it encouraging and actionable, around 150-200 words.`

// TodoLine renders one todo the way it appears in the prompt.
func TodoLine(todo *model.Todo) string {
	var b strings.Builder
	if todo.Completed {
		b.WriteString("✅ ")
	} else {
		b.WriteString("⏳ ")
	}
	fmt.Fprintf(&b, "%s (%s priority)", todo.Title, todo.Priority)
	if todo.Description != "" {
		b.WriteString(" - ")
		b.WriteString(todo.Description)
	}
	if todo.Category != "" {
		fmt.Fprintf(&b, " [%s]", todo.Category)
	}
	return b.String()
}

// BuildPrompt is deterministic: the same todos and stats always give the
// same text.
func BuildPrompt(todos []*model.Todo, stats model.TodoStats) string {
	lines := make([]string, 0, len(todos))
	for _, todo := range todos {
		lines = append(lines, TodoLine(todo))
	}

	var b strings.Builder
	b.WriteString("Analyze this todo list and provide a personalized summary with insights:\n\n")
	b.WriteString("Todo List:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nStats:\n")
	fmt.Fprintf(&b, "- Total todos: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Completed: %d\n", stats.Completed)
	fmt.Fprintf(&b, "- Pending: %d\n", stats.Pending)
	fmt.Fprintf(&b, "- High priority pending: %d\n\n", stats.HighPriority)
	b.WriteString(promptInstructions)
	return b.String()
}
