package usecase

import "github.com/SumanthSV/AI-Todo-summarizer/model"

// ComputeStats aggregates counters over a todo list. HighPriority only
// counts todos that are still open.
func ComputeStats(todos []*model.Todo) model.TodoStats {
	stats := model.TodoStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
			continue
		}
		if todo.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}
