package onboarding

import (
	"math"
	"sort"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type Plan struct {
	ID common.UUID `json:"id"`
	// ApplicationID optionally links the plan to a hired application.
	ApplicationID *common.UUID `json:"application_id,omitempty"`
	CandidateName string       `json:"candidate_name"`
	StartDate     time.Time    `json:"start_date"`
	Tasks         []Task       `json:"tasks,omitempty"`
}

type Task struct {
	ID         common.UUID `json:"id"`
	PlanID     common.UUID `json:"plan_id"`
	Name       string      `json:"name"`
	AssignedTo string      `json:"assigned_to,omitempty"`
	DueDate    *time.Time  `json:"due_date,omitempty"`
	// CompletedOn is non-nil exactly when IsCompleted is true.
	IsCompleted bool       `json:"is_completed"`
	CompletedOn *time.Time `json:"completed_on,omitempty"`
}

// Progress returns the completion percentage of a task set, 0 when empty.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// SortTasks orders tasks by due date ascending with undated tasks last,
// then by name.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.Name < b.Name
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case a.DueDate.Equal(*b.DueDate):
			return a.Name < b.Name
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
}
