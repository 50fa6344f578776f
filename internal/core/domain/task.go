package domain

import (
	"sort"
	"time"
)

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// WIPLimit is the maximum number of IN_PROGRESS tasks a project may hold.
const WIPLimit = 7

// Valid reports whether s is one of the fixed board statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a card on a project board.
type Task struct {
	ID                  string     `json:"id" bson:"_id"`
	ProjectID           string     `json:"project_id" bson:"project_id"`
	Title               string     `json:"title" bson:"title"`
	Description         string     `json:"description" bson:"description"`
	Tags                string     `json:"tags" bson:"tags"`
	Deadline            *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status              TaskStatus `json:"status" bson:"status"`
	AssigneeID          string     `json:"assignee_id" bson:"assignee_id"`
	AssigneeDisplayName string     `json:"assignee_display_name" bson:"assignee_display_name"`
	Position            int        `json:"position" bson:"position"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at"`
}

// SortBucket orders the tasks of one (project, status) bucket by position.
// Equal positions fall back to ascending id, which is creation order for
// UUIDv7 ids.
func SortBucket(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// SortBoard orders a whole project's tasks by (status, position, id).
func SortBoard(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Status != tasks[j].Status {
			return tasks[i].Status < tasks[j].Status
		}
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].ID < tasks[j].ID
	})
}
