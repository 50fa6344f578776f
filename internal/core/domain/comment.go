package domain

import "time"

// Comment is a note on a project's discussion thread. Pinned comments are
// listed apart from the rest.
type Comment struct {
	ID             string    `json:"id" bson:"_id"`
	ProjectID      string    `json:"project_id" bson:"project_id"`
	AuthorID       string    `json:"author_id" bson:"author_id"`
	AuthorUsername string    `json:"author_username" bson:"author_username"`
	Content        string    `json:"content" bson:"content"`
	Pinned         bool      `json:"pinned" bson:"pinned"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// CommentThread is a project's comments split by pin state, each side
// newest first.
type CommentThread struct {
	Pinned   []*Comment `json:"pinned"`
	Unpinned []*Comment `json:"unpinned"`
}

// SplitPinned partitions comments, keeping their order.
func SplitPinned(comments []*Comment) CommentThread {
	thread := CommentThread{Pinned: []*Comment{}, Unpinned: []*Comment{}}
	for _, c := range comments {
		if c.Pinned {
			thread.Pinned = append(thread.Pinned, c)
		} else {
			thread.Unpinned = append(thread.Unpinned, c)
		}
	}
	return thread
}
