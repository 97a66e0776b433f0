package models

// Task represents a todo item owned by exactly one user.
// OwnerUsername is immutable after creation. SharedWith lists usernames
// granted read/complete visibility; the owner keeps exclusive
// edit/delete/share rights. Shares live in the `task_shares` table and
// repeated grants append repeated entries.
type Task struct {
	ID            int64    `db:"id" json:"id"`
	Title         string   `db:"title" json:"title"`
	Completed     bool     `db:"completed" json:"completed"`
	OwnerUsername string   `db:"owner_username" json:"owner_username"`
	SharedWith    []string `db:"-" json:"shared_with"`
	CreatedAt     string   `db:"created_at" json:"created_at"`
}
