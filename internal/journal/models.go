package journal

import "time"

type Op string

const (
	OpPush Op = "push"
	OpPop  Op = "pop"
)

type Event struct {
	ID        int64     `json:"id"`
	Op        Op        `json:"op"`
	Stack     string    `json:"stack"`
	Vars      string    `json:"vars"`
	CreatedAt time.Time `json:"created_at"`
}
