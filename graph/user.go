package graph

import "time"

// User is a single vertex in the social graph.
type User struct {
	UserID    string
	Username  string
	Email     string
	CreatedAt time.Time
	IsActive  bool
}
