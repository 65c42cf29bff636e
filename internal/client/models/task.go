// Package models holds the client-side view of the API payloads.
package models

// Task mirrors the server's task JSON.
type Task struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// User mirrors the public part of an account.
type User struct {
	ID       string `json:"_id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}
