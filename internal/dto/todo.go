package dto

import "time"

type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=500"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// UpdateTodoRequest carries a partial update. Pointer fields distinguish
// "omitted" from "set to zero value".
type UpdateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=500"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Completed   *bool   `json:"completed"`
}

type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}
