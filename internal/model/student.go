package model

import "time"

// Student is a person record owned by the estudiantes service.
type Student struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateStudentRequest is the payload for creating a student.
type CreateStudentRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Surname   string     `json:"surname" binding:"required,min=1,max=100"`
	Email     string     `json:"email" binding:"required,email,max=255"`
	Phone     string     `json:"phone" binding:"omitempty,max=30"`
	BirthDate *time.Time `json:"birth_date"`
	CreatedAt *time.Time `json:"created_at"`
}

// UpdateStudentRequest is the payload for updating a student.
type UpdateStudentRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Surname   string     `json:"surname" binding:"required,min=1,max=100"`
	Email     string     `json:"email" binding:"required,email,max=255"`
	Phone     string     `json:"phone" binding:"omitempty,max=30"`
	BirthDate *time.Time `json:"birth_date"`
}
