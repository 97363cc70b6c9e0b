package model

// CourseStudent links one course to one student. StudentID is a soft
// reference into the estudiantes service; nothing enforces that it exists.
type CourseStudent struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"student_id"`
	CourseID  int64 `json:"course_id"`
}

// CourseStudentRequest is the payload for creating or updating a relationship row.
type CourseStudentRequest struct {
	StudentID int64 `json:"student_id" binding:"required,min=1"`
	CourseID  int64 `json:"course_id" binding:"required,min=1"`
}

// StudentReference identifies a student in an enroll/unenroll request.
type StudentReference struct {
	ID int64 `json:"id" binding:"required,min=1"`
}
