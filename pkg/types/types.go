// Package types defines the public API types for the catalog service. These
// types are shared between the server handlers and the client SDK.
package types

// Book is a library catalogue entry served under /api/books.
type Book struct {
	ID              int64  `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Author          string `json:"author" yaml:"author"`
	ISBN            string `json:"isbn" yaml:"isbn"`
	PublicationYear int    `json:"publicationYear" yaml:"publicationYear"`
}

// RecordID returns the Book identity.
func (b Book) RecordID() int64 { return b.ID }

// WithRecordID returns a copy of the Book carrying id.
func (b Book) WithRecordID(id int64) Book {
	b.ID = id
	return b
}

// Student is an enrolment record served under /api/students.
type Student struct {
	StudentID int64   `json:"studentId" yaml:"studentId"`
	FirstName string  `json:"firstName" yaml:"firstName"`
	LastName  string  `json:"lastName" yaml:"lastName"`
	Email     string  `json:"email" yaml:"email"`
	Major     string  `json:"major" yaml:"major"`
	GPA       float64 `json:"gpa" yaml:"gpa"`
}

// RecordID returns the Student identity.
func (s Student) RecordID() int64 { return s.StudentID }

// WithRecordID returns a copy of the Student carrying id.
func (s Student) WithRecordID(id int64) Student {
	s.StudentID = id
	return s
}

// MenuItem is a restaurant dish served under /api/menu.
type MenuItem struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Available   bool    `json:"available" yaml:"available"`
}

// RecordID returns the MenuItem identity.
func (m MenuItem) RecordID() int64 { return m.ID }

// WithRecordID returns a copy of the MenuItem carrying id.
func (m MenuItem) WithRecordID(id int64) MenuItem {
	m.ID = id
	return m
}

// Product is a storefront item served under /api/products.
type Product struct {
	ProductID     int64   `json:"productId" yaml:"productId"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	Price         float64 `json:"price" yaml:"price"`
	Category      string  `json:"category" yaml:"category"`
	StockQuantity int     `json:"stockQuantity" yaml:"stockQuantity"`
	Brand         string  `json:"brand" yaml:"brand"`
}

// RecordID returns the Product identity.
func (p Product) RecordID() int64 { return p.ProductID }

// WithRecordID returns a copy of the Product carrying id.
func (p Product) WithRecordID(id int64) Product {
	p.ProductID = id
	return p
}

// Task is a to-do entry served under /api/tasks. DueDate is an ISO-8601
// calendar date (YYYY-MM-DD) and is stored as given.
type Task struct {
	TaskID      int64  `json:"taskId" yaml:"taskId"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
}

// RecordID returns the Task identity.
func (t Task) RecordID() int64 { return t.TaskID }

// WithRecordID returns a copy of the Task carrying id.
func (t Task) WithRecordID(id int64) Task {
	t.TaskID = id
	return t
}

// UserProfile is an account profile served under /api/users.
type UserProfile struct {
	UserID   int64  `json:"userId" yaml:"userId"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	FullName string `json:"fullName" yaml:"fullName"`
	Age      int    `json:"age" yaml:"age"`
	Country  string `json:"country" yaml:"country"`
	Bio      string `json:"bio" yaml:"bio"`
	Active   bool   `json:"active" yaml:"active"`
}

// RecordID returns the UserProfile identity.
func (u UserProfile) RecordID() int64 { return u.UserID }

// WithRecordID returns a copy of the UserProfile carrying id.
func (u UserProfile) WithRecordID(id int64) UserProfile {
	u.UserID = id
	return u
}
