package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record[T any] interface {
	RecordID() int64
	WithRecordID(id int64) T
}

func checkWithRecordID[T record[T]](t *testing.T, rec T) {
	t.Helper()
	before := rec.RecordID()
	moved := rec.WithRecordID(before + 41)
	assert.Equal(t, before+41, moved.RecordID())
	assert.Equal(t, before, rec.RecordID(), "receiver must be left unchanged")
}

func TestWithRecordID_CopiesRecord(t *testing.T) {
	t.Run("book", func(t *testing.T) { checkWithRecordID(t, Book{ID: 1, Title: "Clean Code"}) })
	t.Run("student", func(t *testing.T) { checkWithRecordID(t, Student{StudentID: 2, Major: "Engineering"}) })
	t.Run("menu item", func(t *testing.T) { checkWithRecordID(t, MenuItem{ID: 3, Name: "Grilled Salmon"}) })
	t.Run("product", func(t *testing.T) { checkWithRecordID(t, Product{ProductID: 4, Brand: "Nike"}) })
	t.Run("task", func(t *testing.T) { checkWithRecordID(t, Task{TaskID: 5, Priority: "HIGH"}) })
	t.Run("user profile", func(t *testing.T) { checkWithRecordID(t, UserProfile{UserID: 6, Username: "emma_brown"}) })
}

func TestEnvelope(t *testing.T) {
	ok := OK("User profile found", &UserProfile{UserID: 1})
	assert.True(t, ok.Success)
	assert.Equal(t, int64(1), ok.Data.UserID)

	fail := Fail[*UserProfile]("No user found with username: ghost")
	assert.False(t, fail.Success)
	assert.Nil(t, fail.Data)
}
