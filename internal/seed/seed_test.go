package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

func TestLoad_Counts(t *testing.T) {
	seeds, err := Load()
	require.NoError(t, err)

	assert.Len(t, seeds.Books, 3)
	assert.Len(t, seeds.Students, 5)
	assert.Len(t, seeds.Menu, 8)
	assert.Len(t, seeds.Products, 10)
	assert.Len(t, seeds.Tasks, 6)
	assert.Len(t, seeds.Users, 7)
}

func TestLoad_FieldsDecoded(t *testing.T) {
	seeds, err := Load()
	require.NoError(t, err)

	assert.Equal(t, types.Book{
		ID: 1, Title: "Clean Code", Author: "Robert Martin",
		ISBN: "978-0132350884", PublicationYear: 2008,
	}, seeds.Books[0])

	assert.Equal(t, "Levi's", seeds.Products[5].Brand)
	assert.Zero(t, seeds.Products[5].StockQuantity)
	assert.Equal(t, "Home & Kitchen", seeds.Products[6].Category)
	assert.InDelta(t, 3.9, seeds.Students[1].GPA, 1e-9)
	assert.Equal(t, "2025-02-10", seeds.Tasks[5].DueDate)
	assert.False(t, seeds.Menu[4].Available)
	assert.False(t, seeds.Users[6].Active)
}

func TestLoad_FirstAllocatedIDs(t *testing.T) {
	ctx := context.Background()
	seeds, err := Load()
	require.NoError(t, err)

	cat, err := store.NewCatalog(seeds, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4), cat.Books.Create(ctx, types.Book{}).ID)
	assert.Equal(t, int64(6), cat.Students.Create(ctx, types.Student{}).StudentID)
	assert.Equal(t, int64(9), cat.Menu.Create(ctx, types.MenuItem{}).ID)
	assert.Equal(t, int64(11), cat.Products.Create(ctx, types.Product{}).ProductID)
	assert.Equal(t, int64(7), cat.Tasks.Create(ctx, types.Task{}).TaskID)
	assert.Equal(t, int64(8), cat.Users.Create(ctx, types.UserProfile{}).UserID)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := parse[types.Book]("books", []byte("- id: 1\n  titel: typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "books")
}
