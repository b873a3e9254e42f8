package store

import (
	"fmt"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

// Resource names, used as metric labels, audit fields and service selectors.
const (
	ResourceBooks    = "books"
	ResourceStudents = "students"
	ResourceMenu     = "menu"
	ResourceProducts = "products"
	ResourceTasks    = "tasks"
	ResourceUsers    = "users"
)

// Resources lists every resource name in mount order.
var Resources = []string{
	ResourceBooks,
	ResourceStudents,
	ResourceMenu,
	ResourceProducts,
	ResourceTasks,
	ResourceUsers,
}

var (
	_ Store[types.Book]        = (*Memory[types.Book])(nil)
	_ Store[types.Student]     = (*Memory[types.Student])(nil)
	_ Store[types.MenuItem]    = (*Memory[types.MenuItem])(nil)
	_ Store[types.Product]     = (*Memory[types.Product])(nil)
	_ Store[types.Task]        = (*Memory[types.Task])(nil)
	_ Store[types.UserProfile] = (*Memory[types.UserProfile])(nil)
)

// Seeds holds the startup records of every resource.
type Seeds struct {
	Books    []types.Book
	Students []types.Student
	Menu     []types.MenuItem
	Products []types.Product
	Tasks    []types.Task
	Users    []types.UserProfile
}

// Catalog groups one independent store per resource. Stores never share
// identities or locks.
type Catalog struct {
	Books    Store[types.Book]
	Students Store[types.Student]
	Menu     Store[types.MenuItem]
	Products Store[types.Product]
	Tasks    Store[types.Task]
	Users    Store[types.UserProfile]
}

// ObserverFunc returns the Observer for one resource, or nil for none.
type ObserverFunc func(resource string) Observer

// NewCatalog builds the six in-memory stores from seeds.
func NewCatalog(seeds Seeds, observe ObserverFunc) (*Catalog, error) {
	optsFor := func(resource string) []Option {
		if observe == nil {
			return nil
		}
		if o := observe(resource); o != nil {
			return []Option{WithObserver(o)}
		}
		return nil
	}

	books, err := NewMemory(seeds.Books, optsFor(ResourceBooks)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceBooks, err)
	}
	students, err := NewMemory(seeds.Students, optsFor(ResourceStudents)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceStudents, err)
	}
	menu, err := NewMemory(seeds.Menu, optsFor(ResourceMenu)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceMenu, err)
	}
	products, err := NewMemory(seeds.Products, optsFor(ResourceProducts)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceProducts, err)
	}
	tasks, err := NewMemory(seeds.Tasks, optsFor(ResourceTasks)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceTasks, err)
	}
	users, err := NewMemory(seeds.Users, optsFor(ResourceUsers)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ResourceUsers, err)
	}

	return &Catalog{
		Books:    books,
		Students: students,
		Menu:     menu,
		Products: products,
		Tasks:    tasks,
		Users:    users,
	}, nil
}
