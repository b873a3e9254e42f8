package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"git.cscs.ch/openchami/chamicore-catalog/internal/query"
	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

// ---------------------------------------------------------------------------
// Record accessors
// ---------------------------------------------------------------------------

var (
	menuAvailable = store.Field[types.MenuItem, bool]{
		Name: "available",
		Get:  func(m types.MenuItem) bool { return m.Available },
		Set:  func(m types.MenuItem, v bool) types.MenuItem { m.Available = v; return m },
	}
	productStock = store.Field[types.Product, int]{
		Name: "stockQuantity",
		Get:  func(p types.Product) int { return p.StockQuantity },
		Set:  func(p types.Product, v int) types.Product { p.StockQuantity = v; return p },
	}
	taskCompleted = store.Field[types.Task, bool]{
		Name: "completed",
		Get:  func(t types.Task) bool { return t.Completed },
		Set:  func(t types.Task, v bool) types.Task { t.Completed = v; return t },
	}
	userActive = store.Field[types.UserProfile, bool]{
		Name: "active",
		Get:  func(u types.UserProfile) bool { return u.Active },
		Set:  func(u types.UserProfile, v bool) types.UserProfile { u.Active = v; return u },
	}
)

func bookTitle(b types.Book) string { return b.Title }
func studentMajor(s types.Student) string { return s.Major }
func studentGPA(s types.Student) float64 { return s.GPA }
func menuName(m types.MenuItem) string { return m.Name }
func menuCategory(m types.MenuItem) string { return m.Category }
func productName(p types.Product) string { return p.Name }
func productDescription(p types.Product) string { return p.Description }
func productCategory(p types.Product) string { return p.Category }
func productBrand(p types.Product) string { return p.Brand }
func productPrice(p types.Product) float64 { return p.Price }
func taskPriority(t types.Task) string { return t.Priority }
func userUsername(u types.UserProfile) string { return u.Username }
func userCountry(u types.UserProfile) string { return u.Country }
func userAge(u types.UserProfile) int { return u.Age }

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func (s *Server) mountBooks(r chi.Router) {
	h := newResource(store.ResourceBooks, s.catalog.Books, s.audit)

	r.Route("/"+store.ResourceBooks, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/search", h.search(func(r *http.Request) (query.Predicate[types.Book], error) {
			title, err := queryText(r, "title")
			if err != nil {
				return nil, err
			}
			return query.ContainsFold(bookTitle, title), nil
		}))
		r.Get("/{id}", h.get)
		r.Delete("/{id}", h.remove)
	})
}

// ---------------------------------------------------------------------------
// Students
// ---------------------------------------------------------------------------

func (s *Server) mountStudents(r chi.Router) {
	h := newResource(store.ResourceStudents, s.catalog.Students, s.audit)

	r.Route("/"+store.ResourceStudents, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/major/{major}", h.search(func(r *http.Request) (query.Predicate[types.Student], error) {
			major, err := pathText(r, "major")
			if err != nil {
				return nil, err
			}
			return query.EqualFold(studentMajor, major), nil
		}))
		r.Get("/filter", h.search(func(r *http.Request) (query.Predicate[types.Student], error) {
			gpa, err := queryFloat(r, "gpa")
			if err != nil {
				return nil, err
			}
			return query.AtLeast(studentGPA, gpa), nil
		}))
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
}

// ---------------------------------------------------------------------------
// Menu
// ---------------------------------------------------------------------------

func (s *Server) mountMenu(r chi.Router) {
	h := newResource(store.ResourceMenu, s.catalog.Menu, s.audit)

	r.Route("/"+store.ResourceMenu, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/category/{category}", h.search(func(r *http.Request) (query.Predicate[types.MenuItem], error) {
			category, err := pathText(r, "category")
			if err != nil {
				return nil, err
			}
			return query.EqualFold(menuCategory, category), nil
		}))
		r.Get("/available", h.search(func(r *http.Request) (query.Predicate[types.MenuItem], error) {
			available, err := queryBool(r, "available")
			if err != nil {
				return nil, err
			}
			return query.Is(menuAvailable.Get, available), nil
		}))
		r.Get("/search", h.search(func(r *http.Request) (query.Predicate[types.MenuItem], error) {
			name, err := queryText(r, "name")
			if err != nil {
				return nil, err
			}
			return query.ContainsFold(menuName, name), nil
		}))
		r.Get("/{id}", h.get)
		r.Put("/{id}/availability", h.mutate("toggle-availability", toggle(menuAvailable)))
		r.Delete("/{id}", h.remove)
	})
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func (s *Server) mountProducts(r chi.Router) {
	h := newResource(store.ResourceProducts, s.catalog.Products, s.audit)

	r.Route("/"+store.ResourceProducts, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/category/{category}", h.search(func(r *http.Request) (query.Predicate[types.Product], error) {
			category, err := pathText(r, "category")
			if err != nil {
				return nil, err
			}
			return query.EqualFold(productCategory, category), nil
		}))
		r.Get("/brand/{brand}", h.search(func(r *http.Request) (query.Predicate[types.Product], error) {
			brand, err := pathText(r, "brand")
			if err != nil {
				return nil, err
			}
			return query.EqualFold(productBrand, brand), nil
		}))
		r.Get("/search", h.search(func(r *http.Request) (query.Predicate[types.Product], error) {
			keyword, err := queryText(r, "keyword")
			if err != nil {
				return nil, err
			}
			return query.AnyContainsFold(keyword, productName, productDescription), nil
		}))
		r.Get("/price-range", h.search(func(r *http.Request) (query.Predicate[types.Product], error) {
			lo, err := queryFloat(r, "min")
			if err != nil {
				return nil, err
			}
			hi, err := queryFloat(r, "max")
			if err != nil {
				return nil, err
			}
			return query.Between(productPrice, lo, hi), nil
		}))
		r.Get("/in-stock", h.search(func(*http.Request) (query.Predicate[types.Product], error) {
			return query.Above(productStock.Get, 0), nil
		}))
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/stock", h.mutate("update-stock", func(r *http.Request) (mutation[types.Product], error) {
			quantity, err := queryInt(r, "quantity")
			if err != nil {
				return nil, err
			}
			return assign(productStock, quantity), nil
		}))
		r.Delete("/{id}", h.remove)
	})
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

func (s *Server) mountTasks(r chi.Router) {
	h := newResource(store.ResourceTasks, s.catalog.Tasks, s.audit)

	r.Route("/"+store.ResourceTasks, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/status", h.search(func(r *http.Request) (query.Predicate[types.Task], error) {
			completed, err := queryBool(r, "completed")
			if err != nil {
				return nil, err
			}
			return query.Is(taskCompleted.Get, completed), nil
		}))
		r.Get("/priority/{priority}", h.search(func(r *http.Request) (query.Predicate[types.Task], error) {
			priority, err := pathText(r, "priority")
			if err != nil {
				return nil, err
			}
			return query.EqualFold(taskPriority, priority), nil
		}))
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/complete", h.mutate("complete", set(taskCompleted, true)))
		r.Delete("/{id}", h.remove)
	})
}
