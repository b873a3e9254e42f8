// Package query builds record predicates and filters record sequences with them.
package query

import (
	"cmp"
	"strings"
)

// Predicate reports whether a record matches.
type Predicate[T any] func(T) bool

// EqualFold matches records whose text attribute equals want, ignoring case.
func EqualFold[T any](get func(T) string, want string) Predicate[T] {
	return func(rec T) bool {
		return strings.EqualFold(get(rec), want)
	}
}

// ContainsFold matches records whose text attribute contains needle, ignoring
// case. An empty needle matches every record.
func ContainsFold[T any](get func(T) string, needle string) Predicate[T] {
	lowered := strings.ToLower(needle)
	return func(rec T) bool {
		return strings.Contains(strings.ToLower(get(rec)), lowered)
	}
}

// AnyContainsFold matches records where at least one of the given text
// attributes contains needle, ignoring case.
func AnyContainsFold[T any](needle string, gets ...func(T) string) Predicate[T] {
	preds := make([]Predicate[T], 0, len(gets))
	for _, get := range gets {
		preds = append(preds, ContainsFold(get, needle))
	}
	return Any(preds...)
}

// AtLeast matches records whose attribute is >= floor.
func AtLeast[T any, V cmp.Ordered](get func(T) V, floor V) Predicate[T] {
	return func(rec T) bool {
		return get(rec) >= floor
	}
}

// Above matches records whose attribute is strictly greater than bound.
func Above[T any, V cmp.Ordered](get func(T) V, bound V) Predicate[T] {
	return func(rec T) bool {
		return get(rec) > bound
	}
}

// Between matches records whose attribute lies in [lo, hi]. When lo > hi no
// record matches.
func Between[T any, V cmp.Ordered](get func(T) V, lo, hi V) Predicate[T] {
	return func(rec T) bool {
		v := get(rec)
		return v >= lo && v <= hi
	}
}

// Is matches records whose boolean attribute equals want.
func Is[T any](get func(T) bool, want bool) Predicate[T] {
	return func(rec T) bool {
		return get(rec) == want
	}
}

// All matches when every predicate matches. With no predicates it matches
// everything.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(rec T) bool {
		for _, p := range preds {
			if !p(rec) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches. With no predicates it
// matches nothing.
func Any[T any](preds ...Predicate[T]) Predicate[T] {
	return func(rec T) bool {
		for _, p := range preds {
			if p(rec) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(rec T) bool {
		return !p(rec)
	}
}

// Filter returns the items matching every predicate, in their original order.
// The result is never nil.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	match := All(preds...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}
