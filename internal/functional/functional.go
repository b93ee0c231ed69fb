package functional

import "sort"

func Sort[I any](
	collection []I, less func(this, other I) bool,
) []I {

	sort.Slice(collection, func(i, j int) bool {
		return less(collection[i], collection[j])
	})
	return collection
}

func EqualPtr[T comparable](
	this, that *T,
) bool {

	if this == nil || that == nil {
		return this == that
	}
	return *this == *that
}
