package common

import "fmt"

// Stack is a fixed-capacity sequence with random access. It never
// reallocates; exceeding the capacity or reading past the logical size
// is a programming error and panics.
type Stack[T any] struct {
	items []T
}

func NewStack[T any](capacity int) Stack[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("stack: capacity %d", capacity))
	}
	return Stack[T]{items: make([]T, 0, capacity)}
}

func (s *Stack[T]) Len() int { return len(s.items) }

func (s *Stack[T]) Cap() int { return cap(s.items) }

func (s *Stack[T]) Push(item T) {
	if len(s.items) == cap(s.items) {
		panic("stack: push beyond capacity")
	}
	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		panic("stack: pop on empty stack")
	}
	var item = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return item
}

func (s *Stack[T]) Top() T {
	if len(s.items) == 0 {
		panic("stack: top on empty stack")
	}
	return s.items[len(s.items)-1]
}

func (s *Stack[T]) At(index int) T {
	if index < 0 || index >= len(s.items) {
		panic(fmt.Sprintf("stack: index %d out of %d", index, len(s.items)))
	}
	return s.items[index]
}

func (s *Stack[T]) Clear() {
	s.items = s.items[:0]
}

// Truncate drops elements above size, keeping the first size in place.
func (s *Stack[T]) Truncate(size int) {
	if size < 0 || size > len(s.items) {
		panic(fmt.Sprintf("stack: truncate to %d of %d", size, len(s.items)))
	}
	s.items = s.items[:size]
}

// Items returns the live elements in push order. The slice aliases the
// stack's storage and is valid until the next mutation.
func (s *Stack[T]) Items() []T {
	return s.items
}
