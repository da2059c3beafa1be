// Package borrowbook implements the borrow-book workflow: a member takes one
// available copy of a book, the availability and borrowing counters move
// together in one transaction, and a matching active reservation is fulfilled.
package borrowbook
