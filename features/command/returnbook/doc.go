// Package returnbook implements the return-book workflow, including the
// late-return fine issued when the book comes back past its due date.
package returnbook
