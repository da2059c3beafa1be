// Package circulation contains the domain core of the library circulation
// lifecycle: books with copy counters, members with borrow counters, borrow
// transactions with due dates, overdue fines, reservations, and payments.
//
// Everything in this package is pure: no I/O, no clock reads. Operations that
// depend on time take an explicit timestamp so that a single captured "now"
// can be threaded through a whole use case without time-of-check/time-of-use
// skew. Mutations are expressed as With* methods returning updated copies;
// they report a broken counter invariant as an error instead of clamping.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package circulation
