// Package sqlite provides SQLite-backed implementations of the book
// and member stores.
//
// A single database file holds both tables; the reservation queue is
// stored as a JSON array so the whole book entity is persisted in one
// row, matching the owned-queue model. Schema changes are applied
// through embedded, versioned migrations.
package sqlite
