// Package driving defines the interfaces through which the outside
// world drives the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI adapter calls these interfaces; core services implement them.
//
//   - LendingService: The lending engine (borrow, return, reserve,
//     cancel, extend, eligibility)
//   - CatalogService: Book and member record maintenance
//   - ReportService: Read-only queries over the catalogue
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
