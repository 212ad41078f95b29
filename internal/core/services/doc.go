// Package services implements the core business logic for Libris.
//
// Services implement the driving ports and depend only on domain types
// and driven ports. The LendingService is the heart of the system: it
// owns every transition of a book's lending state. CatalogService and
// ReportService are thin plumbing around the stores.
package services
