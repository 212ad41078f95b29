// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BookStore: Book persistence, including the loan-count query used
//     by the eligibility check
//   - MemberStore: Member persistence
//   - ConfigStore: Application configuration (lending policy)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
