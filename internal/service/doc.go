// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the task
// store (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. TaskService:
//   - CRUD operations on tasks, completion and filtered listing
//   - Enforces that the id in the request path matches the task body on update
//
// 2. StatisticsService:
//   - Aggregate task counts derived from the store
//
// 3. Error Handling:
//   - Validation failures surface as domain.ValidationError
//   - Missing tasks surface as store.ErrTaskNotFound
//   - Id mismatches surface as ErrIDMismatch, which wraps domain.ErrConflict
//   - Anything else is wrapped in a TaskServiceError
//
// The service layer depends on domain entities and the store interface, never
// on a specific storage implementation.
package service
