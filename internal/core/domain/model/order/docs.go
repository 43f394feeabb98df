// Package order implements the order aggregate and the item status state
// machine at the heart of the order management core.
//
// The package owns three closely related pieces:
//
//   - The Status enumeration and its declared transition graph, the single
//     source of truth for which statuses are reachable from which.
//   - ValidateTransition, the two-tier transition policy: strict graph
//     membership plus the cancellation override that permits cancelling from
//     any non-terminal status.
//   - The Order aggregate, which locates items, applies validated
//     transitions, stamps per-event timestamps from a status-keyed effect
//     table, derives the order-level status, and emits TransitionEvents for
//     audit and refund coordination.
//
// The aggregate is pure: persistence and side-effect delivery belong to the
// application layer and its unit of work.
package order
