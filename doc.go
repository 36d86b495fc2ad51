// Package statebox implements a generic stateful-entity kernel: tagged
// finite-state behavior driven by an explicit transition table, deep-copy
// snapshot history with undo, and subject-keyed observer fan-out.
//
// Typical usage looks like:
//   - Declare a Registry of tags and transitions, either with the fluent
//     Builder or by loading a YAML Definition
//   - Create Entities from the Registry, holding your payload type
//   - Attach Observers (or dispatchers built from handler maps) to hear
//     about committed transitions
//   - Call Save and Undo to capture and restore snapshots; restorations
//     never notify unless announced explicitly
//
// Rejected events, empty histories, and observer failures are ordinary
// return values, never panics. The examples/ directory contains runnable
// order-lifecycle and account-undo walkthroughs that exercise the API.
package statebox
