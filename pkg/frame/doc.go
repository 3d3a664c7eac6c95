// Package frame is a runtime engine for on-chain programs: it turns a raw
// invocation (program id, ordered account list, instruction bytes) into a
// typed, validated account set and dispatches to the matching handler.
//
// A program declares a closed instruction set, each instruction carrying an
// ordered list of account roles with constraints (signer, writable, owner,
// derived address, state discriminant). Composition binds host accounts to
// roles positionally, validates every constraint before any handler code
// runs, and manages account creation and closure lifecycles around the
// handler. Account state is read and mutated in place through zero-copy
// views (see the pod subpackage); nothing is deserialized or copied.
//
// Execution is synchronous and fail-fast. A failed phase aborts the whole
// invocation, and the host reverts all state changes of a failed invocation
// atomically.
package frame
