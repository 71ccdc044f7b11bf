// Package errors provides the structured error handling used across the
// gamemaster engine.
//
// Every expected failure mode of the core components maps onto a Code:
//   - InvalidNotation: a dice string does not match <count>d<faces>[+/-mod]
//   - InvalidPath: a state path traverses a non-container value
//   - NotFound: a state path or entity id is absent
//   - InvalidState: an operation was attempted in the wrong combat phase
//   - CorruptState: a persisted document fails to parse or validate
//   - InvalidArgument: a constructor or operation received bad input
//   - Internal / Unavailable: infrastructure failures (I/O, storage)
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("entity not found")
//	err := errors.InvalidNotationf("bad dice notation: %q", notation)
//
// Adding metadata:
//
//	err := errors.NotFound("entity not found").
//	    WithMeta("entity_id", entityID)
//
// Wrapping errors:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save game state")
//	}
//
// Changing error semantics:
//
//	if err := json.Unmarshal(data, &doc); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeCorruptState, "malformed game document")
//	}
//
// # Error Checking
//
// Callers branch on codes, never on message text:
//
//	if errors.IsNotFound(err) {
//	    // Handle absent entity/path
//	}
//
// Extracting information:
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound for absent documents, CorruptState for unparseable ones
//   - Include relevant IDs in metadata
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Signal phase violations as InvalidState
//   - Wrap repository errors with game context
package errors
