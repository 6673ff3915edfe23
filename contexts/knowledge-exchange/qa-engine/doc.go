// Package qaengine implements the vote and acceptance engine inside the
// knowledge-exchange context.
//
// The module owns per-entity vote-set consistency, the single-accepted-answer
// rule for questions, and best-effort notification fan-out after commits.
// Entity state is serialized through optimistic version checks at the store
// boundary rather than in-process locks; business rules live in the
// domain/application layers behind ports, with infrastructure isolated in
// adapters.
package qaengine
