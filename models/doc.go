/*
Package models defines the entity and request/response types for the
Ballotbox API.

Every entity is a named struct with explicit fields. Rows are never passed
around as positional tuples; handlers scan directly into these types.

# Entity Types

  - Voter: registered student with has_voted and active flags
  - Position: contested position, ordered by DisplayOrder
  - Candidate: belongs to exactly one Position
  - VoteRecord: a row of the append-only vote ledger, joined to display names
  - Setting, AdminUser: administrative records

# Request/Response Types

Request structs are decoded from JSON bodies; response structs are encoded
by middleware.JSONResponse. Pointer fields mark columns that may be NULL.
*/
package models
