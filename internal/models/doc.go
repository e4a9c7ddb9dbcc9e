// Package models defines the core domain models for the Pemira election
// backend.
//
// # Models
//
//   - Voter: a registered participant, keyed by NPM (institutional student
//     ID), entitled to cast at most one ballot
//   - Ballot: an immutable record of one candidate choice and its timestamp
//   - AuditEntry: an append-only log row recording a state-changing action
//   - CandidateTally / Participation: read-side aggregates for reporting
//
// # Design principles
//
//  1. **One-way vote flag**: Voter.HasVoted transitions false -> true exactly
//     once and is never reset. The store enforces this with a conditional
//     update, not application-level checks.
//  2. **Ballot secrecy at the schema level**: Ballot carries no voter
//     reference. The audit log records that a voter cast a ballot (with a
//     timestamp), so coarse correlation by time remains possible for dispute
//     handling; that is a documented trust boundary, not a linkage column.
//  3. **No plaintext credentials**: Voter carries only a bcrypt hash.
package models
