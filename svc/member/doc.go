// Package member owns club members and their token balance.
//
// Members live in the Airtable table "Membres du club" (AirtableRepository)
// or, without Airtable credentials, in process memory (MemoryRepository).
// GetOrCreate registers unknown emails on first sign-in with the default
// allowance.
//
// Ledger moves tokens. Spend and Add serialize the read-modify-write per
// member inside the process and append every movement to a Journal, either
// in memory or in the token_transactions table in Postgres.
package member
