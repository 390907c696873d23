// Package schema discovers, at query time, which columns of an arbitrary
// table matter to a lookup.
//
// Identity tables carry no schema contract. Column roles are derived purely
// from column names:
//
//   - Digest: name ends with "_sha" or "_sha256" (case-insensitive)
//   - ListDigest: name equals the list column (default "row_hashes"), whose
//     value is a JSON array of digests
//   - FreeText: name contains "addr", "street" or "city" (case-insensitive)
//
// Everything else is RoleUnclassified and ignored by the lookup engine.
// Classification is a pure function so the rules can be tested without a
// database; Probe reads the column list and applies them.
package schema
