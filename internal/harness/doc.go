// Package harness runs lookup scenarios described in YAML.
//
// A scenario seeds one or more tables in a fresh SQLite file, then runs
// lookups against it through the same engine the CLI uses and checks the
// rows that come back.
//
// # Scenario Format
//
//	name: phone_forms
//	description: "Both phone forms are searched"
//	tables:
//	  - name: people
//	    columns:
//	      - { name: id, type: INTEGER }
//	      - { name: phone_sha256, type: TEXT }
//	      - { name: row_hashes, type: TEXT }
//	    rows:
//	      - { id: 1, phone_sha256: "sha256:+14155550100" }
//	      - { id: 2, row_hashes: ["sha256:bob", "sha256:ada"] }
//	lookups:
//	  - name: plus form
//	    mode: phone
//	    table: people
//	    query: "+1 415 555 0100"
//	    expect:
//	      ids: ["1"]
//
// # Seed Values
//
// A string of the form "sha256:<text>" is stored as the hex digest of
// <text>. A sequence is stored as a JSON array with each element resolved
// the same way. A null leaves the column NULL. Everything else is bound
// as-is.
//
// # Expectations
//
//   - count: exact number of rows
//   - ids: the id_column value of each row, in order (id_column defaults to "id")
//   - rows: per-row subset match on field values, in order
//   - error: the lookup error kind, e.g. SCHEMA_ERROR
//
// Golden snapshots of every lookup's console rendering are compared with
// RunWithGolden.
package harness
