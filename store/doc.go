// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store keeps the survey aggregate.

# Store

	st := store.New(store.NewFileBackend("data.json"))
	st.Init(ctx)                          // writes a zero aggregate if none exists
	agg := st.Load(ctx)                   // never fails
	agg, persisted := st.Update(ctx, fn)  // serialized read-modify-write

Load and Save never return errors. A failed read serves a zero aggregate and
a failed write keeps the written aggregate; in both cases the store switches
to ModeMemory and answers from that copy until a write succeeds.

Update holds the store mutex for the whole read-modify-write, so concurrent
submissions in one process are never lost. Several processes sharing one
JSON file still race (last writer wins).

# Backends

  - FileBackend: one JSON document, replaced via temp file + rename
  - SQLBackend: survey_total/survey_count tables, one transaction per write
  - none (NewMemory): always ModeMemory
*/
package store
