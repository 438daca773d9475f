// Package records is the keyed record store behind users, profiles and
// interviews.
//
// # Overview
//
// A record is a schema-less JSON object (Record) addressed by a Kind and a
// string key. The store never interprets record bodies beyond two fields:
// "id", stamped on records created with a generated key, and "user_id", which
// is copied into an indexed owner column so records can be listed per user.
//
// # Layers
//
//   - Repository: row-level SQL access over a dbx.DBTX
//   - SQLRepository: the Repository used for SQLite and PostgreSQL
//   - RepositoryManager: vends repositories bound to a pool or a transaction
//   - Store: the public API (Get, Put, Create, Insert, Update, Upsert,
//     FindByOwner)
//
// # Concurrency
//
// Every write to a key runs under a per-key lock and inside a single
// transaction, so read-modify-write operations (Update, Upsert) on the same key
// are linearizable and never lose an update. Different keys never wait on each
// other's locks.
//
// # Errors
//
// Missing keys surface as common.ErrorNotFound, duplicate inserts as
// common.ErrorAlreadyExists, and any driver or I/O failure as
// common.ErrorStorageUnavailable. A failed write leaves the previous record in
// place.
//
// Typical Usage
//
//	store := records.NewStore(db, records.NewSQLRepositoryManager())
//	id, _ := store.Create(ctx, records.KindInterview, records.Record{"user_id": "u1"})
//	_, _ = store.Update(ctx, records.KindInterview, id, func(r records.Record) (records.Record, error) {
//	    r["mode"] = "training"
//	    return r, nil
//	})
package records
