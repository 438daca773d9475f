package users

import (
	"context"

	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

// Store is the part of records.Store the registry depends on.
type Store interface {
	Get(ctx context.Context, kind records.Kind, id string) (records.Record, error)
	Insert(ctx context.Context, kind records.Kind, id string, rec records.Record) error
}
