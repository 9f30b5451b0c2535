// Package store keeps conversion jobs so results can be fetched after the
// request that produced them.
package store

import (
	"context"
	"errors"

	"github.com/jsphweid/fretdex/model"
)

var ErrNotFound = errors.New("job not found")

type Store interface {
	Put(ctx context.Context, job model.Job) error
	Get(ctx context.Context, id string) (model.Job, error)
}
