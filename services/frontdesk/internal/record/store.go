package record

import (
	"context"

	"github.com/appetiteclub/apt"
)

// Result is the per-record outcome of a batch mutation.
type Result struct {
	ID      int64                `json:"id"`
	Success bool                 `json:"success"`
	Record  Record               `json:"record,omitempty"`
	Errors  apt.ValidationErrors `json:"errors,omitempty"`
	Message string               `json:"message,omitempty"`
}

// Store is the generic record-storage collaborator. Field maps use backend
// keys exclusively; the store assigns Id and stamps CreatedOn/ModifiedOn.
type Store interface {
	FetchAll(ctx context.Context, collection string, fields []string) ([]Record, error)
	// FetchByID returns (nil, nil) when the id is unknown.
	FetchByID(ctx context.Context, collection string, id int64, fields []string) (Record, error)
	CreateRecords(ctx context.Context, collection string, records []Record) ([]Result, error)
	UpdateRecords(ctx context.Context, collection string, records []Record) ([]Result, error)
	DeleteRecords(ctx context.Context, collection string, ids []int64) ([]Result, error)
	Ping(ctx context.Context) error
}

// First turns the single-result outcome of a batch mutation into an error
// from the record taxonomy.
func First(collection string, id int64, results []Result) (Result, error) {
	if len(results) == 0 {
		return Result{}, Transport("read store result", errEmptyResult)
	}
	res := results[0]
	if res.Success {
		return res, nil
	}
	if len(res.Errors) > 0 {
		return res, &ValidationFailure{Collection: collection, Errors: res.Errors}
	}
	if id != 0 && res.Message == MsgNotFound {
		return res, NotFound(collection, id)
	}
	return res, Transport("apply "+collection+" change", errorString(res.Message))
}

// MsgNotFound is the Result message stores use for an unknown id.
const MsgNotFound = "not found"

var errEmptyResult = errorString("store returned no result")

type errorString string

func (e errorString) Error() string { return string(e) }
