package record

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrBadDataset   = errors.New("malformed dataset")
	ErrEmptyDataset = errors.New("empty dataset")
)
