package pipeline

import "errors"

var (
	ErrFetch  = errors.New("downloading PNAD data failed")
	ErrEmpty  = errors.New("loaded table is empty: delete the CSV and run again to force a fresh download")
	ErrParse  = errors.New("loading the CSV failed: delete the CSV and run again")
	ErrExport = errors.New("database export failed")
)
