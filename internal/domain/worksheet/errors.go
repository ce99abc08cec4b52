package worksheet

import "errors"

var (
	ErrWorkSheetNotFound = errors.New("work sheet not found")
	ErrNotOwner          = errors.New("work sheet belongs to another employee")
)
