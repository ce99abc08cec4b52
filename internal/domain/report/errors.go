package report

import "errors"

var ErrHREmailRequired = errors.New("hrEmail is required")
