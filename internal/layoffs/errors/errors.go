package errors

import (
	"fmt"
)

var (
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrMissingCompany = fmt.Errorf("missing company name")
	ErrMissingColumn  = fmt.Errorf("missing required column")
	ErrFetchFailed    = fmt.Errorf("failed to load data")
	ErrStoreFailed    = fmt.Errorf("failed to store data")
)
