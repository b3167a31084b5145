package replay

import "errors"

var (
	ErrAlreadyUsed  = errors.New("token has already been used")
	ErrKeyRequired  = errors.New("replay key is required")
	ErrStoreFailure = errors.New("replay store failure")
)
