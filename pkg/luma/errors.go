package luma

import "errors"

var (
	ErrMissingAPIKey = errors.New("luma: api key is required")
	ErrRequestFailed = errors.New("luma: request failed")
)
