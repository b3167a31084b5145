package member

import "errors"

var (
	ErrMemberNotFound     = errors.New("member: not found")
	ErrInvalidEmail       = errors.New("member: email is required")
	ErrInvalidAmount      = errors.New("member: amount must be greater than zero")
	ErrInsufficientTokens = errors.New("member: insufficient tokens")
	ErrRepository         = errors.New("member: repository failure")
	ErrJournal            = errors.New("member: journal failure")
)
