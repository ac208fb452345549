package models

import "errors"

var (
	ErrSourceUnavailable = errors.New("schedule source unavailable")
	ErrMalformedSchedule = errors.New("malformed schedule")
	ErrStatusFeed        = errors.New("status feed error")
	ErrCapacityExceeded  = errors.New("comment section full")
	ErrInvalidSubmission = errors.New("invalid comment")
	ErrStorageIO         = errors.New("storage i/o error")
	ErrInvalidShowName   = errors.New("invalid show name")
	ErrUnknownShow       = errors.New("show not in schedule")
	ErrCommentsDisabled  = errors.New("comments currently disabled")
)
