package domain

import "errors"

var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrIssueNotFound     = errors.New("issue not found")
	ErrSlotFull          = errors.New("slot full")
	ErrInvalidLane       = errors.New("invalid lane")
)
