package models

import "errors"

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrClassNotFound        = errors.New("class not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionClosed        = errors.New("session already closed")
	ErrNoOpenSession        = errors.New("no open session for this chat")
	ErrSessionAlreadyOpen   = errors.New("a session is already open for this chat")
	ErrTestItemNotFound     = errors.New("fitness test item not found")
	ErrUnknownQuality       = errors.New("unknown fitness quality")
	ErrUnknownJumpMode      = errors.New("unknown jump mode")
	ErrUnknownWindow        = errors.New("unknown speed test window")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidLessons       = errors.New("lesson count must be positive")
	ErrInvalidConsume       = errors.New("lesson consumption must not be negative")
	ErrInvalidReps          = errors.New("reps must not be negative")
	ErrTemplateNotFound     = errors.New("training template not found")
	ErrInvalidPeriod        = errors.New("unknown training period")
	ErrEmptyName            = errors.New("name must not be empty")
	ErrInvalidGender        = errors.New("unknown gender")
)
