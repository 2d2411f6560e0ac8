package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyOwner       = errors.New("owner cannot be empty")
	ErrNoDueDate        = errors.New("task has no due date")
	ErrNothingExtracted = errors.New("no task could be extracted from the text")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrStoreNotLoaded   = errors.New("task store not loaded")
	ErrTranscribeFailed = errors.New("transcription failed")
)
