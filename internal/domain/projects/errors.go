package projects

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrNameRequired    = errors.New("project name is required")
	ErrTitleRequired   = errors.New("note title is required")
	ErrNotOwner        = errors.New("only the project owner may do this")
	ErrAlreadyMember   = errors.New("user is already a member")
)
