package domain

import "errors"

var (
	ErrVoteNotFound       = errors.New("vote not found")
	ErrVoteTimeConstraint = errors.New("vote change period is over")
	ErrVoteConflict       = errors.New("vote conflicts with existing state")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrMenuNotFound       = errors.New("menu not found")
	ErrDuplicateMenu      = errors.New("menu already exists for this restaurant and date")
	ErrUserNotFound       = errors.New("user not found")
	ErrNameTaken          = errors.New("name already in use")
	ErrEmailTaken         = errors.New("email already in use")
)
