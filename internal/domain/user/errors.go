package user

import "errors"

var (
	ErrSelfManaged  = errors.New("user cannot manage themselves")
	ErrManagerCycle = errors.New("manager assignment would create a cycle")
)
