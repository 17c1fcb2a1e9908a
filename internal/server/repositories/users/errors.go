package users

import "github.com/dmitrijs2005/jobboard/internal/common"

var (
	errUsernameTaken = common.NewError(common.ErrorAlreadyExists, "username already exists")
	errUserNotFound  = common.NewError(common.ErrorNotFound, "user not found")
)
