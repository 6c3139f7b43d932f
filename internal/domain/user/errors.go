package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameTaken          = errors.New("username already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrStaffPrivilegeRequired = errors.New("teacher or admin privilege required")
)
