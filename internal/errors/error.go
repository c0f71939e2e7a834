package errors

import "errors"

var (
	ErrCaptchaIncomplete = errors.New("captcha verification was not completed")
	ErrEmailInvalid      = errors.New("e-mail address is invalid")
	ErrEmailTaken        = errors.New("e-mail address is already in use")
	ErrUsernameInvalid   = errors.New("username is invalid")
	ErrUsernameTaken     = errors.New("username is already in use")
	ErrPasswordInvalid   = errors.New("password is invalid")
	ErrRecordNotFound    = errors.New("record was not found")
	ErrUserNotFound      = errors.New("user was not found")
	ErrForbidden         = errors.New("anti-forgery token check failed")
	ErrMailDispatch      = errors.New("mail dispatch failed")
	ErrInternal          = errors.New("internal error")
)
