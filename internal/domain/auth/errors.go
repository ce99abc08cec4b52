package auth

import "errors"

var (
	ErrInvalidToken   = errors.New("invalid or missing access token")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidIDToken = errors.New("identity token could not be verified")
)
