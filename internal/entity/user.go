package entity

import "errors"

var UserNotFoundErr = errors.New("no user logged in")

// User is the logged-in identity kept on the device. It has no expiry.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
