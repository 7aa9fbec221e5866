package service

import (
	"errors"
	"fmt"
)

var (
	ErrPackageNotFound  = errors.New("package not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrStudentNotFound  = errors.New("student profile not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentFinalized = errors.New("payment already finalized")
)

// GatewayDeclinedError means the gateway answered but refused to issue a
// checkout form. Unlike a transport failure this carries a message safe
// to surface to the client.
type GatewayDeclinedError struct {
	Message string
}

func (e *GatewayDeclinedError) Error() string {
	return fmt.Sprintf("gateway declined: %s", e.Message)
}
