package domain

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	FailureNetwork        FailureKind = "network"
	FailureHTTP           FailureKind = "http"
	FailureSchema         FailureKind = "schema"
	FailureServerReported FailureKind = "serverReported"
)

// GatewayError — отказ одного из запросов к API записи.
type GatewayError struct {
	Op      string
	Kind    FailureKind
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// FailureOf возвращает вид отказа, для посторонних ошибок — network.
func FailureOf(err error) FailureKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return FailureNetwork
}

// ServerMessage возвращает сообщение сервера, если оно было.
func ServerMessage(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return ""
}
