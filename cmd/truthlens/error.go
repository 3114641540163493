// cmd/truthlens/error.go
package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeUpstream ErrorType = "upstream"
	ErrorTypeFetch    ErrorType = "fetch"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeInternal ErrorType = "internal"
)

// Error codes
const (
	// Config error codes
	ErrAuthMissing      = "AUTH_001"
	ErrConfigLoad       = "CONFIG_001"
	ErrConfigValidation = "CONFIG_002"

	// Upstream error codes
	ErrUpstreamStatus    = "UPSTREAM_001"
	ErrUpstreamTransport = "UPSTREAM_002"
	ErrUpstreamDecode    = "UPSTREAM_003"

	// Fetch error codes
	ErrFetchFailure = "FETCH_001"

	// Parse error codes
	ErrConfidenceCoercion = "PARSE_001"
)

// TruthLensError is the custom error type for the application
type TruthLensError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Inner      error     `json:"-"`
}

func (e *TruthLensError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s-%s] %s: %v", e.Type, e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s-%s] %s", e.Type, e.Code, e.Message)
}

func (e *TruthLensError) Unwrap() error {
	return e.Inner
}

// NewError creates a new TruthLensError
func NewError(errType ErrorType, code string, message string, inner error) *TruthLensError {
	return &TruthLensError{
		Type:    errType,
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewConfigError(code string, message string, inner error) *TruthLensError {
	return NewError(ErrorTypeConfig, code, message, inner)
}

func NewUpstreamError(code string, message string, inner error) *TruthLensError {
	return NewError(ErrorTypeUpstream, code, message, inner)
}

func NewFetchError(message string, inner error) *TruthLensError {
	return NewError(ErrorTypeFetch, ErrFetchFailure, message, inner)
}

func NewParseError(code string, message string, inner error) *TruthLensError {
	return NewError(ErrorTypeParse, code, message, inner)
}

// HasErrorCode reports whether any error in err's chain is a TruthLensError with the given code
func HasErrorCode(err error, code string) bool {
	var te *TruthLensError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// ErrorEvent represents a recorded error event
type ErrorEvent struct {
	Type      ErrorType `json:"type"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Component string    `json:"component"`
	RequestID string    `json:"request_id,omitempty"`
	Stack     string    `json:"stack,omitempty"`
	Time      time.Time `json:"time"`
}

// ErrorBuffer keeps the most recent error events in memory
type ErrorBuffer struct {
	events []*ErrorEvent
	max    int
	mutex  sync.Mutex
}

// NewErrorBuffer creates a buffer holding at most size events
func NewErrorBuffer(size int) *ErrorBuffer {
	if size <= 0 {
		size = MaxRecentErrors
	}
	return &ErrorBuffer{
		events: make([]*ErrorEvent, 0, size),
		max:    size,
	}
}

// Add appends an event, dropping the oldest one when full
func (b *ErrorBuffer) Add(event *ErrorEvent) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if len(b.events) >= b.max {
		b.events = b.events[1:]
	}
	b.events = append(b.events, event)
}

// GetRecent returns up to count events, newest first
func (b *ErrorBuffer) GetRecent(count int) []*ErrorEvent {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if count <= 0 || count > len(b.events) {
		count = len(b.events)
	}
	result := make([]*ErrorEvent, 0, count)
	for i := len(b.events) - 1; i >= 0 && len(result) < count; i-- {
		result = append(result, b.events[i])
	}
	return result
}

// Len returns the number of buffered events
func (b *ErrorBuffer) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.events)
}

// ErrorHandler handles and records errors
type ErrorHandler struct {
	buffer *ErrorBuffer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(bufferSize int) *ErrorHandler {
	return &ErrorHandler{
		buffer: NewErrorBuffer(bufferSize),
	}
}

// Handle processes and records an error
func (h *ErrorHandler) Handle(err error, component, requestID string) {
	if err == nil {
		return
	}

	event := &ErrorEvent{
		Time:      time.Now(),
		Component: component,
		RequestID: requestID,
	}

	var te *TruthLensError
	if errors.As(err, &te) {
		event.Type = te.Type
		event.Code = te.Code
		event.Message = te.Error()
	} else {
		event.Type = ErrorTypeInternal
		event.Code = "INTERNAL_001"
		event.Message = err.Error()
		event.Stack = getStackTrace()
	}

	h.buffer.Add(event)

	Logger().Error("%s [%s]: %v", component, requestID, err)
}

// GetRecentErrors returns recent error events
func (h *ErrorHandler) GetRecentErrors(count int) []*ErrorEvent {
	return h.buffer.GetRecent(count)
}

// Count returns how many errors are currently buffered
func (h *ErrorHandler) Count() int {
	return h.buffer.Len()
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var trace []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return strings.Join(trace, "\n")
}
