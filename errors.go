package resgen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds of definition processing.
var (
	// ErrInvalidInput indicates the annotated item is not a struct or the
	// group directive carries an unrecognized token.
	ErrInvalidInput = errors.New("resgen: invalid input")
	// ErrMalformedAlias indicates an alias directive value that is not a valid reference.
	ErrMalformedAlias = errors.New("resgen: malformed alias")
	// ErrAliasCollision indicates two declarations of a group resolve to the same name.
	ErrAliasCollision = errors.New("resgen: alias collision")
	// ErrEcosystemConfig indicates zero or several ecosystems are active.
	ErrEcosystemConfig = errors.New("resgen: ecosystem configuration error")
)

// InvalidInputError reports a definition that cannot be processed.
type InvalidInputError struct {
	Group   string // resource group name
	Field   string // field name (if applicable)
	Pos     string // source position (if known)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	var b strings.Builder
	if e.Pos != "" {
		b.WriteString(e.Pos)
		b.WriteString(": ")
	}
	b.WriteString("resgen: invalid input")
	writeSubject(&b, e.Group, e.Field)
	writeTail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(group, field, message string) *InvalidInputError {
	return &InvalidInputError{
		Group:   group,
		Field:   field,
		Message: message,
	}
}

// MalformedAliasError reports an alias directive whose value is not a valid reference.
type MalformedAliasError struct {
	Group   string
	Field   string
	Value   string // raw directive value
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *MalformedAliasError) Error() string {
	var b strings.Builder
	b.WriteString("resgen: malformed alias")
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	writeSubject(&b, e.Group, e.Field)
	writeTail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *MalformedAliasError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrMalformedAlias.
func (e *MalformedAliasError) Is(target error) bool {
	return target == ErrMalformedAlias
}

// NewMalformedAliasError creates a new MalformedAliasError.
func NewMalformedAliasError(group, field, value, message string) *MalformedAliasError {
	return &MalformedAliasError{
		Group:   group,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// AliasCollisionError reports two declarations of one group that share a name.
type AliasCollisionError struct {
	Group  string
	Name   string   // colliding identifier
	Fields []string // fields (or declarations) that produced Name, in order
}

// Error implements the error interface.
func (e *AliasCollisionError) Error() string {
	return fmt.Sprintf("resgen: alias collision on group %s: %q is declared by %s",
		e.Group, e.Name, strings.Join(e.Fields, " and "))
}

// Is reports whether the target matches ErrAliasCollision.
func (e *AliasCollisionError) Is(target error) bool {
	return target == ErrAliasCollision
}

// NewAliasCollisionError creates a new AliasCollisionError.
func NewAliasCollisionError(group, name string, fields ...string) *AliasCollisionError {
	return &AliasCollisionError{
		Group:  group,
		Name:   name,
		Fields: fields,
	}
}

// EcosystemError reports an invalid ecosystem selection. It is independent of
// any single definition.
type EcosystemError struct {
	Active  []string // ecosystems active at build time
	Message string
}

// Error implements the error interface.
func (e *EcosystemError) Error() string {
	if len(e.Active) > 0 {
		return fmt.Sprintf("resgen: %s (active: %s)", e.Message, strings.Join(e.Active, ", "))
	}
	return "resgen: " + e.Message
}

// Is reports whether the target matches ErrEcosystemConfig.
func (e *EcosystemError) Is(target error) bool {
	return target == ErrEcosystemConfig
}

// NewEcosystemError creates a new EcosystemError.
func NewEcosystemError(message string, active ...string) *EcosystemError {
	return &EcosystemError{
		Active:  active,
		Message: message,
	}
}

// IsInvalidInput reports whether the error is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var e *InvalidInputError
	return errors.As(err, &e)
}

// IsMalformedAlias reports whether the error is a MalformedAliasError.
func IsMalformedAlias(err error) bool {
	var e *MalformedAliasError
	return errors.As(err, &e)
}

// IsAliasCollision reports whether the error is an AliasCollisionError.
func IsAliasCollision(err error) bool {
	var e *AliasCollisionError
	return errors.As(err, &e)
}

// IsEcosystemError reports whether the error is an EcosystemError.
func IsEcosystemError(err error) bool {
	var e *EcosystemError
	return errors.As(err, &e)
}

func writeSubject(b *strings.Builder, group, field string) {
	if group != "" {
		b.WriteString(" on group ")
		b.WriteString(group)
	}
	if field != "" {
		b.WriteString(" field ")
		b.WriteString(field)
	}
}

func writeTail(b *strings.Builder, message string, cause error) {
	if message != "" {
		b.WriteString(": ")
		b.WriteString(message)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
}
