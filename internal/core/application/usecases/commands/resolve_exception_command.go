package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

// ResolveExceptionCommand represents a request to close an open exception.
type ResolveExceptionCommand struct { //nolint:recvcheck //using for validation
	exceptionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveExceptionCommand creates a command to resolve an exception.
func NewResolveExceptionCommand(exceptionID kernel.UUID) (ResolveExceptionCommand, error) {
	cmd := ResolveExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setExceptionID(exceptionID); err != nil {
		return ResolveExceptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

// ExceptionID returns the exception being resolved.
func (c ResolveExceptionCommand) ExceptionID() kernel.UUID {
	return c.exceptionID
}

func (c *ResolveExceptionCommand) setExceptionID(exceptionID kernel.UUID) error {
	if err := exceptionID.Validate(); err != nil {
		return err
	}

	c.exceptionID = exceptionID
	return nil
}
