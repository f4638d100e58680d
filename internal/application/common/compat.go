// Package common gathers what every game and ledger handler needs: the mediator
// contract, the context logger and the per-session locks.
package common

import (
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/logging"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/mediator"
)

type (
	Mediator       = mediator.Mediator
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware

	ContainerLogger = logging.ContainerLogger
)

var (
	NewMediator       = mediator.NewMediator
	WithLogger        = logging.WithLogger
	LoggerFromContext = logging.LoggerFromContext
)
