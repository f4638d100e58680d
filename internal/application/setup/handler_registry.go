package setup

import (
	"fmt"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	gameCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/commands"
	gameQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/game/queries"
	ledgerCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/commands"
	ledgerQueries "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/queries"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/logging"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/mediator"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	sessionRepo     game.SessionRepository
	performanceRepo game.PerformanceRepository
	transactionRepo ledger.TransactionRepository
	unitOfWork      shared.UnitOfWork
	levels          level.Catalog
	locks           *common.SessionLocks
	clock           shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// unitOfWork must span all three repositories.
func NewHandlerRegistry(
	sessionRepo game.SessionRepository,
	performanceRepo game.PerformanceRepository,
	transactionRepo ledger.TransactionRepository,
	unitOfWork shared.UnitOfWork,
	levels level.Catalog,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		sessionRepo:     sessionRepo,
		performanceRepo: performanceRepo,
		transactionRepo: transactionRepo,
		unitOfWork:      unitOfWork,
		levels:          levels,
		locks:           common.NewSessionLocks(),
		clock:           clock,
	}
}

// RegisterAll registers every game and ledger handler with the mediator,
// plus the session logging middleware
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	m.RegisterMiddleware(logging.SessionMiddleware())
	if err := r.RegisterGameHandlers(m); err != nil {
		return err
	}
	return r.RegisterLedgerHandlers(m)
}

// RegisterGameHandlers registers session, level and performance handlers
//
// The ProcessDay handler sends RecordDayTransactionsCommand through the same
// mediator, so ledger handlers must be registered on m as well.
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	registrations := []struct {
		name     string
		register func() error
	}{
		{"StartGameCommand", func() error {
			return mediator.RegisterHandler[*gameCommands.StartGameCommand](m,
				gameCommands.NewStartGameHandler(r.sessionRepo, r.transactionRepo, r.levels, r.unitOfWork, r.locks, r.clock))
		}},
		{"ProcessDayCommand", func() error {
			return mediator.RegisterHandler[*gameCommands.ProcessDayCommand](m,
				gameCommands.NewProcessDayHandler(r.sessionRepo, r.performanceRepo, r.levels, m, r.unitOfWork, r.locks, r.clock))
		}},
		{"ValidateActionQuery", func() error {
			return mediator.RegisterHandler[*gameQueries.ValidateActionQuery](m,
				gameQueries.NewValidateActionHandler(r.sessionRepo, r.levels))
		}},
		{"GetSessionQuery", func() error {
			return mediator.RegisterHandler[*gameQueries.GetSessionQuery](m, gameQueries.NewGetSessionHandler(r.sessionRepo))
		}},
		{"ListLevelsQuery", func() error {
			return mediator.RegisterHandler[*gameQueries.ListLevelsQuery](m, gameQueries.NewListLevelsHandler(r.levels))
		}},
		{"GetLevelQuery", func() error {
			return mediator.RegisterHandler[*gameQueries.GetLevelQuery](m, gameQueries.NewGetLevelHandler(r.levels))
		}},
		{"ListPerformancesQuery", func() error {
			return mediator.RegisterHandler[*gameQueries.ListPerformancesQuery](m,
				gameQueries.NewListPerformancesHandler(r.performanceRepo))
		}},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", reg.name, err)
		}
	}
	return nil
}

// RegisterLedgerHandlers registers all ledger command and query handlers with the mediator
//
// This method registers:
//   - RecordDayTransactionsCommand → RecordDayTransactionsHandler (sent by ProcessDayHandler)
//   - GetProfitLossQuery → GetProfitLossHandler (for P&L reports)
//   - GetCashFlowQuery → GetCashFlowHandler (for cash flow reports)
//   - GetTransactionsQuery → GetTransactionsHandler (for transaction listings)
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	recordHandler := ledgerCommands.NewRecordDayTransactionsHandler(r.transactionRepo, r.clock)
	if err := mediator.RegisterHandler[*ledgerCommands.RecordDayTransactionsCommand](m, recordHandler); err != nil {
		return fmt.Errorf("failed to register RecordDayTransactionsCommand handler: %w", err)
	}

	profitLossHandler := ledgerQueries.NewGetProfitLossHandler(r.transactionRepo)
	if err := mediator.RegisterHandler[*ledgerQueries.GetProfitLossQuery](m, profitLossHandler); err != nil {
		return fmt.Errorf("failed to register GetProfitLossQuery handler: %w", err)
	}

	cashFlowHandler := ledgerQueries.NewGetCashFlowHandler(r.transactionRepo)
	if err := mediator.RegisterHandler[*ledgerQueries.GetCashFlowQuery](m, cashFlowHandler); err != nil {
		return fmt.Errorf("failed to register GetCashFlowQuery handler: %w", err)
	}

	transactionsHandler := ledgerQueries.NewGetTransactionsHandler(r.transactionRepo)
	if err := mediator.RegisterHandler[*ledgerQueries.GetTransactionsQuery](m, transactionsHandler); err != nil {
		return fmt.Errorf("failed to register GetTransactionsQuery handler: %w", err)
	}

	return nil
}
