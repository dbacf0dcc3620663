package repository

import (
	"context"
	"fmt"

	"gridiron/database"
	"gridiron/events"
	"gridiron/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus

	userRepo          service.UserRepository
	playerRepo        service.PlayerRepository
	matchRepo         service.MatchRepository
	statLineRepo      service.StatLineRepository
	rosterRepo        service.RosterRepository
	leagueRepo        service.LeagueRepository
	creditHistoryRepo service.CreditHistoryRepository
	settlementRepo    service.SettlementRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.playerRepo = newPlayerRepositoryWithTx(tx)
	u.matchRepo = newMatchRepositoryWithTx(tx)
	u.statLineRepo = newStatLineRepositoryWithTx(tx)
	u.rosterRepo = newRosterRepositoryWithTx(tx)
	u.leagueRepo = newLeagueRepositoryWithTx(tx)
	u.creditHistoryRepo = newCreditHistoryRepositoryWithTx(tx)
	u.settlementRepo = newSettlementRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// PlayerRepository returns the player repository for this unit of work
func (u *unitOfWork) PlayerRepository() service.PlayerRepository {
	if u.playerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.playerRepo
}

// MatchRepository returns the match repository for this unit of work
func (u *unitOfWork) MatchRepository() service.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

// StatLineRepository returns the stat line repository for this unit of work
func (u *unitOfWork) StatLineRepository() service.StatLineRepository {
	if u.statLineRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.statLineRepo
}

// RosterRepository returns the roster repository for this unit of work
func (u *unitOfWork) RosterRepository() service.RosterRepository {
	if u.rosterRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rosterRepo
}

// LeagueRepository returns the league repository for this unit of work
func (u *unitOfWork) LeagueRepository() service.LeagueRepository {
	if u.leagueRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.leagueRepo
}

// CreditHistoryRepository returns the ledger repository for this unit of work
func (u *unitOfWork) CreditHistoryRepository() service.CreditHistoryRepository {
	if u.creditHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.creditHistoryRepo
}

// SettlementRepository returns the settlement repository for this unit of work
func (u *unitOfWork) SettlementRepository() service.SettlementRepository {
	if u.settlementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settlementRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
