package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// CreateBatch persists a day's transactions in one database transaction.
// Slice order is kept as the within-day sequence.
func (r *GormTransactionRepository) CreateBatch(ctx context.Context, transactions []*ledger.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	models := make([]*TransactionModel, len(transactions))
	for i, tx := range transactions {
		model, err := r.transactionToModel(tx, i)
		if err != nil {
			return fmt.Errorf("failed to convert transaction to model: %w", err)
		}
		models[i] = model
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to create transactions: %w", err)
		}
		return nil
	})
}

// FindBySession retrieves a session's transactions with optional filtering
func (r *GormTransactionRepository) FindBySession(ctx context.Context, key shared.SessionKey, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := conn(ctx, r.db).
		Where("user_id = ? AND level_id = ?", key.UserID.Value(), key.LevelID.Int())

	// Apply filters
	query = r.applyFilters(query, opts)

	// Apply sorting
	if opts.OrderBy == "day DESC" {
		query = query.Order("day DESC").Order("sequence DESC")
	} else {
		query = query.Order("day ASC").Order("sequence ASC")
	}

	// Apply pagination
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := r.modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}

	return transactions, nil
}

// CountBySession counts a session's transactions matching the filters
func (r *GormTransactionRepository) CountBySession(ctx context.Context, key shared.SessionKey, opts ledger.QueryOptions) (int, error) {
	query := conn(ctx, r.db).
		Model(&TransactionModel{}).
		Where("user_id = ? AND level_id = ?", key.UserID.Value(), key.LevelID.Int())
	query = r.applyFilters(query, opts)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(count), nil
}

// DeleteBySession removes every transaction of a session
func (r *GormTransactionRepository) DeleteBySession(ctx context.Context, key shared.SessionKey) error {
	result := conn(ctx, r.db).
		Where("user_id = ? AND level_id = ?", key.UserID.Value(), key.LevelID.Int()).
		Delete(&TransactionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transactions: %w", result.Error)
	}
	return nil
}

// applyFilters applies query options to a GORM query
func (r *GormTransactionRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	// Day range filtering
	if opts.FromDay > 0 {
		query = query.Where("day >= ?", opts.FromDay)
	}
	if opts.ToDay > 0 {
		query = query.Where("day <= ?", opts.ToDay)
	}

	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}

	return query
}

// modelToTransaction converts database model to domain entity
func (r *GormTransactionRepository) modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ID in database: %w", err)
	}

	userID, err := shared.NewUserID(model.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %w", err)
	}

	levelID, err := shared.NewLevelID(model.LevelID)
	if err != nil {
		return nil, fmt.Errorf("invalid level ID in database: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}

	var metadata map[string]interface{}
	if model.Metadata != "" {
		if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
			// If unmarshal fails, leave metadata as nil
			metadata = nil
		}
	}

	return ledger.ReconstructTransaction(
		id,
		userID,
		levelID,
		model.Day,
		model.Timestamp,
		transactionType,
		category,
		model.Amount,
		model.BalanceBefore,
		model.BalanceAfter,
		model.Description,
		metadata,
	), nil
}

// transactionToModel converts domain entity to database model
func (r *GormTransactionRepository) transactionToModel(tx *ledger.Transaction, sequence int) (*TransactionModel, error) {
	var metadataJSON string
	if tx.Metadata() != nil {
		bytes, err := json.Marshal(tx.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = string(bytes)
	}

	return &TransactionModel{
		ID:              tx.ID().String(),
		UserID:          tx.UserID().Value(),
		LevelID:         tx.LevelID().Int(),
		Day:             tx.Day(),
		Sequence:        sequence,
		Timestamp:       tx.Timestamp(),
		TransactionType: tx.TransactionType().String(),
		Category:        tx.Category().String(),
		Amount:          tx.Amount(),
		BalanceBefore:   tx.BalanceBefore(),
		BalanceAfter:    tx.BalanceAfter(),
		Description:     tx.Description(),
		Metadata:        metadataJSON,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
