package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/persistence"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/setup"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/config"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/database"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/logging"
)

// engine runs commands and queries in-process against the configured database
type engine struct {
	mediator common.Mediator
	logger   common.ContainerLogger
	catalog  *levels.Catalog
	db       *gorm.DB
}

func newEngine() (*engine, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	catalog, err := levels.NewCatalog(cfg.Game.LevelsDir)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}

	m := common.NewMediator()
	registry := setup.NewHandlerRegistry(
		persistence.NewGormSessionRepository(db),
		persistence.NewGormPerformanceRepository(db),
		persistence.NewGormTransactionRepository(db),
		persistence.NewGormUnitOfWork(db),
		catalog,
		nil,
	)
	if err := registry.RegisterAll(m); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}

	return &engine{
		mediator: m,
		logger:   logging.NewStdLogger(os.Stderr, level, "text"),
		catalog:  catalog,
		db:       db,
	}, nil
}

func (e *engine) send(ctx context.Context, request common.Request) (common.Response, error) {
	return e.mediator.Send(common.WithLogger(ctx, e.logger), request)
}

func (e *engine) Close() error {
	return database.Close(e.db)
}

// withEngine opens the engine for the duration of fn
func withEngine(fn func(ctx context.Context, e *engine) error) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(context.Background(), e)
}

// resolveUser resolves the user id from flags or defaults
// Priority: --user flag > profile default
func resolveUser() (string, error) {
	if userFlag != "" {
		return userFlag, nil
	}

	profile, err := loadProfile()
	if err != nil {
		return "", fmt.Errorf("no user specified and failed to load profile: %w", err)
	}
	if profile.UserID != "" {
		return profile.UserID, nil
	}

	return "", fmt.Errorf("no user specified: use --user, or set a default with 'lthgame config set-user'")
}

// resolveLevel resolves the level id from flags or defaults
// Priority: --level flag > profile default
func resolveLevel() (int, error) {
	if levelFlag != unsetLevel {
		return levelFlag, nil
	}

	profile, err := loadProfile()
	if err != nil {
		return 0, fmt.Errorf("no level specified and failed to load profile: %w", err)
	}
	if profile.LevelID != nil {
		return *profile.LevelID, nil
	}

	return 0, fmt.Errorf("no level specified: use --level, or set a default with 'lthgame config set-level'")
}

func resolveSession() (string, int, error) {
	user, err := resolveUser()
	if err != nil {
		return "", 0, err
	}
	level, err := resolveLevel()
	if err != nil {
		return "", 0, err
	}
	return user, level, nil
}

func loadProfile() (*config.Profile, error) {
	store, err := config.OpenProfileStore()
	if err != nil {
		return nil, err
	}
	return store.Load()
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatMoney formats a currency amount with thousands separators and two decimals
func formatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := fmt.Sprintf("%.2f", amount)
	intPart, frac := whole[:len(whole)-3], whole[len(whole)-3:]
	return sign + addThousandsSeparator(intPart) + frac
}

// formatSigned prefixes non-negative amounts with "+"
func formatSigned(amount float64) string {
	if amount >= 0 {
		return "+" + formatMoney(amount)
	}
	return formatMoney(amount)
}

// addThousandsSeparator adds commas to a digit string (e.g., "1234567" -> "1,234,567")
func addThousandsSeparator(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
