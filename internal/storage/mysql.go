package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"flowcash/internal/core"
	"flowcash/internal/ledger"
	applog "flowcash/internal/log"

	"github.com/go-sql-driver/mysql"
)

// MySQLRepository backs the ledger ports with a shared MySQL server.
// The DSN is normalized to carry parseTime so date columns scan into
// time.Time.
type MySQLRepository struct {
	db *sql.DB
}

var (
	_ ledger.TransactionStore = (*MySQLRepository)(nil)
	_ ledger.ProfileStore     = (*MySQLRepository)(nil)
	_ ledger.UserStore        = (*MySQLRepository)(nil)
)

func NewMySQLRepository(dsn string) (*MySQLRepository, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	// Migration files hold several statements each.
	cfg.MultiStatements = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMySQLMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &MySQLRepository{db: db}, nil
}

func (r *MySQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *MySQLRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, tx_type, tx_date
		FROM transactions
		WHERE user_id = ?
		ORDER BY tx_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []core.Transaction{}
	for rows.Next() {
		var (
			tx    core.Transaction
			cents int64
			typ   string
			date  time.Time
		)
		if err := rows.Scan(&tx.ID, &tx.Description, &cents, &typ, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount = core.Money{Cents: cents}
		tx.Type = core.TxType(typ)
		// Stored as UTC; day filtering compares local calendar components.
		tx.Date = date.In(time.Local)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

func (r *MySQLRepository) SaveTransaction(ctx context.Context, userID string, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, description, amount_cents, tx_type, tx_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			description  = VALUES(description),
			amount_cents = VALUES(amount_cents),
			tx_type      = VALUES(tx_type),
			tx_date      = VALUES(tx_date)`,
		tx.ID, userID, tx.Description, tx.Amount.Cents, string(tx.Type), tx.Date.UTC())
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to MySQL",
		applog.FieldTxID, tx.ID,
		applog.FieldUserID, userID,
		applog.FieldTxType, string(tx.Type),
		applog.FieldAmountCents, tx.Amount.Cents)

	return nil
}

func (r *MySQLRepository) DeleteTransaction(ctx context.Context, userID, txID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, txID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *MySQLRepository) LoadProfile(ctx context.Context, userID string) (*core.Profile, error) {
	var p core.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT name, email, avatar_url, company_name, company_document, phone
		FROM profiles
		WHERE user_id = ?`, userID).
		Scan(&p.Name, &p.Email, &p.AvatarURL, &p.CompanyName, &p.CompanyDocument, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

func (r *MySQLRepository) SaveProfile(ctx context.Context, userID string, p core.Profile) error {
	existing, err := r.LoadProfile(ctx, userID)
	if err != nil {
		return err
	}
	merged := p
	if existing != nil {
		merged = p.Merge(*existing)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, email, avatar_url, company_name, company_document, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name             = VALUES(name),
			email            = VALUES(email),
			avatar_url       = VALUES(avatar_url),
			company_name     = VALUES(company_name),
			company_document = VALUES(company_document),
			phone            = VALUES(phone)`,
		userID, merged.Name, merged.Email, merged.AvatarURL,
		merged.CompanyName, merged.CompanyDocument, merged.Phone)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	slog.InfoContext(ctx, "Profile saved to MySQL", applog.FieldUserID, userID)
	return nil
}

func (r *MySQLRepository) CreateUser(ctx context.Context, u ledger.Account) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, u.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists > 0 {
		return ledger.ErrEmailTaken
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", applog.FieldUserID, u.ID)
	return nil
}

func (r *MySQLRepository) UserByEmail(ctx context.Context, email string) (*ledger.Account, error) {
	return r.userBy(ctx, `SELECT id, email, name, password_hash FROM users WHERE email = ?`, email)
}

func (r *MySQLRepository) UserByID(ctx context.Context, id string) (*ledger.Account, error) {
	return r.userBy(ctx, `SELECT id, email, name, password_hash FROM users WHERE id = ?`, id)
}

func (r *MySQLRepository) userBy(ctx context.Context, query, arg string) (*ledger.Account, error) {
	var u ledger.Account
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}
