package database

import (
	"database/sql"
	stdlog "log"

	"github.com/wilqq-the/btc-tracker/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateTransactionsTable()

	// Duplicate policy is decided at import time per request, so the
	// transactions table deliberately carries no uniqueness constraint.
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		btc_amount TEXT NOT NULL,
		price_per_btc TEXT NOT NULL,
		currency TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		fees TEXT NOT NULL,
		fees_currency TEXT NOT NULL,
		transaction_date TEXT NOT NULL,
		notes TEXT,
		transfer_type TEXT,
		destination_address TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_date
		ON transactions(user_id, transaction_date);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateTransactionsTable adds columns introduced after the first release
// to existing databases. Transfer support shipped later than the base
// schema, so those two columns may be missing.
func migrateTransactionsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'transactions' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'transactions' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'transactions' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'transactions' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(transactions)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'transactions'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'transactions': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'transactions'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'transactions': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'transactions'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'transactions': %v", err)
		}
		return
	}

	if _, ok := columnExists["transfer_type"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN transfer_type TEXT"); err != nil {
			logger.L.Error("Error adding 'transfer_type' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'transfer_type' column to 'transactions' table")
		}
	}
	if _, ok := columnExists["destination_address"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN destination_address TEXT"); err != nil {
			logger.L.Error("Error adding 'destination_address' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'destination_address' column to 'transactions' table")
		}
	}
	if _, ok := columnExists["fees_currency"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN fees_currency TEXT NOT NULL DEFAULT ''"); err != nil {
			logger.L.Error("Error adding 'fees_currency' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'fees_currency' column to 'transactions' table")
			if _, err := DB.Exec("UPDATE transactions SET fees_currency = currency WHERE fees_currency = ''"); err != nil {
				logger.L.Error("Error backfilling 'fees_currency' values", "error", err)
			}
		}
	}
}
