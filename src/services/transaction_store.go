package services

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wilqq-the/btc-tracker/src/database"
	"github.com/wilqq-the/btc-tracker/src/models"
)

// Decimals are stored as their exact text form; REAL columns would
// reintroduce the float drift the decimal type exists to avoid.

func insertTransaction(userID int64, tx *models.CanonicalTransaction) error {
	res, err := database.DB.Exec(`INSERT INTO transactions
		(user_id, type, btc_amount, price_per_btc, currency, total_amount, fees, fees_currency, transaction_date, notes, transfer_type, destination_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, string(tx.Type), tx.BTCAmount.String(), tx.PricePerBTC.String(),
		tx.Currency, tx.TotalAmount.String(), tx.Fees.String(), tx.FeesCurrency,
		tx.TransactionDate, tx.Notes, tx.TransferType, tx.DestinationAddress)
	if err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		tx.ID = id
	}
	return nil
}

func fetchTransactionsByDate(userID int64, date string) ([]models.CanonicalTransaction, error) {
	return queryTransactions(
		`SELECT id, type, btc_amount, price_per_btc, currency, total_amount, fees, fees_currency, transaction_date, notes, transfer_type, destination_address
		 FROM transactions WHERE user_id = ? AND transaction_date = ? ORDER BY id ASC`,
		userID, date)
}

func fetchUserTransactions(userID int64) ([]models.CanonicalTransaction, error) {
	return queryTransactions(
		`SELECT id, type, btc_amount, price_per_btc, currency, total_amount, fees, fees_currency, transaction_date, notes, transfer_type, destination_address
		 FROM transactions WHERE user_id = ? ORDER BY id ASC`,
		userID)
}

func deleteUserTransactions(userID int64) error {
	if _, err := database.DB.Exec(`DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("error deleting transactions for userID %d: %w", userID, err)
	}
	return nil
}

func queryTransactions(query string, args ...any) ([]models.CanonicalTransaction, error) {
	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.CanonicalTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (models.CanonicalTransaction, error) {
	var tx models.CanonicalTransaction
	var kind, btcAmount, price, total, fees string
	var notes, transferType, destination sql.NullString

	err := rows.Scan(&tx.ID, &kind, &btcAmount, &price, &tx.Currency, &total,
		&fees, &tx.FeesCurrency, &tx.TransactionDate, &notes, &transferType, &destination)
	if err != nil {
		return tx, fmt.Errorf("error scanning transaction row: %w", err)
	}

	tx.Type = models.TransactionKind(kind)
	tx.Notes = notes.String
	tx.TransferType = transferType.String
	tx.DestinationAddress = destination.String

	if tx.BTCAmount, err = decimal.NewFromString(btcAmount); err != nil {
		return tx, fmt.Errorf("corrupt btc_amount %q for transaction %d: %w", btcAmount, tx.ID, err)
	}
	if tx.PricePerBTC, err = decimal.NewFromString(price); err != nil {
		return tx, fmt.Errorf("corrupt price_per_btc %q for transaction %d: %w", price, tx.ID, err)
	}
	if tx.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return tx, fmt.Errorf("corrupt total_amount %q for transaction %d: %w", total, tx.ID, err)
	}
	if tx.Fees, err = decimal.NewFromString(fees); err != nil {
		return tx, fmt.Errorf("corrupt fees %q for transaction %d: %w", fees, tx.ID, err)
	}
	return tx, nil
}
