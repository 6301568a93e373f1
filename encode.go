package analysiolo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DecodeTransactions reads transaction records from a flat file, one record
// per line: date, type (BUY or SELL), symbol, signed share count, price,
// separated by whitespace. Blank lines and lines starting with '#' are
// skipped. The records' ordering on disk is not checked here; that is the
// journal's job.
//
// A BUY record requires a positive share count, a SELL a negative one; a
// mismatch is a parse-level failure. Any failure aborts the whole batch, no
// partial list is returned.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tx, err := parseRecord(line, text)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transactions: %w", err)
	}
	return txs, nil
}

func parseRecord(line int, text string) (Transaction, error) {
	fail := func(reason string) (Transaction, error) {
		return Transaction{}, &ParseError{Line: line, Record: text, Reason: reason}
	}

	fields := strings.Fields(text)
	if len(fields) != 5 {
		return fail(fmt.Sprintf("want 5 fields (date type symbol shares price), got %d", len(fields)))
	}

	date, err := ParseDate(fields[0])
	if err != nil {
		return fail(err.Error())
	}

	txType := TxType(strings.ToUpper(fields[1]))
	if txType != TxBuy && txType != TxSell {
		return fail(fmt.Sprintf("unknown transaction type %q", fields[1]))
	}

	symbol := fields[2]

	shares, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return fail(fmt.Sprintf("invalid share count %q", fields[3]))
	}
	switch {
	case txType == TxBuy && shares <= 0:
		return fail(fmt.Sprintf("BUY requires a positive share count, got %d", shares))
	case txType == TxSell && shares >= 0:
		return fail(fmt.Sprintf("SELL requires a negative share count, got %d", shares))
	}

	price, err := decimal.NewFromString(fields[4])
	if err != nil {
		return fail(fmt.Sprintf("invalid price %q", fields[4]))
	}
	if price.IsNegative() {
		return fail(fmt.Sprintf("price must not be negative, got %s", price))
	}

	return Transaction{Date: date, Symbol: symbol, Shares: shares, Price: price}, nil
}

// EncodeTransaction writes a single transaction in the flat record format,
// followed by a newline.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	_, err := fmt.Fprintf(w, "%s %s %s %d %s\n", tx.Date, tx.Type(), tx.Symbol, tx.Shares, tx.Price)
	return err
}

// EncodeTransactions writes a transaction list in the flat record format.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}
	return nil
}
