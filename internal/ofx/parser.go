// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	datePrefix      = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

var notePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"COMPRA POS ",
	"TRANSFERENCIA ",
}

var genericNames = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"DEPOSIT":         true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// Entry is one statement line before it is assigned to a category.
type Entry struct {
	FitID       string
	AccountID   string
	Transaction model.Transaction
}

// Parser reads OFX/QFX statements.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// preprocess repairs the formatting mistakes banks commonly ship.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagPattern.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(ctx context.Context, reader io.Reader) (*ofxgo.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile returns every statement line of the file, bank accounts first.
// Debits become expenses and credits incomes; amounts are always positive.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		entries = append(entries, convertAll(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		entries = append(entries, convertAll(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))...)
	}

	p.logger.Info("parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func convertAll(txns []ofxgo.Transaction, accountID string) []Entry {
	entries := make([]Entry, 0, len(txns))
	for _, tx := range txns {
		entries = append(entries, convert(tx, accountID))
	}
	return entries
}

func convert(tx ofxgo.Transaction, accountID string) Entry {
	amount, _ := tx.TrnAmt.Float64()
	typ := model.EntryTypeIncome
	if amount < 0 {
		typ = model.EntryTypeExpense
		amount = -amount
	}

	return Entry{
		FitID:     string(tx.FiTID),
		AccountID: accountID,
		Transaction: model.Transaction{
			Date:   tx.DtPosted.Time,
			Note:   extractNote(tx),
			Type:   typ,
			Amount: amount,
		},
	}
}

// extractNote picks the most descriptive text of a statement line.
func extractNote(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && genericNames[strings.ToUpper(name)] {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range notePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(datePrefix.ReplaceAllString(name, ""))
}

// Assign files each entry under the category of its own type. Entries whose
// type has no category are skipped and counted.
func Assign(entries []Entry, categories ...model.Category) ([]model.Transaction, int) {
	byType := make(map[model.EntryType]model.Category, len(categories))
	for _, cat := range categories {
		byType[cat.Type] = cat
	}

	txns := make([]model.Transaction, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		cat, ok := byType[e.Transaction.Type]
		if !ok {
			skipped++
			continue
		}
		txn := e.Transaction
		txn.Category = cat
		txn.CategoryID = cat.ID
		txns = append(txns, txn)
	}
	return txns, skipped
}

// GetAccounts lists the distinct account ids in the file, sorted.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			seen[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			seen[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(seen))
	for acct := range seen {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}
