package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240130120000[0:GMT]
<TRNAMT>45000.00
<FITID>2024013001
<NAME>DEPOSIT
<MEMO>NOMINA ACME SRL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantCount int
		wantErr   bool
	}{
		{name: "bank statement", data: sampleBankOFX, wantCount: 4},
		{name: "credit card statement", data: sampleCreditCardOFX, wantCount: 2},
		{name: "leading blank lines", data: "\n\n  " + sampleCreditCardOFX, wantCount: 2},
		{name: "invalid data", data: "not valid OFX", wantErr: true},
		{name: "empty", data: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantCount)
		})
	}
}

func TestParseFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseBankEntries(t *testing.T) {
	entries, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	first := entries[0]
	assert.Equal(t, "2024011501", first.FitID)
	assert.Equal(t, "1234567890", first.AccountID)
	assert.Equal(t, "STARBUCKS STORE #1234", first.Transaction.Note)
	assert.Equal(t, 25.50, first.Transaction.Amount)
	assert.Equal(t, model.EntryTypeExpense, first.Transaction.Type)
	assert.Equal(t, 2024, first.Transaction.Date.Year())
	assert.Equal(t, time.January, first.Transaction.Date.Month())
	assert.Equal(t, 15, first.Transaction.Date.Day())

	assert.Equal(t, 125.00, entries[1].Transaction.Amount)
	assert.Equal(t, "CHECK #1234", entries[2].Transaction.Note)

	deposit := entries[3]
	assert.Equal(t, model.EntryTypeIncome, deposit.Transaction.Type)
	assert.Equal(t, 45000.00, deposit.Transaction.Amount)
	assert.Equal(t, "NOMINA ACME SRL", deposit.Transaction.Note)
}

func TestParseCreditCardEntries(t *testing.T) {
	entries, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "CC2024011001", entries[0].FitID)
	assert.Equal(t, "4111111111111111", entries[0].AccountID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", entries[0].Transaction.Note)
	assert.Equal(t, 45.99, entries[0].Transaction.Amount)
	assert.Equal(t, "NETFLIX.COM", entries[1].Transaction.Note)
}

func TestExtractNote(t *testing.T) {
	tests := []struct {
		name string
		tx   ofxgo.Transaction
		want string
	}{
		{name: "POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, want: "STARBUCKS"},
		{name: "debit card prefix", tx: ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"}, want: "WHOLE FOODS"},
		{name: "spanish prefix", tx: ofxgo.Transaction{Name: "COMPRA POS SUPERMERCADO NACIONAL"}, want: "SUPERMERCADO NACIONAL"},
		{name: "date prefix", tx: ofxgo.Transaction{Name: "01/15 SHELL OIL"}, want: "SHELL OIL"},
		{name: "clean name", tx: ofxgo.Transaction{Name: "NETFLIX.COM"}, want: "NETFLIX.COM"},
		{name: "whitespace", tx: ofxgo.Transaction{Name: "  AMAZON.COM  "}, want: "AMAZON.COM"},
		{name: "generic name uses memo", tx: ofxgo.Transaction{Name: "PAYMENT", Memo: "EDENORTE"}, want: "EDENORTE"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "ACH DEBIT 123", Payee: &ofxgo.Payee{Name: "Claro"}}, want: "Claro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractNote(tt.tx))
		})
	}
}

func TestAssign(t *testing.T) {
	entries, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	groceries := model.Category{ID: 3, Name: "Supermercado", Type: model.EntryTypeExpense}
	salary := model.Category{ID: 7, Name: "Salario", Type: model.EntryTypeIncome}

	t.Run("expense category only", func(t *testing.T) {
		txns, skipped := Assign(entries, groceries)
		assert.Equal(t, 1, skipped)
		require.Len(t, txns, 3)
		for _, txn := range txns {
			assert.Equal(t, 3, txn.CategoryID)
			assert.Equal(t, groceries, txn.Category)
			assert.Equal(t, model.EntryTypeExpense, txn.Type)
		}
	})

	t.Run("both types", func(t *testing.T) {
		txns, skipped := Assign(entries, groceries, salary)
		assert.Zero(t, skipped)
		require.Len(t, txns, 4)
		assert.Equal(t, 7, txns[3].CategoryID)
	})

	t.Run("reimport hashes match", func(t *testing.T) {
		again, err := NewParser(nil).ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
		require.NoError(t, err)
		first, _ := Assign(entries, groceries)
		second, _ := Assign(again, groceries)
		for i := range first {
			assert.Equal(t, first[i].GenerateHash(), second[i].GenerateHash())
		}
	})
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser(nil)

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
