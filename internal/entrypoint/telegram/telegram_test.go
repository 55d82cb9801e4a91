package telegram

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"moneymgr/internal/entity"
	"moneymgr/internal/usecase"
	"moneymgr/internal/usecase/repository/cache"
	"moneymgr/internal/usecase/repository/idempotence"
	"moneymgr/internal/usecase/repository/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type stubLedger struct {
	txns []entity.Transaction
	down bool
	next int
}

func (l *stubLedger) List(context.Context) ([]entity.Transaction, error) {
	if l.down {
		return nil, entity.NetworkErr
	}
	return append([]entity.Transaction(nil), l.txns...), nil
}

func (l *stubLedger) Create(_ context.Context, f entity.Fields) (entity.Transaction, error) {
	if l.down {
		return entity.Transaction{}, entity.NetworkErr
	}
	l.next++
	t := entity.Transaction{ID: strconv.Itoa(l.next), Fields: f}
	l.txns = append([]entity.Transaction{t}, l.txns...)
	return t, nil
}

func (l *stubLedger) Update(_ context.Context, id string, f entity.Fields) error {
	if l.down {
		return entity.NetworkErr
	}
	for i := range l.txns {
		if l.txns[i].ID == id {
			l.txns[i].Fields = f
			return nil
		}
	}
	return entity.NotFoundErr
}

func (l *stubLedger) Delete(_ context.Context, id string) error {
	if l.down {
		return entity.NetworkErr
	}
	for i := range l.txns {
		if l.txns[i].ID == id {
			l.txns = append(l.txns[:i], l.txns[i+1:]...)
			return nil
		}
	}
	return entity.NotFoundErr
}

func newTestBot(t *testing.T, ledger *stubLedger) *Bot {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "bot.db"), 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()

	cacheRepo, err := cache.NewBoltDB(db, logger)
	require.NoError(t, err)
	userRepo, err := user.NewBoltDB(db)
	require.NoError(t, err)
	idempotenceRepo, err := idempotence.NewBoltDB(db)
	require.NoError(t, err)

	ids := entity.NewPendingIDs(func() time.Time { return time.UnixMilli(1700000000000) })
	session := usecase.NewSession(ledger, cacheRepo, ids, logger)

	return newBot(nil, 42,
		usecase.NewIdempotence(idempotenceRepo),
		session,
		usecase.NewLogin(userRepo),
		usecase.NewLogout(userRepo),
		usecase.NewCurrentUser(userRepo),
		logger,
	)
}

func groceries() entity.Transaction {
	return entity.Transaction{ID: "7", Fields: entity.Fields{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("42.5"),
		Type:        entity.Expense,
		Date:        entity.NewDate(2024, time.March, 2),
	}}
}

func TestAddTransaction(t *testing.T) {
	ledger := &stubLedger{next: 10}
	b := newTestBot(t, ledger)
	ctx := context.Background()

	r, err := b.dispatch(ctx, "add", "INCOME 1,200.50 2024-03-01 Salary March")
	require.NoError(t, err)
	assert.Equal(t, "Transaction added", r.text)

	require.Len(t, ledger.txns, 1)
	assert.Equal(t, "Salary March", ledger.txns[0].Description)
	assert.Equal(t, "1200.50", ledger.txns[0].Amount.StringFixed(2))
}

func TestAddTransactionInvalid(t *testing.T) {
	b := newTestBot(t, &stubLedger{})

	_, err := b.dispatch(context.Background(), "add", "INCOME 5")
	assert.Equal(t, errUsage, err)

	_, err = b.dispatch(context.Background(), "add", "GIFT 5 2024-03-01 Present")
	assert.True(t, entity.IsValidation(err))
}

func TestAddTransactionOffline(t *testing.T) {
	b := newTestBot(t, &stubLedger{down: true})

	r, err := b.dispatch(context.Background(), "add", "EXPENSE 3.20 2024-03-02 Coffee")
	require.NoError(t, err)
	assert.Equal(t, (&entity.Notice{Kind: entity.CreateSavedOffline}).Message(), r.text)

	r, err = b.dispatch(context.Background(), "list", "")
	require.NoError(t, err)
	assert.Contains(t, r.text, "Coffee (offline)")
}

func TestListTransactions(t *testing.T) {
	b := newTestBot(t, &stubLedger{txns: []entity.Transaction{groceries()}})
	ctx := context.Background()
	b.session.Refresh(ctx)

	r, err := b.dispatch(ctx, "list", "")
	require.NoError(t, err)
	assert.Equal(t, "Transactions:\n\n1. 2024-03-02 EXPENSE 42.50: Groceries\n", r.text)
	require.NotNil(t, r.inlineKeyboard)
	assert.Equal(t, "delete 7", *r.inlineKeyboard.InlineKeyboard[0][0].CallbackData)

	r, err = b.dispatch(ctx, "list", "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, "No transactions for 2024-03-03", r.text)
	require.NotNil(t, r.inlineKeyboard)
	require.Len(t, r.inlineKeyboard.InlineKeyboard, 1)
	assert.Equal(t, "list 2024-03-02", *r.inlineKeyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "list 2024-03-04", *r.inlineKeyboard.InlineKeyboard[0][1].CallbackData)

	_, err = b.dispatch(ctx, "list", "yesterday")
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	b := newTestBot(t, &stubLedger{})

	r, err := b.dispatch(context.Background(), "list", "")
	require.NoError(t, err)
	assert.Equal(t, "No transactions yet", r.text)
	assert.Nil(t, r.inlineKeyboard)
}

func TestEditAndDelete(t *testing.T) {
	ledger := &stubLedger{txns: []entity.Transaction{groceries()}}
	b := newTestBot(t, ledger)
	ctx := context.Background()
	b.session.Refresh(ctx)

	r, err := b.dispatch(ctx, "edit", "7 EXPENSE 40 2024-03-02 Groceries and milk")
	require.NoError(t, err)
	assert.Equal(t, "Transaction updated", r.text)
	assert.Equal(t, "Groceries and milk", ledger.txns[0].Description)

	_, err = b.dispatch(ctx, "edit", "99 EXPENSE 40 2024-03-02 Nothing")
	assert.True(t, errors.Is(err, entity.NotInViewErr))

	r, err = b.dispatch(ctx, "delete", "7")
	require.NoError(t, err)
	assert.Equal(t, "Transaction deleted", r.text)
	assert.Empty(t, ledger.txns)
	assert.Empty(t, b.session.Snapshot())
}

func TestSync(t *testing.T) {
	ledger := &stubLedger{down: true}
	b := newTestBot(t, ledger)
	ctx := context.Background()

	_, err := b.dispatch(ctx, "add", "EXPENSE 3.20 2024-03-02 Coffee")
	require.NoError(t, err)

	ledger.down = false
	r, err := b.dispatch(ctx, "sync", "")
	require.NoError(t, err)
	assert.Equal(t, "Pushed 1, kept 0 offline. 1 transactions in view.", r.text)
	require.Len(t, ledger.txns, 1)
	assert.False(t, b.session.Snapshot()[0].Pending())
}

func TestLoginLogout(t *testing.T) {
	b := newTestBot(t, &stubLedger{})
	ctx := context.Background()

	r, err := b.dispatch(ctx, "whoami", "")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in", r.text)

	_, err = b.dispatch(ctx, "login", "not-an-email Asha")
	assert.Error(t, err)

	r, err = b.dispatch(ctx, "login", "asha@example.com Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Asha Rao <asha@example.com>", r.text)

	r, err = b.dispatch(ctx, "whoami", "")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao <asha@example.com>", r.text)

	_, err = b.dispatch(ctx, "logout", "")
	require.NoError(t, err)
	r, err = b.dispatch(ctx, "whoami", "")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in", r.text)
}

func TestHandleUpdates_IgnoresCallbackWithoutMessage(t *testing.T) {
	ledger := &stubLedger{txns: []entity.Transaction{groceries()}}
	b := newTestBot(t, ledger)
	b.session.Refresh(context.Background())

	updates := make(chan tgbotapi.Update, 2)
	updates <- tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:              "cb",
			From:            &tgbotapi.User{ID: 42},
			InlineMessageID: "inline",
			Data:            "delete 7",
		},
	}
	updates <- tgbotapi.Update{
		UpdateID: 2,
		Message:  &tgbotapi.Message{From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: 7}, Text: "/delete 7"},
	}
	close(updates)

	assert.NotPanics(t, func() { b.HandleUpdates(context.Background(), updates) })
	assert.Len(t, ledger.txns, 1)
	assert.Len(t, b.session.Snapshot(), 1)
}

func TestUnknownCommand(t *testing.T) {
	b := newTestBot(t, &stubLedger{})

	_, err := b.dispatch(context.Background(), "balance", "")
	assert.EqualError(t, err, "unknown command /balance")
}
