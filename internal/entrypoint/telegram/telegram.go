package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"moneymgr/internal/entity"
	"moneymgr/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type handler func(ctx context.Context, args string) (*reply, error)

type Bot struct {
	api     *tgbotapi.BotAPI
	adminID int64

	idempotence *usecase.Idempotence
	session     *usecase.Session
	login       *usecase.Login
	logout      *usecase.Logout
	currentUser *usecase.CurrentUser
	logger      *zap.Logger

	commands map[string]handler
}

func New(
	token string,
	adminID int64,
	idempotence *usecase.Idempotence,
	session *usecase.Session,
	login *usecase.Login,
	logout *usecase.Logout,
	currentUser *usecase.CurrentUser,
	logger *zap.Logger,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return newBot(botAPI, adminID, idempotence, session, login, logout, currentUser, logger), nil
}

func newBot(
	api *tgbotapi.BotAPI,
	adminID int64,
	idempotence *usecase.Idempotence,
	session *usecase.Session,
	login *usecase.Login,
	logout *usecase.Logout,
	currentUser *usecase.CurrentUser,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:     api,
		adminID: adminID,

		idempotence: idempotence,
		session:     session,
		login:       login,
		logout:      logout,
		currentUser: currentUser,
		logger:      logger,

		commands: make(map[string]handler),
	}

	b.Register("add", b.addTransaction)
	b.Register("edit", b.editTransaction)
	b.Register("delete", b.deleteTransaction)
	b.Register("list", b.listTransactions)
	b.Register("sync", b.sync)
	b.Register("login", b.loginUser)
	b.Register("logout", b.logoutUser)
	b.Register("whoami", b.whoami)

	return b
}

func (b *Bot) Register(command string, h handler) {
	b.commands[command] = h
}

func (b *Bot) Start(ctx context.Context) {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = 60

	updates := b.api.GetUpdatesChan(config)
	go b.HandleUpdates(ctx, updates)
}

// HandleUpdates processes updates one at a time, so every command runs to
// completion before the next one starts.
func (b *Bot) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		user := update.SentFrom()
		if user == nil || user.ID != b.adminID {
			continue
		}

		if ok, err := b.checkIfFirstHandle(update); err != nil {
			b.logger.Error("idempotence check failed", zap.Error(err))
			continue
		} else if !ok {
			continue
		}

		if update.Message != nil {
			if !update.Message.IsCommand() {
				continue
			}

			r, err := b.dispatch(ctx, update.Message.Command(), update.Message.CommandArguments())
			if err != nil {
				b.handleError(update.Message, err)
				continue
			}

			message := tgbotapi.NewMessage(update.Message.Chat.ID, r.text)
			if r.inlineKeyboard != nil {
				message.ReplyMarkup = r.inlineKeyboard
			}
			b.send(message)
		}

		// Inline-mode callbacks carry no message to edit.
		if update.CallbackQuery != nil && update.CallbackQuery.Message == nil {
			b.logger.Debug("callback without message ignored", zap.String("data", update.CallbackQuery.Data))
			continue
		}

		if update.CallbackQuery != nil {
			ca := strings.SplitN(update.CallbackQuery.Data, " ", 2)
			if len(ca) != 2 {
				continue
			}

			r, err := b.dispatch(ctx, ca[0], ca[1])
			if err != nil {
				b.handleError(update.CallbackQuery.Message, err)
				continue
			}

			message := tgbotapi.NewEditMessageText(update.CallbackQuery.Message.Chat.ID, update.CallbackQuery.Message.MessageID, r.text)
			message.ReplyMarkup = r.inlineKeyboard
			b.send(message)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, command, args string) (*reply, error) {
	h, ok := b.commands[command]
	if !ok {
		return nil, fmt.Errorf("unknown command /%s", command)
	}
	return h(ctx, args)
}

func (b *Bot) checkIfFirstHandle(update tgbotapi.Update) (bool, error) {
	return b.idempotence.Execute("telegram" + strconv.Itoa(update.UpdateID))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("telegram send failed", zap.Error(err))
	}
}

func (b *Bot) handleError(message *tgbotapi.Message, err error) {
	b.send(tgbotapi.NewMessage(message.Chat.ID, err.Error()))
}

func (b *Bot) addTransaction(ctx context.Context, args string) (*reply, error) {
	draft, err := draftParser(args)
	if err != nil {
		return nil, err
	}

	notice, err := b.session.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	return noticeReply(notice, "Transaction added"), nil
}

func (b *Bot) editTransaction(ctx context.Context, args string) (*reply, error) {
	id, draft, err := editParser(args)
	if err != nil {
		return nil, err
	}

	notice, err := b.session.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	return noticeReply(notice, "Transaction updated"), nil
}

func (b *Bot) deleteTransaction(ctx context.Context, args string) (*reply, error) {
	id, err := idParser(args)
	if err != nil {
		return nil, err
	}

	notice := b.session.Delete(ctx, id)
	return noticeReply(notice, "Transaction deleted"), nil
}

// listTransactions shows the whole view, or one day of it with day-by-day
// navigation when a date is given.
func (b *Bot) listTransactions(_ context.Context, args string) (*reply, error) {
	date, err := dateParser(args)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", args, err)
	}

	var transactions []entity.Transaction
	for _, t := range b.session.Snapshot() {
		if date.IsZero() || t.Date == date {
			transactions = append(transactions, t)
		}
	}

	keyboard := newInlineKeyboard(4)
	var message strings.Builder

	switch {
	case len(transactions) == 0 && date.IsZero():
		message.WriteString("No transactions yet")
	case len(transactions) == 0:
		message.WriteString("No transactions for " + date.String())
	default:
		if date.IsZero() {
			message.WriteString("Transactions:\n\n")
		} else {
			message.WriteString("Transactions for " + date.String() + ":\n\n")
		}
		for i, t := range transactions {
			message.WriteString(formatTransaction(i+1, t))
			keyboard.addButton(fmt.Sprintf("🗑 %d", i+1), "delete "+t.ID)
		}
	}

	if !date.IsZero() {
		keyboard.addRow()
		keyboard.addButton("⬅️", "list "+date.Time().AddDate(0, 0, -1).Format(entity.DateFormat))
		keyboard.addButton("➡️", "list "+date.Time().AddDate(0, 0, 1).Format(entity.DateFormat))
	}

	return &reply{text: message.String(), inlineKeyboard: keyboard.markup()}, nil
}

func (b *Bot) sync(ctx context.Context, _ string) (*reply, error) {
	result := b.session.Push(ctx)
	txns := b.session.Refresh(ctx)

	text := fmt.Sprintf("Pushed %d, kept %d offline. %d transactions in view.",
		len(result.Pushed), len(result.Kept), len(txns))
	if len(result.Dropped) > 0 {
		text += fmt.Sprintf("\nDropped %d edits of transactions deleted from the ledger.", len(result.Dropped))
	}
	return textReply(text), nil
}

func (b *Bot) loginUser(_ context.Context, args string) (*reply, error) {
	email, name, err := loginParser(args)
	if err != nil {
		return nil, err
	}

	u, err := b.login.Execute(name, email)
	if err != nil {
		return nil, err
	}

	return textReply("Logged in as " + u.Name + " <" + u.Email + ">"), nil
}

func (b *Bot) logoutUser(_ context.Context, _ string) (*reply, error) {
	if err := b.logout.Execute(); err != nil {
		return nil, err
	}
	return textReply("Logged out"), nil
}

func (b *Bot) whoami(_ context.Context, _ string) (*reply, error) {
	u, ok, err := b.currentUser.Execute()
	if err != nil {
		return nil, err
	}
	if !ok {
		return textReply("Not logged in"), nil
	}
	return textReply(u.Name + " <" + u.Email + ">"), nil
}

func noticeReply(notice *entity.Notice, done string) *reply {
	if notice != nil {
		return textReply(notice.Message())
	}
	return textReply(done)
}

func formatTransaction(n int, t entity.Transaction) string {
	line := fmt.Sprintf("%d. %s %s %s: %s", n, t.Date, t.Type, t.Amount.StringFixed(2), t.Description)
	if t.Pending() {
		line += " (offline)"
	}
	return line + "\n"
}

// PruneEvery drops idempotence records older than a week, once per interval.
func (b *Bot) PruneEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := b.idempotence.Forget(7 * 24 * time.Hour); err != nil {
				b.logger.Warn("idempotence prune failed", zap.Error(err))
			} else if n > 0 {
				b.logger.Debug("idempotence pruned", zap.Int("records", n))
			}
		}
	}
}
