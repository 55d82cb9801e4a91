package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type inlineKeyboard struct {
	rows             [][]tgbotapi.InlineKeyboardButton
	maxButtonsPerRow int
}

func newInlineKeyboard(maxButtonsPerRow int) *inlineKeyboard {
	return &inlineKeyboard{
		rows:             make([][]tgbotapi.InlineKeyboardButton, 0),
		maxButtonsPerRow: maxButtonsPerRow,
	}
}

func (k *inlineKeyboard) addButton(text, data string) {
	if len(k.rows) == 0 || len(k.rows[len(k.rows)-1]) == k.maxButtonsPerRow {
		k.addRow()
	}

	last := len(k.rows) - 1
	k.rows[last] = append(k.rows[last], tgbotapi.NewInlineKeyboardButtonData(text, data))
}

func (k *inlineKeyboard) addRow() {
	k.rows = append(k.rows, []tgbotapi.InlineKeyboardButton{})
}

// markup returns nil for a keyboard without buttons, which Telegram rejects.
func (k *inlineKeyboard) markup() *tgbotapi.InlineKeyboardMarkup {
	if len(k.rows) == 0 {
		return nil
	}
	return &tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: k.rows,
	}
}
