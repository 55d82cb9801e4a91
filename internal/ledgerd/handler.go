package ledgerd

import (
	"encoding/json"
	"errors"

	"moneymgr/internal/entity"
	"moneymgr/internal/ledgerd/store"
	"moneymgr/internal/wire"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewTransactionHandler(s store.Store, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		store:  s,
		logger: logger,
	}
}

// List returns every transaction, or those of one day with ?date=YYYY-MM-DD.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var (
		txns []entity.Transaction
		err  error
	)

	if raw := c.Query("date"); raw != "" {
		date, perr := entity.ParseDate(raw)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "date must be in YYYY-MM-DD format",
			})
		}
		txns, err = h.store.ListByDate(c.UserContext(), date)
	} else {
		txns, err = h.store.List(c.UserContext())
	}
	if err != nil {
		return h.internal(c, "List transactions failed", err)
	}

	out := make([]wire.Transaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, wire.FromEntity(t))
	}
	return c.JSON(out)
}

// Balance returns total income minus total expense as a JSON number.
func (h *TransactionHandler) Balance(c *fiber.Ctx) error {
	txns, err := h.store.List(c.UserContext())
	if err != nil {
		return h.internal(c, "Balance failed", err)
	}
	return c.JSON(json.Number(entity.Balance(txns).StringFixed(2)))
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	t, err := h.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, entity.NotFoundErr) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return h.internal(c, "Get transaction failed", err)
	}

	return c.JSON(wire.FromEntity(t))
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	fields, err := h.parseBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	t, err := h.store.Create(c.UserContext(), fields)
	if err != nil {
		return h.internal(c, "Create transaction failed", err)
	}

	h.logger.Info("Transaction created", zap.String("id", t.ID))
	return c.JSON(wire.FromEntity(t))
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	fields, err := h.parseBody(c)
	if err != nil {
		return badRequest(c, err)
	}

	id := c.Params("id")
	if err := h.store.Update(c.UserContext(), id, fields); err != nil {
		if errors.Is(err, entity.NotFoundErr) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return h.internal(c, "Update transaction failed", err)
	}

	return c.JSON(wire.FromEntity(entity.Transaction{ID: id, Fields: fields}))
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.internal(c, "Delete transaction failed", err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *TransactionHandler) parseBody(c *fiber.Ctx) (entity.Fields, error) {
	var body wire.Body
	if err := c.BodyParser(&body); err != nil {
		return entity.Fields{}, &entity.ValidationError{Field: "body", Reason: "is not valid JSON"}
	}
	return body.Fields()
}

func (h *TransactionHandler) internal(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
