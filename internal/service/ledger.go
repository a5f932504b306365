package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/metrics"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
)

// errAlreadyInState signals a suspicious toggle that lost the race to a
// concurrent identical toggle; callers treat it as an idempotent no-op.
var errAlreadyInState = errors.New("ALREADY_IN_STATE")

// LedgerEngine validates every point-affecting operation, appends its ledger
// rows and keeps the cached users.points column equal to the replayed
// balance, all inside one database transaction per operation.
type LedgerEngine interface {
	CreatePurchase(ctx context.Context, cmd CreatePurchaseCommand) (TransactionResult, error)
	CreateAdjustment(ctx context.Context, cmd CreateAdjustmentCommand) (TransactionResult, error)
	CreateEventAward(ctx context.Context, cmd CreateEventAwardCommand) ([]TransactionResult, error)
	CreateRedemption(ctx context.Context, cmd CreateRedemptionCommand) (TransactionResult, error)
	ProcessRedemption(ctx context.Context, cmd ProcessRedemptionCommand) (TransactionResult, error)
	CreateTransfer(ctx context.Context, cmd CreateTransferCommand) (TransferResult, error)
	SetSuspicious(ctx context.Context, cmd SetSuspiciousCommand) (TransactionResult, error)
	GetTransaction(ctx context.Context, actor Actor, id uint64) (TransactionResult, error)
	ListUserTransactions(ctx context.Context, actor Actor, utorid string) ([]TransactionResult, error)
	ListTransactions(ctx context.Context, actor Actor, limit, offset int) ([]TransactionResult, error)
}

type ledgerEngine struct {
	txManager       repository.TxManager
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	promotionRepo   repository.PromotionRepository
	eventRepo       repository.EventRepository
	evaluator       PromotionEvaluator
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewLedgerEngine(txManager repository.TxManager, userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository, promotionRepo repository.PromotionRepository,
	eventRepo repository.EventRepository, evaluator PromotionEvaluator,
	metrics *metrics.Metrics, logger *zap.Logger) LedgerEngine {
	return &ledgerEngine{
		txManager:       txManager,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		promotionRepo:   promotionRepo,
		eventRepo:       eventRepo,
		evaluator:       evaluator,
		metrics:         metrics,
		logger:          logger,
	}
}

func requireClearance(actor Actor, required model.Role) error {
	if actor.ID == 0 {
		return NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}
	if !actor.Role.AtLeast(required) {
		return NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
	}
	return nil
}

func (e *ledgerEngine) CreatePurchase(ctx context.Context, cmd CreatePurchaseCommand) (TransactionResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleCashier); err != nil {
		return TransactionResult{}, err
	}

	if cmd.Spent.IsNegative() {
		return TransactionResult{}, NewServiceError(constants.ErrCodeInvalidAmount,
			errors.New("INVALID_AMOUNT"))
	}

	subject, err := e.userRepo.GetByUTORid(ctx, cmd.UTORid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	cashier, err := e.userRepo.GetByID(ctx, cmd.Actor.ID)
	if err != nil {
		return TransactionResult{}, NewServiceError(constants.ErrCodeUnauthorized, err)
	}

	now := time.Now()
	applied, recorded, err := e.evaluator.ResolveForPurchase(ctx, cmd.Spent, cmd.PromotionIDs, now)
	if err != nil {
		return TransactionResult{}, err
	}

	computed := e.evaluator.ComputeEarned(cmd.Spent, applied)

	spent := cmd.Spent
	earned := computed
	if cashier.Suspicious {
		earned = 0
	}

	// The computed amount stays on the row even when the cashier is
	// suspicious, so clearing the flag later restores the exact
	// contribution.
	tx := model.Transaction{
		UTORid:      subject.UTORid,
		Type:        model.TxTypePurchase,
		Amount:      computed,
		Spent:       &spent,
		Earned:      &earned,
		Suspicious:  cashier.Suspicious,
		CreatedByID: cashier.ID,
		Remark:      cmd.Remark,
		CreatedAt:   now,
		Promotions:  recorded,
	}

	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := e.transactionRepo.Create(ctx, &tx); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if tx.Suspicious {
			return nil
		}

		return e.userRepo.AddPoints(ctx, subject.ID, computed)
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypePurchase), "db")
		e.logger.Error("Failed to create purchase",
			zap.String("utorid", subject.UTORid),
			zap.String("spent", spent.String()),
			zap.Error(err))
		return TransactionResult{}, err
	}

	e.metrics.RecordTransactionCreated(string(model.TxTypePurchase))
	e.logger.Info("Purchase recorded",
		zap.Uint64("transactionID", tx.ID),
		zap.String("utorid", subject.UTORid),
		zap.Int64("earned", earned),
		zap.Bool("suspicious", tx.Suspicious))

	return newTransactionResult(&tx), nil
}

func (e *ledgerEngine) CreateAdjustment(ctx context.Context, cmd CreateAdjustmentCommand) (TransactionResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return TransactionResult{}, err
	}

	related, err := e.transactionRepo.GetByID(ctx, cmd.RelatedID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	subject, err := e.userRepo.GetByUTORid(ctx, cmd.UTORid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	recorded, err := e.recordablePromotions(ctx, cmd.PromotionIDs)
	if err != nil {
		return TransactionResult{}, err
	}

	relatedID := related.ID
	audit := model.Transaction{
		UTORid:      subject.UTORid,
		Type:        model.TxTypeAdjustment,
		Amount:      cmd.Amount,
		RelatedID:   &relatedID,
		CreatedByID: cmd.Actor.ID,
		Remark:      cmd.Remark,
		CreatedAt:   time.Now(),
		Promotions:  recorded,
	}

	// The cache follows the change in the row's replayed contribution,
	// which carries the row's ledger direction: bumping a processed
	// redemption or a sender-side transfer row moves the balance the
	// opposite way. Suspicious and unprocessed rows contribute nothing,
	// so their delta is zero.
	adjusted := *related
	adjusted.Amount += cmd.Amount
	delta := ledgerEffect(&adjusted, subject.ID) - ledgerEffect(related, subject.ID)

	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		bumpEarned := related.Type == model.TxTypePurchase
		if err := e.transactionRepo.AdjustAmount(ctx, related.ID, cmd.Amount, bumpEarned); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := e.transactionRepo.Create(ctx, &audit); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if delta == 0 {
			return nil
		}

		return e.userRepo.AddPoints(ctx, subject.ID, delta)
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypeAdjustment), "db")
		return TransactionResult{}, err
	}

	e.metrics.RecordTransactionCreated(string(model.TxTypeAdjustment))
	e.logger.Info("Adjustment recorded",
		zap.Uint64("transactionID", audit.ID),
		zap.Uint64("relatedID", related.ID),
		zap.Int64("amount", cmd.Amount))

	return newTransactionResult(&audit), nil
}

func (e *ledgerEngine) CreateEventAward(ctx context.Context, cmd CreateEventAwardCommand) ([]TransactionResult, error) {
	if cmd.Actor.ID == 0 {
		return nil, NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	event, err := e.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, NewServiceError(constants.ErrCodeEventNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if !cmd.Actor.Role.AtLeast(model.RoleManager) {
		organizer, err := e.eventRepo.IsOrganizer(ctx, event.ID, cmd.Actor.ID)
		if err != nil {
			return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		if !organizer {
			return nil, NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
		}
	}

	if cmd.Amount < 1 {
		return nil, NewServiceError(constants.ErrCodeInvalidAmount, errors.New("INVALID_AMOUNT"))
	}

	var recipients []model.User
	if cmd.UTORid == "" {
		guests, err := e.eventRepo.ListGuests(ctx, event.ID)
		if err != nil {
			return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		if len(guests) == 0 {
			return nil, NewServiceError(constants.ErrCodeNoGuests, errors.New("NO_GUESTS"))
		}
		recipients = guests
	} else {
		subject, err := e.userRepo.GetByUTORid(ctx, cmd.UTORid)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, NewServiceError(constants.ErrCodeUserNotFound, err)
			}
			return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		guest, err := e.eventRepo.IsGuest(ctx, event.ID, subject.ID)
		if err != nil {
			return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		if !guest {
			return nil, NewServiceError(constants.ErrCodeNotGuest, errors.New("NOT_GUEST"))
		}
		recipients = []model.User{*subject}
	}

	total := cmd.Amount * int64(len(recipients))
	eventID := event.ID
	now := time.Now()

	txs := make([]model.Transaction, len(recipients))

	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := e.eventRepo.ConsumePool(ctx, event.ID, total); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeInsufficientPool, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		for i := range recipients {
			recipientID := recipients[i].ID
			txs[i] = model.Transaction{
				UTORid:      recipients[i].UTORid,
				Type:        model.TxTypeEvent,
				Amount:      cmd.Amount,
				RelatedID:   &eventID,
				RecipientID: &recipientID,
				CreatedByID: cmd.Actor.ID,
				Remark:      cmd.Remark,
				CreatedAt:   now,
			}

			if err := e.transactionRepo.Create(ctx, &txs[i]); err != nil {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}

			if err := e.userRepo.AddPoints(ctx, recipients[i].ID, cmd.Amount); err != nil {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}
		}

		return nil
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypeEvent), "db")
		return nil, err
	}

	e.metrics.RecordTransactionCreated(string(model.TxTypeEvent))
	e.metrics.RecordPointsMoved(string(model.TxTypeEvent), total)
	e.logger.Info("Event award recorded",
		zap.Uint64("eventID", event.ID),
		zap.Int64("amountPerGuest", cmd.Amount),
		zap.Int("recipients", len(recipients)))

	results := make([]TransactionResult, len(txs))
	for i := range txs {
		results[i] = newTransactionResult(&txs[i])
	}
	return results, nil
}

func (e *ledgerEngine) CreateRedemption(ctx context.Context, cmd CreateRedemptionCommand) (TransactionResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleRegular); err != nil {
		return TransactionResult{}, err
	}

	if cmd.Amount < 1 {
		return TransactionResult{}, NewServiceError(constants.ErrCodeInvalidAmount,
			errors.New("INVALID_AMOUNT"))
	}

	processed := false
	tx := model.Transaction{
		Type:        model.TxTypeRedemption,
		Amount:      cmd.Amount,
		Processed:   &processed,
		CreatedByID: cmd.Actor.ID,
		Remark:      cmd.Remark,
		CreatedAt:   time.Now(),
	}

	// Points only move at processing time, but the availability check and
	// the insert run under the subject's row lock so concurrent requests
	// cannot reserve more than the balance.
	err := e.txManager.WithTx(ctx, func(ctx context.Context) error {
		subject, err := e.userRepo.GetForUpdate(ctx, cmd.Actor.ID)
		if err != nil {
			return NewServiceError(constants.ErrCodeUnauthorized, err)
		}

		if !subject.Verified {
			return NewServiceError(constants.ErrCodeUserNotVerified, errors.New("USER_NOT_VERIFIED"))
		}

		pending, err := e.transactionRepo.SumPendingRedemptions(ctx, subject.UTORid)
		if err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if subject.Points-pending < cmd.Amount {
			return NewServiceError(constants.ErrCodeInsufficientPoints,
				errors.New("INSUFFICIENT_POINTS"))
		}

		tx.UTORid = subject.UTORid
		return e.transactionRepo.Create(ctx, &tx)
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypeRedemption), "rejected")
		return TransactionResult{}, err
	}

	e.metrics.RecordTransactionCreated(string(model.TxTypeRedemption))
	e.logger.Info("Redemption requested",
		zap.Uint64("transactionID", tx.ID),
		zap.String("utorid", tx.UTORid),
		zap.Int64("amount", cmd.Amount))

	return newTransactionResult(&tx), nil
}

func (e *ledgerEngine) ProcessRedemption(ctx context.Context, cmd ProcessRedemptionCommand) (TransactionResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleCashier); err != nil {
		return TransactionResult{}, err
	}

	tx, err := e.transactionRepo.GetByID(ctx, cmd.TransactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if tx.Type != model.TxTypeRedemption {
		return TransactionResult{}, NewServiceError(constants.ErrCodeNotRedemption,
			errors.New("NOT_REDEMPTION"))
	}

	if tx.Processed != nil && *tx.Processed {
		return TransactionResult{}, NewServiceError(constants.ErrCodeAlreadyProcessed,
			errors.New("ALREADY_PROCESSED"))
	}

	subject, err := e.userRepo.GetByUTORid(ctx, tx.UTORid)
	if err != nil {
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := e.transactionRepo.MarkProcessed(ctx, tx.ID, cmd.Actor.ID); err != nil {
			// The guarded update keeps a racing second processor from
			// deducting twice.
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeAlreadyProcessed, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return e.userRepo.AddPoints(ctx, subject.ID, -tx.Amount)
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypeRedemption), "process")
		return TransactionResult{}, err
	}

	processed := true
	processorID := cmd.Actor.ID
	tx.Processed = &processed
	tx.RelatedID = &processorID

	e.metrics.RecordRedemptionProcessed()
	e.metrics.RecordPointsMoved(string(model.TxTypeRedemption), tx.Amount)
	e.logger.Info("Redemption processed",
		zap.Uint64("transactionID", tx.ID),
		zap.String("utorid", tx.UTORid),
		zap.Uint64("processorID", processorID))

	return newTransactionResult(tx), nil
}

func (e *ledgerEngine) CreateTransfer(ctx context.Context, cmd CreateTransferCommand) (TransferResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleRegular); err != nil {
		return TransferResult{}, err
	}

	if cmd.Amount < 1 {
		return TransferResult{}, NewServiceError(constants.ErrCodeInvalidAmount,
			errors.New("INVALID_AMOUNT"))
	}

	var senderTx, recipientTx model.Transaction

	err := e.txManager.WithTx(ctx, func(ctx context.Context) error {
		sender, err := e.userRepo.GetForUpdate(ctx, cmd.Actor.ID)
		if err != nil {
			return NewServiceError(constants.ErrCodeUnauthorized, err)
		}

		if !sender.Verified {
			return NewServiceError(constants.ErrCodeUserNotVerified, errors.New("USER_NOT_VERIFIED"))
		}

		recipient, err := e.resolveUser(ctx, cmd.Recipient)
		if err != nil {
			return err
		}

		if recipient.ID == sender.ID {
			return NewServiceError(constants.ErrCodeTransferToSelf, errors.New("TRANSFER_TO_SELF"))
		}

		if sender.Points < cmd.Amount {
			return NewServiceError(constants.ErrCodeInsufficientPoints,
				errors.New("INSUFFICIENT_POINTS"))
		}

		now := time.Now()
		senderID, recipientID := sender.ID, recipient.ID

		senderTx = model.Transaction{
			UTORid:      sender.UTORid,
			Type:        model.TxTypeTransfer,
			Amount:      cmd.Amount,
			RelatedID:   &recipientID,
			SenderID:    &senderID,
			RecipientID: &recipientID,
			CreatedByID: sender.ID,
			Remark:      cmd.Remark,
			CreatedAt:   now,
		}
		recipientTx = model.Transaction{
			UTORid:      recipient.UTORid,
			Type:        model.TxTypeTransfer,
			Amount:      cmd.Amount,
			RelatedID:   &senderID,
			SenderID:    &senderID,
			RecipientID: &recipientID,
			CreatedByID: sender.ID,
			Remark:      cmd.Remark,
			CreatedAt:   now,
		}

		if err := e.transactionRepo.Create(ctx, &senderTx); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		if err := e.transactionRepo.Create(ctx, &recipientTx); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := e.userRepo.AddPoints(ctx, sender.ID, -cmd.Amount); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}
		return e.userRepo.AddPoints(ctx, recipient.ID, cmd.Amount)
	})
	if err != nil {
		e.metrics.RecordTransactionError(string(model.TxTypeTransfer), "rejected")
		return TransferResult{}, err
	}

	e.metrics.RecordTransactionCreated(string(model.TxTypeTransfer))
	e.metrics.RecordPointsMoved(string(model.TxTypeTransfer), cmd.Amount)
	e.logger.Info("Transfer recorded",
		zap.Uint64("senderTxID", senderTx.ID),
		zap.Uint64("recipientTxID", recipientTx.ID),
		zap.Int64("amount", cmd.Amount))

	return TransferResult{
		Sender:    newTransactionResult(&senderTx),
		Recipient: newTransactionResult(&recipientTx),
	}, nil
}

func (e *ledgerEngine) SetSuspicious(ctx context.Context, cmd SetSuspiciousCommand) (TransactionResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return TransactionResult{}, err
	}

	tx, err := e.transactionRepo.GetByID(ctx, cmd.TransactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if tx.Suspicious == cmd.Suspicious {
		return newTransactionResult(tx), nil
	}

	subject, err := e.userRepo.GetByUTORid(ctx, tx.UTORid)
	if err != nil {
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	// Contribution the row makes to the balance while clean; flagging
	// reverses it, clearing reapplies it.
	clean := *tx
	clean.Suspicious = false
	effect := ledgerEffect(&clean, subject.ID)

	delta := effect
	if cmd.Suspicious {
		delta = -effect
	}

	var earned *int64
	if tx.Type == model.TxTypePurchase {
		restored := int64(0)
		if !cmd.Suspicious {
			restored = tx.Amount
		}
		earned = &restored
	}

	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := e.transactionRepo.SetSuspicious(ctx, tx.ID, cmd.Suspicious, earned); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return errAlreadyInState
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if delta == 0 {
			return nil
		}
		return e.userRepo.AddPoints(ctx, subject.ID, delta)
	})
	if errors.Is(err, errAlreadyInState) {
		// A concurrent request already applied the same toggle.
		current, getErr := e.transactionRepo.GetByID(ctx, tx.ID)
		if getErr != nil {
			return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, getErr)
		}
		return newTransactionResult(current), nil
	}
	if err != nil {
		e.metrics.RecordTransactionError(string(tx.Type), "suspicious_toggle")
		return TransactionResult{}, err
	}

	tx.Suspicious = cmd.Suspicious
	if earned != nil {
		tx.Earned = earned
	}

	e.metrics.RecordSuspiciousToggle(cmd.Suspicious)
	e.logger.Info("Suspicious flag updated",
		zap.Uint64("transactionID", tx.ID),
		zap.Bool("suspicious", cmd.Suspicious),
		zap.Int64("balanceDelta", delta))

	return newTransactionResult(tx), nil
}

func (e *ledgerEngine) GetTransaction(ctx context.Context, actor Actor, id uint64) (TransactionResult, error) {
	if actor.ID == 0 {
		return TransactionResult{}, NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	tx, err := e.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}
		return TransactionResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if tx.UTORid != actor.UTORid && !actor.Role.AtLeast(model.RoleManager) {
		return TransactionResult{}, NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
	}

	return newTransactionResult(tx), nil
}

func (e *ledgerEngine) ListUserTransactions(ctx context.Context, actor Actor, utorid string) ([]TransactionResult, error) {
	if actor.ID == 0 {
		return nil, NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	if utorid != actor.UTORid && !actor.Role.AtLeast(model.RoleManager) {
		return nil, NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
	}

	txs, err := e.transactionRepo.ListByUTORid(ctx, utorid)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	results := make([]TransactionResult, len(txs))
	for i := range txs {
		results[i] = newTransactionResult(&txs[i])
	}
	return results, nil
}

func (e *ledgerEngine) ListTransactions(ctx context.Context, actor Actor, limit, offset int) ([]TransactionResult, error) {
	if err := requireClearance(actor, model.RoleManager); err != nil {
		return nil, err
	}

	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	txs, err := e.transactionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	results := make([]TransactionResult, len(txs))
	for i := range txs {
		results[i] = newTransactionResult(&txs[i])
	}
	return results, nil
}

func (e *ledgerEngine) resolveUser(ctx context.Context, identifier string) (*model.User, error) {
	var (
		u   *model.User
		err error
	)

	if id, parseErr := strconv.ParseUint(identifier, 10, 64); parseErr == nil {
		u, err = e.userRepo.GetByID(ctx, id)
	} else {
		u, err = e.userRepo.GetByUTORid(ctx, identifier)
	}

	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return u, nil
}

func (e *ledgerEngine) recordablePromotions(ctx context.Context, ids []uint64) ([]model.Promotion, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	promos, err := e.promotionRepo.GetByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, NewServiceError(constants.ErrCodePromotionNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	recorded := make([]model.Promotion, 0, len(promos))
	for _, p := range promos {
		if p.Type == model.PromotionTypeOneTime {
			recorded = append(recorded, p)
		}
	}
	return recorded, nil
}
