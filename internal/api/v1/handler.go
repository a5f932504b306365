package v1

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/contract"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/v1/middleware"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/validator"
	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/metrics"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	logger     *zap.Logger
	ledger     service.LedgerEngine
	balances   service.PointsAccumulator
	raffles    service.RaffleService
	users      service.UserService
	promotions service.PromotionAdminService
	events     service.EventAdminService
	XValidator validator.IXValidator
	metrics    *metrics.Metrics
}

func NewHandler(logger *zap.Logger, ledger service.LedgerEngine, balances service.PointsAccumulator,
	raffles service.RaffleService, users service.UserService,
	promotions service.PromotionAdminService, events service.EventAdminService,
	XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:     logger,
		ledger:     ledger,
		balances:   balances,
		raffles:    raffles,
		users:      users,
		promotions: promotions,
		events:     events,
		XValidator: XValidator,
		metrics:    metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func actor(c *fiber.Ctx) service.Actor {
	if a, ok := c.Locals(middleware.ActorKey).(service.Actor); ok {
		return a
	}
	return service.Actor{}
}

func pathID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.NewServiceError(constants.ErrCodeInvalidRequestBody, errors.New("INVALID_REQUEST_BODY"))
	}
	return id, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}
	return t, nil
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}
	return &d, nil
}

func (h *Handler) CreatePurchase(c *fiber.Ctx) error {
	start := time.Now()

	var handlerRequest CreatePurchaseRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	spent, err := decimal.NewFromString(handlerRequest.Spent)
	if err != nil {
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	cmd := service.CreatePurchaseCommand{
		Actor:        actor(c),
		UTORid:       handlerRequest.UTORid,
		Spent:        spent,
		PromotionIDs: handlerRequest.PromotionIDs,
		Remark:       handlerRequest.Remark,
	}

	result, err := h.ledger.CreatePurchase(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Purchase recorded",
		zap.String("utorid", cmd.UTORid),
		zap.Uint64("transactionID", result.ID),
		zap.Duration("duration", time.Since(start)),
	)

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) CreateAdjustment(c *fiber.Ctx) error {
	var handlerRequest CreateAdjustmentRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.CreateAdjustmentCommand{
		Actor:     actor(c),
		UTORid:    handlerRequest.UTORid,
		Amount:    handlerRequest.Amount,
		RelatedID: handlerRequest.RelatedID,
		Remark:    handlerRequest.Remark,
	}

	result, err := h.ledger.CreateAdjustment(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) CreateRedemption(c *fiber.Ctx) error {
	var handlerRequest CreateRedemptionRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.CreateRedemptionCommand{
		Actor:  actor(c),
		Amount: handlerRequest.Amount,
		Remark: handlerRequest.Remark,
	}

	result, err := h.ledger.CreateRedemption(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) ProcessRedemption(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest ProcessRedemptionRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	result, err := h.ledger.ProcessRedemption(c.UserContext(),
		service.ProcessRedemptionCommand{Actor: actor(c), TransactionID: id})
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) CreateTransfer(c *fiber.Ctx) error {
	recipient := c.Params("user")
	if recipient == "" {
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, errors.New("INVALID_REQUEST_BODY"))
	}

	var handlerRequest CreateTransferRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.CreateTransferCommand{
		Actor:     actor(c),
		Recipient: recipient,
		Amount:    handlerRequest.Amount,
		Remark:    handlerRequest.Remark,
	}

	result, err := h.ledger.CreateTransfer(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) SetSuspicious(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest SetSuspiciousRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.SetSuspiciousCommand{
		Actor:         actor(c),
		TransactionID: id,
		Suspicious:    *handlerRequest.Suspicious,
	}

	result, err := h.ledger.SetSuspicious(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.ledger.GetTransaction(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) ListMyTransactions(c *fiber.Ctx) error {
	a := actor(c)

	results, err := h.ledger.ListUserTransactions(c.UserContext(), a, a.UTORid)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: results})
}

func (h *Handler) ListUserTransactions(c *fiber.Ctx) error {
	results, err := h.ledger.ListUserTransactions(c.UserContext(), actor(c), c.Params("utorid"))
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: results})
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	results, err := h.ledger.ListTransactions(c.UserContext(), actor(c), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: results})
}

// GetUserBalance replays the subject's ledger instead of reading the cached
// points column; the two must agree.
func (h *Handler) GetUserBalance(c *fiber.Ctx) error {
	a := actor(c)
	if a.ID == 0 {
		return service.NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	utorid := c.Params("utorid")
	if utorid != a.UTORid && !a.Role.AtLeast(model.RoleManager) {
		return service.NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
	}

	balance, err := h.balances.ComputeBalance(c.UserContext(), utorid)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success",
		Result: fiber.Map{"utorid": utorid, "balance": balance}})
}

func (h *Handler) CreateEventAward(c *fiber.Ctx) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest CreateEventAwardRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.CreateEventAwardCommand{
		Actor:   actor(c),
		EventID: eventID,
		Amount:  handlerRequest.Amount,
		UTORid:  handlerRequest.UTORid,
		Remark:  handlerRequest.Remark,
	}

	results, err := h.ledger.CreateEventAward(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: results})
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var handlerRequest CreateEventRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	startTime, err := parseTime(handlerRequest.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTime(handlerRequest.EndTime)
	if err != nil {
		return err
	}

	cmd := service.CreateEventCommand{
		Actor:       actor(c),
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		Location:    handlerRequest.Location,
		StartTime:   startTime,
		EndTime:     endTime,
		Capacity:    handlerRequest.Capacity,
		Points:      handlerRequest.Points,
	}

	event, err := h.events.Create(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: newEventResponse(event)})
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.events.Get(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newEventResponse(event)})
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest UpdateEventRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	startTime, err := parseTimePtr(handlerRequest.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTimePtr(handlerRequest.EndTime)
	if err != nil {
		return err
	}

	cmd := service.UpdateEventCommand{
		Actor:       actor(c),
		EventID:     id,
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		Location:    handlerRequest.Location,
		StartTime:   startTime,
		EndTime:     endTime,
		Capacity:    handlerRequest.Capacity,
		Published:   handlerRequest.Published,
		Points:      handlerRequest.Points,
	}

	event, err := h.events.Update(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newEventResponse(event)})
}

func (h *Handler) CreatePromotion(c *fiber.Ctx) error {
	var handlerRequest CreatePromotionRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	startTime, err := parseTime(handlerRequest.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTime(handlerRequest.EndTime)
	if err != nil {
		return err
	}

	minSpending := decimal.Zero
	if handlerRequest.MinSpending != "" {
		if minSpending, err = decimal.NewFromString(handlerRequest.MinSpending); err != nil {
			return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
		}
	}

	rate := decimal.Zero
	if handlerRequest.Rate != "" {
		if rate, err = decimal.NewFromString(handlerRequest.Rate); err != nil {
			return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
		}
	}

	cmd := service.CreatePromotionCommand{
		Actor:       actor(c),
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		Type:        model.PromotionType(handlerRequest.Type),
		StartTime:   startTime,
		EndTime:     endTime,
		MinSpending: minSpending,
		Rate:        rate,
		Points:      handlerRequest.Points,
	}

	promotion, err := h.promotions.Create(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: newPromotionResponse(promotion)})
}

func (h *Handler) GetPromotion(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	promotion, err := h.promotions.Get(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newPromotionResponse(promotion)})
}

func (h *Handler) UpdatePromotion(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest UpdatePromotionRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	startTime, err := parseTimePtr(handlerRequest.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTimePtr(handlerRequest.EndTime)
	if err != nil {
		return err
	}
	minSpending, err := parseDecimalPtr(handlerRequest.MinSpending)
	if err != nil {
		return err
	}
	rate, err := parseDecimalPtr(handlerRequest.Rate)
	if err != nil {
		return err
	}

	cmd := service.UpdatePromotionCommand{
		Actor:       actor(c),
		PromotionID: id,
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		MinSpending: minSpending,
		Rate:        rate,
		Points:      handlerRequest.Points,
	}

	promotion, err := h.promotions.Update(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newPromotionResponse(promotion)})
}

func (h *Handler) DeletePromotion(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.promotions.Delete(c.UserContext(), actor(c), id); err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success"})
}

func (h *Handler) CreateRaffle(c *fiber.Ctx) error {
	var handlerRequest CreateRaffleRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	startTime, err := parseTime(handlerRequest.StartTime)
	if err != nil {
		return err
	}
	endTime, err := parseTime(handlerRequest.EndTime)
	if err != nil {
		return err
	}
	drawTime, err := parseTime(handlerRequest.DrawTime)
	if err != nil {
		return err
	}

	cmd := service.CreateRaffleCommand{
		Actor:       actor(c),
		Name:        handlerRequest.Name,
		PointCost:   handlerRequest.PointCost,
		PrizePoints: handlerRequest.PrizePoints,
		StartTime:   startTime,
		EndTime:     endTime,
		DrawTime:    drawTime,
	}

	raffle, err := h.raffles.Create(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: newRaffleResponse(raffle)})
}

func (h *Handler) GetRaffle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	raffle, err := h.raffles.Get(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newRaffleResponse(raffle)})
}

func (h *Handler) EnterRaffle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.raffles.Enter(c.UserContext(),
		service.EnterRaffleCommand{Actor: actor(c), RaffleID: id})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) DrawRaffle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.raffles.Draw(c.UserContext(),
		service.DrawRaffleCommand{Actor: actor(c), RaffleID: id})
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: result})
}

func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var handlerRequest RegisterUserRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.RegisterUserCommand{
		Actor:  actor(c),
		UTORid: handlerRequest.UTORid,
		Name:   handlerRequest.Name,
		Email:  handlerRequest.Email,
	}

	user, err := h.users.Register(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(contract.Response{Successful: true, Code: "success", Result: newUserResponse(user)})
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest UpdateUserRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.UpdateUserCommand{
		Actor:      actor(c),
		UserID:     id,
		Email:      handlerRequest.Email,
		Verified:   handlerRequest.Verified,
		Suspicious: handlerRequest.Suspicious,
	}

	if handlerRequest.Role != nil {
		role, ok := model.ParseRole(*handlerRequest.Role)
		if !ok {
			return service.NewServiceError(constants.ErrCodeInvalidRequestBody, errors.New("INVALID_REQUEST_BODY"))
		}
		cmd.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newUserResponse(user)})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var handlerRequest LoginRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	user, err := h.users.VerifyPassword(c.UserContext(), handlerRequest.UTORid, handlerRequest.Password)
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success", Result: newUserResponse(user)})
}

func (h *Handler) RequestPasswordReset(c *fiber.Ctx) error {
	var handlerRequest RequestPasswordResetRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	err := h.users.RequestPasswordReset(c.UserContext(),
		service.RequestPasswordResetCommand{UTORid: handlerRequest.UTORid})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).
		JSON(contract.Response{Successful: true, Code: "success"})
}

func (h *Handler) SetPassword(c *fiber.Ctx) error {
	utorid := c.Params("utorid")
	if utorid == "" {
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, errors.New("INVALID_REQUEST_BODY"))
	}

	var handlerRequest SetPasswordRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	err := h.users.SetPassword(c.UserContext(),
		service.SetPasswordCommand{UTORid: utorid, Password: handlerRequest.Password})
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Successful: true, Code: "success"})
}
