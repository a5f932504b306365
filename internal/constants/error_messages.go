package constants

const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodePromotionNotFound   = "PROMOTION_NOT_FOUND"
	ErrCodeEventNotFound       = "EVENT_NOT_FOUND"
	ErrCodeRaffleNotFound      = "RAFFLE_NOT_FOUND"

	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInsufficientPoints   = "INSUFFICIENT_POINTS"
	ErrCodePromotionIneligible  = "PROMOTION_INELIGIBLE"
	ErrCodeUserNotVerified      = "USER_NOT_VERIFIED"
	ErrCodeAlreadyProcessed     = "ALREADY_PROCESSED"
	ErrCodeNotRedemption        = "NOT_REDEMPTION"
	ErrCodeNotGuest             = "NOT_GUEST"
	ErrCodeNoGuests             = "NO_GUESTS"
	ErrCodeInsufficientPool     = "INSUFFICIENT_POOL"
	ErrCodeRaffleClosed         = "RAFFLE_CLOSED"
	ErrCodeRaffleDrawn          = "RAFFLE_DRAWN"
	ErrCodeRaffleNotDue         = "RAFFLE_NOT_DUE"
	ErrCodeNoEntries            = "NO_ENTRIES"
	ErrCodeDuplicateEntry       = "DUPLICATE_ENTRY"
	ErrCodeSuspiciousPromotion  = "SUSPICIOUS_PROMOTION"
	ErrCodeResetThrottled       = "RESET_THROTTLED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeInvalidTimeWindow    = "INVALID_TIME_WINDOW"
	ErrCodePromotionStarted     = "PROMOTION_STARTED"
	ErrCodeTransferToSelf       = "TRANSFER_TO_SELF"

	ErrCodeUserExisted   = "USER_EXISTED"
	ErrCodeEntryConflict = "ENTRY_CONFLICT"

	ErrCodeOperationFailed = "OPERATION_FAILED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

var errorMessages = map[string]string{
	ErrCodeUnauthorized: "actor identity could not be resolved",
	ErrCodeForbidden:    "insufficient clearance for this operation",

	ErrCodeUserNotFound:        "user not found",
	ErrCodeTransactionNotFound: "transaction not found",
	ErrCodePromotionNotFound:   "promotion not found",
	ErrCodeEventNotFound:       "event not found",
	ErrCodeRaffleNotFound:      "raffle not found",

	ErrCodeInvalidAmount:       "amount is invalid",
	ErrCodeInsufficientPoints:  "insufficient points",
	ErrCodePromotionIneligible: "promotion is not eligible for this purchase",
	ErrCodeUserNotVerified:     "user is not verified",
	ErrCodeAlreadyProcessed:    "redemption has already been processed",
	ErrCodeNotRedemption:       "transaction is not a redemption",
	ErrCodeNotGuest:            "user is not a guest of this event",
	ErrCodeNoGuests:            "event has no guests",
	ErrCodeInsufficientPool:    "event has insufficient remaining points",
	ErrCodeRaffleClosed:        "raffle is not open",
	ErrCodeRaffleDrawn:         "raffle has already been drawn",
	ErrCodeRaffleNotDue:        "raffle draw time has not been reached",
	ErrCodeNoEntries:           "raffle has no entries",
	ErrCodeDuplicateEntry:      "user has already entered this raffle",
	ErrCodeSuspiciousPromotion: "a suspicious user cannot be promoted to cashier",
	ErrCodeResetThrottled:      "too many reset requests",
	ErrCodeInvalidRequestBody:  "failed to parse request body",
	ErrCodeInvalidTimeWindow:   "start time must be before end time",
	ErrCodePromotionStarted:    "a started promotion cannot be modified",
	ErrCodeTransferToSelf:      "cannot transfer points to yourself",

	ErrCodeUserExisted:   "utorid or email already in use",
	ErrCodeEntryConflict: "conflicting record already exists",

	ErrCodeOperationFailed: "operation failed",
	ErrCodeInternalError:   "Internal server error",
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return errorMessages[ErrCodeInternalError]
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeForbidden, ErrCodeUserNotVerified, ErrCodeSuspiciousPromotion:
		return 403
	case ErrCodeUserNotFound, ErrCodeTransactionNotFound, ErrCodePromotionNotFound,
		ErrCodeEventNotFound, ErrCodeRaffleNotFound:
		return 404
	case ErrCodeInvalidAmount, ErrCodeInsufficientPoints, ErrCodePromotionIneligible,
		ErrCodeAlreadyProcessed, ErrCodeNotRedemption, ErrCodeNotGuest, ErrCodeNoGuests,
		ErrCodeInsufficientPool, ErrCodeRaffleClosed, ErrCodeRaffleDrawn, ErrCodeRaffleNotDue,
		ErrCodeNoEntries, ErrCodeDuplicateEntry, ErrCodeResetThrottled,
		ErrCodeInvalidRequestBody, ErrCodeInvalidTimeWindow, ErrCodePromotionStarted,
		ErrCodeTransferToSelf:
		return 400
	case ErrCodeUserExisted, ErrCodeEntryConflict:
		return 409
	default:
		return 500
	}
}
