package constants

const MessageErrorFormat = "The '%s' format is invalid"

const ErrCodeValidationFailed = "VALIDATION_FAILED"
