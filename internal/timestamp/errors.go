package timestamp

import "timestamp-bot/internal/apperr"

var (
	ErrMissingRequiredOption = apperr.New(apperr.KindValidation, "missing required option")
	ErrInvalidOption         = apperr.New(apperr.KindValidation, "invalid option value")
	ErrInvalidFormatMarker   = apperr.New(apperr.KindValidation, "invalid format marker")
	ErrUnrecognizedTimezone  = apperr.New(apperr.KindResolution, "unrecognized timezone")
	ErrAmbiguousLocalTime    = apperr.New(apperr.KindResolution, "ambiguous or invalid local time")
)
