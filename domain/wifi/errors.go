package wifi

import (
	"errors"

	"github.com/prasetyowira/wifiqr/constant"
)

var (
	// ErrInvalidLogoPath: the logo file is missing or unreadable.
	ErrInvalidLogoPath = errors.New(constant.ErrInvalidLogoPath)
	// ErrImageDecoding: the logo file exists but is not a decodable image.
	ErrImageDecoding = errors.New(constant.ErrImageDecoding)
	// ErrImageEncoding: PNG serialization of the final image failed.
	ErrImageEncoding = errors.New(constant.ErrImageEncoding)
	// ErrQRGeneration: the QR collaborator could not render the payload.
	ErrQRGeneration = errors.New(constant.ErrQRGeneration)

	ErrEmptySSID       = errors.New(constant.ErrEmptySSID)
	ErrMissingPassword = errors.New(constant.ErrMissingPassword)
	// ErrPayloadTooLong: the payload does not fit the largest QR version at level H.
	ErrPayloadTooLong = errors.New(constant.ErrPayloadTooLong)
)
