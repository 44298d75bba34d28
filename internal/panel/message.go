package panel

import (
	"errors"

	"github.com/showfinder/showfinder/internal/apperrors"
)

// Message turns a failure into the short text shown inside a panel.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, &apperrors.ErrNotFound{}) {
		return "Nothing was found for that show."
	}
	switch apperrors.ReasonOf(err) {
	case apperrors.ReasonUnavailable:
		return "TVMaze is temporarily unavailable. Please try again in a moment."
	case apperrors.ReasonNetwork:
		return "Could not reach TVMaze. Please try again."
	case apperrors.ReasonStatus:
		return "TVMaze returned an error. Please try again."
	case apperrors.ReasonDecode, apperrors.ReasonShape:
		return "TVMaze sent a response we could not read."
	default:
		return "Something went wrong. Please try again."
	}
}
