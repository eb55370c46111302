package database

import "errors"

var (
	ErrNamePhoneRequired = errors.New("name and phone are required")
	ErrEmptyCart         = errors.New("no valid lessons in cart")
	ErrQueryRequired     = errors.New("query required")
	ErrSpacesRequired    = errors.New("spaces value required")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrSoldOut           = errors.New("lesson sold out")
)

func IsValidation(err error) bool {
	return errors.Is(err, ErrNamePhoneRequired) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrQueryRequired) ||
		errors.Is(err, ErrSpacesRequired)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrLessonNotFound) || errors.Is(err, ErrOrderNotFound)
}
