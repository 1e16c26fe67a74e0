package api

import (
	"fmt"

	"github.com/warpfork/go-errcat"
)

/*
	Serializable form of an errcat error, for the result event.

	Conversion is one way: the category survives as a string only.
*/
type Error struct {
	Category string            `refmt:"category"`
	Msg      string            `refmt:"msg"`
	Details  map[string]string `refmt:"details,omitempty"`
}

func (e Error) Error() string {
	return e.Msg
}

func ToError(err error) *Error {
	if err == nil {
		return nil
	}
	if errc, ok := err.(errcat.Error); ok {
		return &Error{
			Category: fmt.Sprintf("%s", errc.Category()),
			Msg:      errc.Message(),
			Details:  errc.Details(),
		}
	}
	return &Error{Msg: err.Error()}
}
