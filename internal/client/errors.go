package client

import "errors"

var (
	ErrUsage          = errors.New("usage: privacyctl [flags] <command> [args]")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidFlagArg = errors.New("flag arguments must look like disallow_photo=true")
	ErrInvalidLimit   = errors.New("limit must be a positive number")
	ErrInvalidCardRef = errors.New("card must be given as <owner>/<collection...>/<href>")
)
