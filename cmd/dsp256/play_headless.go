//go:build headless

package main

import (
	"context"
	"errors"
	"io"
)

func runPlay(context.Context, []string, io.Writer) error {
	return errors.New("play: built with -tags headless, no audio output")
}
