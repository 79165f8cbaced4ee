//go:build !jack

package main

import (
	"context"
	"errors"
	"io"
)

func runLive(context.Context, []string, io.Writer) error {
	return errors.New("live: built without JACK support, rebuild with -tags jack")
}
