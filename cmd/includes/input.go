package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	includeshttp "github.com/meigma/includes/http"
)

const stdinName = "-"

// input is where a query document comes from: a file, a URL or stdin.
type input struct {
	name   string
	stdin  io.Reader
	remote *includeshttp.Source
}

func newInput(arg string, stdin io.Reader, maxBytes int64) input {
	in := input{name: arg, stdin: stdin}
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		in.remote = includeshttp.NewSource(arg, includeshttp.WithMaxBytes(maxBytes))
	}
	return in
}

func (in input) isStdin() bool {
	return in.name == stdinName
}

func (in input) open(ctx context.Context) (io.ReadCloser, error) {
	switch {
	case in.isStdin():
		if in.stdin == nil {
			return nil, errors.New("no standard input")
		}
		return io.NopCloser(in.stdin), nil
	case in.remote != nil:
		return in.remote.Open(ctx)
	default:
		return os.Open(in.name)
	}
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}
