package Controllers_test

import (
	"bytes"
	"io"
)

func jsonBody(payload string) io.Reader {
	return bytes.NewBufferString(payload)
}
