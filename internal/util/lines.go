package util

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// EachLine calls fn for every line of r with the trailing newline (and any
// carriage return) removed. Lines have no length limit. A final line without
// a newline is still delivered. Iteration stops at the first error from fn
// or from r; io.EOF is not an error.
func EachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if ferr := fn(strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
