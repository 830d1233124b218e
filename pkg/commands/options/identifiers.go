package options

import (
	"fmt"
	"strconv"
)

// IDOptions
type IDOptions struct {
	ID int
}

// ParseID reads a display id from a positional argument.
func (o *IDOptions) ParseID(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Errorf("%q is not a display id", arg)
	}
	o.ID = n
	return nil
}
