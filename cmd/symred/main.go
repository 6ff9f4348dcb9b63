package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lhagemann/symred/internal/cli"
	"github.com/lhagemann/symred/pkg/arch"
	"github.com/lhagemann/symred/pkg/buildinfo"
	"github.com/lhagemann/symred/pkg/perm"
	"github.com/lhagemann/symred/pkg/task"
)

func main() {
	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps malformed input to 2 and internal failures to 1, following
// the documented CLI contract.
func exitCode(err error) int {
	switch {
	case errors.Is(err, arch.ErrMalformedDescription),
		errors.Is(err, arch.ErrTooManyTypes),
		errors.Is(err, task.ErrInconsistentAllocations),
		errors.Is(err, task.ErrBadAllocation),
		errors.Is(err, perm.ErrBadCycleString),
		errors.Is(err, perm.ErrBadGroupString),
		errors.Is(err, perm.ErrInvalidImage):
		return 2
	default:
		return 1
	}
}
