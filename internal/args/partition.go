package args

import (
	"github.com/scontain/sconectl/internal/model"
)

// Launcher tokens. Help and version are only recognized as the very first
// token; quiet and verbose may be repeated at the front in any order.
const (
	TokenHelp      = "--help"
	TokenHelpShort = "-h"
	TokenVersion   = "--version"
	TokenQuiet     = "--quiet"
	TokenVerbose   = "--verbose"
)

// Partition splits argv (without the program name) into launcher flags and
// pass-through tokens. It is pure: argv is not modified and the returned
// slices are new.
//
// A help or version token in first position short-circuits: it is consumed
// and everything after it is ignored for forwarding purposes but still
// accounted for in PassThrough, so every input token lands in exactly one
// category. Leading --quiet and --verbose tokens are consumed; scanning for
// launcher flags stops at the first other token, and everything from there
// on is forwarded in the original order.
func Partition(argv []string) model.ArgumentSet {
	var set model.ArgumentSet
	set.PassThrough = make([]string, 0, len(argv))

	i := 0
	if len(argv) > 0 {
		switch argv[0] {
		case TokenHelp, TokenHelpShort:
			set.Help = true
			set.Consumed = append(set.Consumed, argv[0])
			i = 1
		case TokenVersion:
			set.Version = true
			set.Consumed = append(set.Consumed, argv[0])
			i = 1
		}
	}

	if !set.Help && !set.Version {
	leading:
		for ; i < len(argv); i++ {
			switch argv[i] {
			case TokenQuiet:
				set.Quiet = true
			case TokenVerbose:
				set.Verbose = true
			default:
				break leading
			}
			set.Consumed = append(set.Consumed, argv[i])
		}
	}

	set.PassThrough = append(set.PassThrough, argv[i:]...)
	return set
}

// RequireCommand returns a usage error when no pass-through tokens remain.
func RequireCommand(passThrough []string) error {
	if len(passThrough) == 0 {
		return model.UsageError("missing command", model.ErrNoCommand)
	}
	return nil
}
