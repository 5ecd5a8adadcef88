// Package flagx lets the server config and the admin tool read the same
// os.Args, each picking out only the flags it defines.
package flagx

import (
	"flag"
	"strings"
)

// ParseKnown parses the flags fs defines and skips everything else in args.
// Both "-f value" and "-f=value" work, with one or two dashes. Boolean flags
// never consume the following argument.
func ParseKnown(fs *flag.FlagSet, args []string) error {
	return fs.Parse(Known(fs, args))
}

// Known returns the subset of args that fs can parse.
func Known(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, inline, ok := flagName(args[i])
		if !ok {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		out = append(out, args[i])
		if inline || isBool(f) {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

func flagName(arg string) (name string, inline, ok bool) {
	if len(arg) < 2 || arg[0] != '-' || arg == "--" {
		return "", false, false
	}
	s := strings.TrimPrefix(arg[1:], "-")
	name, _, inline = strings.Cut(s, "=")
	return name, inline, name != ""
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// JSONConfigPath returns the value of -c or -config in args, or "".
func JSONConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = ParseKnown(fs, args)

	return path
}
