// Package flagx lets several components parse their own subset of
// command-line flags from the same os.Args.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the arguments in args that belong to allowedFlags,
// normalized to the "-flag=value" form.
//
// Both "-d cards.db" and "-d=cards.db" are accepted. A separate value is
// joined to its flag so boolean flags such as "-n false" parse the same way
// as "-n=false". A flag followed by another dash-prefixed token is kept
// without a value. Everything else is dropped.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, arg+"="+args[i+1])
			i++
			continue
		}
		filtered = append(filtered, arg)
	}

	return filtered
}

// JsonConfigFlags returns the path given with -c or -config, or "" when
// neither is present. Other arguments are ignored.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return config
}
