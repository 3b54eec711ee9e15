package config

import "flag"

// parseFlags defines the config flags on fs, parses args and marks every
// flag set on the command line as coming from SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tarefas", flag.ContinueOnError)
	}

	byFlag := make(map[string]string, len(fields))
	for _, f := range fields {
		byFlag[f.flag] = f.key
		switch p := f.ptr(cfg).(type) {
		case *string:
			fs.StringVar(p, f.flag, *p, f.usage)
		case *bool:
			fs.BoolVar(p, f.flag, *p, f.usage)
		}
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(fl *flag.Flag) {
			if key, ok := byFlag[fl.Name]; ok {
				sources[key] = SourceFlag
			}
		})
	}
	return nil
}
