package main

import (
	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/config"
	"gopkg.in/alecthomas/kingpin.v2"
)

// overrides records the flags the user actually passed. They are
// applied on top of the loaded profile, so an unset flag never
// clobbers a value from --config.file.
type overrides []func(*config.Config)

func (o *overrides) flag(cmd *kingpin.CmdClause, name, help string, apply func(*config.Config)) *kingpin.FlagClause {
	return cmd.Flag(name, help).Action(func(*kingpin.ParseContext) error {
		*o = append(*o, apply)
		return nil
	})
}

// load builds the effective profile: defaults, then the config file
// if one is given, then explicit flags.
func (o overrides) load(configFile string) (config.Config, error) {
	c := config.Default()
	if configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}
		c = loaded
	}

	for _, apply := range o {
		apply(&c)
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid profile")
	}
	return c, nil
}
