package cmd

import (
	"fmt"
	"strings"

	"github.com/achilleasa/kdtrace/log"
	"github.com/urfave/cli"
)

var logger = log.New("kdtrace")

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return applyLogLevels(ctx.GlobalStringSlice("log-level"))
}

// Apply "level" or "module=level" settings, e.g. "kdtree=debug".
func applyLogLevels(settings []string) error {
	for _, setting := range settings {
		module, levelName := "", setting
		if sep := strings.IndexByte(setting, '='); sep != -1 {
			module, levelName = setting[:sep], setting[sep+1:]
		}

		level, err := log.ParseLevel(levelName)
		if err != nil {
			return fmt.Errorf("invalid log-level setting %q: %v", setting, err)
		}

		if module == "" {
			log.SetLevel(level)
		} else {
			log.SetModuleLevel(module, level)
		}
	}
	return nil
}
