package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/chimekit/chime/common"
)

var (
	selID   string
	selName string
	selAll  bool

	selectorFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "id, i",
			Usage:       "target by exact id",
			Destination: &selID,
		},
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "target by name substring",
			Destination: &selName,
		},
		cli.BoolFlag{
			Name:        "all, a",
			Usage:       "target everything",
			Destination: &selAll,
		},
	}
)

// buildSelector assembles the selector from flags, treating a bare
// positional argument as an id for convenience.
func buildSelector(ctx *cli.Context) (common.Selector, error) {
	sel := common.Selector{ID: selID, Name: selName, All: selAll}
	if sel.IsZero() {
		if arg := ctx.Args().First(); arg != "" && arg != "help" {
			sel.ID = arg
		}
	}
	if sel.IsZero() {
		return sel, errors.New("nothing selected: pass --id, --name or --all")
	}
	return sel, nil
}
