package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/chimekit/chime/cmd/common"
	cm "github.com/chimekit/chime/common"
	"github.com/chimekit/chime/pkg/chimecli"
)

const SetTimerDescription = `Starts a countdown timer.

The duration accepts Go syntax like 90s, 10m or 1h30m; a bare number is
taken as minutes. Timers are in-memory only and do not survive a daemon
restart.
`

var (
	timerName  string
	timerSound string

	setTimerFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "display name of the timer",
			Destination: &timerName,
		},
		cli.StringFlag{
			Name:        "sound, s",
			Usage:       "sound name or file path",
			Destination: &timerSound,
		},
	}
)

// parseTimerDuration accepts Go duration syntax, with a bare number
// meaning minutes.
func parseTimerDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func setTimer(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if arg == "" {
		return common.PrintErrWithCmdHelp(ctx,
			fmt.Errorf("no duration provided"))
	}
	d, err := parseTimerDuration(arg)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}

	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer set", "new_client", err)
		return nil
	}
	defer client.Close()

	resp, err := client.SetTimer(&cm.SetTimerParams{
		Name:     timerName,
		Duration: d,
		Sound:    timerSound,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer set", "set", err)
		return nil
	}
	t := resp.Timer
	fmt.Printf("Timer %s running, goes off in %s (id %s)\n",
		displayName(t.Name, t.ID), fmtRemaining(t.Remaining), t.ID)
	return nil
}

func listTimers(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer list", "new_client", err)
		return nil
	}
	defer client.Close()

	resp, err := client.ListTimers()
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer list", "list", err)
		return nil
	}
	if len(resp.Timers) == 0 {
		fmt.Println("No timers running.")
		return nil
	}
	fmt.Printf("%-10s  %-10s  %s\n", "ID", "REMAINING", "NAME")
	for _, t := range resp.Timers {
		fmt.Printf("%-10s  %-10s  %s\n",
			shortID(t.ID), fmtRemaining(t.Remaining), displayName(t.Name, t.ID))
	}
	return nil
}

func cancelTimers(ctx *cli.Context) error {
	return selectorAction(ctx, "timer cancel", "cancelled",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.CancelTimers(sel)
		})
}

func fmtRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}
