package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/chimekit/chime/cmd/common"
	cm "github.com/chimekit/chime/common"
	"github.com/chimekit/chime/pkg/chimecli"
)

const SetAlarmDescription = `Creates an alarm at the given time of day.

A plain alarm fires once, at the next upcoming HH:MM. Pass --days with a
comma separated list of weekdays (mon,tue,...) to make it repeat, or
--cron with a five-field cron expression for anything fancier. Time and
cron are mutually exclusive.
`

var (
	alarmName   string
	alarmTime   string
	alarmDays   string
	alarmCron   string
	alarmSound  string
	alarmVolume float64

	setAlarmFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "name, n",
			Usage:       "display name of the alarm",
			Destination: &alarmName,
		},
		cli.StringFlag{
			Name:        "time, t",
			Usage:       "time of day in HH:MM (24h)",
			Destination: &alarmTime,
		},
		cli.StringFlag{
			Name:        "days, d",
			Usage:       "comma separated repeat days, e.g. mon,wed,fri",
			Destination: &alarmDays,
		},
		cli.StringFlag{
			Name:        "cron, c",
			Usage:       "five-field cron expression instead of a time",
			Destination: &alarmCron,
		},
		cli.StringFlag{
			Name:        "sound, s",
			Usage:       "sound name or file path",
			Destination: &alarmSound,
		},
		cli.Float64Flag{
			Name:        "volume",
			Usage:       "playback volume between 0 and 1",
			Destination: &alarmVolume,
		},
	}

	snoozeMinutes int

	snoozeFlags = append([]cli.Flag{
		cli.IntFlag{
			Name:        "minutes, m",
			Usage:       "snooze duration in minutes (0 uses the daemon default)",
			Destination: &snoozeMinutes,
		},
	}, selectorFlags...)
)

func setAlarm(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	timeOfDay := alarmTime
	if timeOfDay == "" {
		timeOfDay = ctx.Args().First()
	}
	if timeOfDay == "" && alarmCron == "" {
		return common.PrintErrWithCmdHelp(ctx,
			fmt.Errorf("no alarm time provided"))
	}

	params := &cm.SetAlarmParams{
		Name:      alarmName,
		TimeOfDay: timeOfDay,
		CronExpr:  alarmCron,
		Sound:     alarmSound,
	}
	if alarmDays != "" {
		params.RepeatDays = strings.Split(alarmDays, ",")
	}
	if ctx.IsSet("volume") {
		v := alarmVolume
		params.Volume = &v
	}

	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm set", "new_client", err)
		return nil
	}
	defer client.Close()

	resp, err := client.SetAlarm(params)
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm set", "set", err)
		return nil
	}
	a := resp.Alarm
	fmt.Printf("Alarm %s set for %s (id %s)\n",
		displayName(a.Name, a.ID), fmtWhen(a.NextFireAt), a.ID)
	return nil
}

func listAlarms(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm list", "new_client", err)
		return nil
	}
	defer client.Close()

	resp, err := client.ListAlarms()
	if err != nil {
		common.PrintRuntimeErr(ctx, "alarm list", "list", err)
		return nil
	}
	if len(resp.Alarms) == 0 {
		fmt.Println("No alarms set.")
		return nil
	}
	fmt.Printf("%-10s  %-18s  %-9s  %s\n", "ID", "NEXT", "STATE", "NAME")
	for _, a := range resp.Alarms {
		fmt.Printf("%-10s  %-18s  %-9s  %s\n",
			shortID(a.ID), fmtWhen(a.NextFireAt), a.State, describeAlarm(&a))
	}
	return nil
}

func deleteAlarms(ctx *cli.Context) error {
	return selectorAction(ctx, "alarm delete", "deleted",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.DeleteAlarms(sel)
		})
}

func stopAlarms(ctx *cli.Context) error {
	return selectorAction(ctx, "alarm stop", "stopped",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.StopAlarms(sel)
		})
}

func snoozeAlarms(ctx *cli.Context) error {
	return selectorAction(ctx, "alarm snooze", "snoozed",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.SnoozeAlarms(sel, snoozeMinutes)
		})
}

func enableAlarms(ctx *cli.Context) error {
	return selectorAction(ctx, "alarm enable", "enabled",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.ToggleAlarms(sel, true)
		})
}

func disableAlarms(ctx *cli.Context) error {
	return selectorAction(ctx, "alarm disable", "disabled",
		func(c *chimecli.Client, sel cm.Selector) (*cm.CountResponse, error) {
			return c.ToggleAlarms(sel, false)
		})
}

// selectorAction runs a selector-based daemon call and reports the count.
func selectorAction(
	ctx *cli.Context,
	cmd, verb string,
	call func(*chimecli.Client, cm.Selector) (*cm.CountResponse, error),
) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	sel, err := buildSelector(ctx)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, cmd, "new_client", err)
		return nil
	}
	defer client.Close()

	resp, err := call(client, sel)
	if err != nil {
		common.PrintRuntimeErr(ctx, cmd, "call", err)
		return nil
	}
	switch resp.Count {
	case 0:
		fmt.Println("Nothing matched.")
	case 1:
		fmt.Printf("1 %s %s.\n", strings.Fields(cmd)[0], verb)
	default:
		fmt.Printf("%d %ss %s.\n", resp.Count, strings.Fields(cmd)[0], verb)
	}
	return nil
}

func describeAlarm(a *cm.Alarm) string {
	name := displayName(a.Name, a.ID)
	switch {
	case a.CronExpr != "":
		return fmt.Sprintf("%s (cron %s)", name, a.CronExpr)
	case len(a.RepeatDays) > 0:
		return fmt.Sprintf("%s (%s %s)", name, a.TimeOfDay, strings.Join(a.RepeatDays, ","))
	default:
		return fmt.Sprintf("%s (%s once)", name, a.TimeOfDay)
	}
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return shortID(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Mon 15:04 Jan 02")
}
