// Package cmd implements the chime command line interface. Most
// commands are thin clients of the daemon socket; the daemon command
// runs the scheduling engine itself.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/chimekit/chime/cmd/common"
)

// BuildArgs carries build-time metadata injected through ldflags.
type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	common.VersionCmdStr = fmt.Sprintf(
		"chime %s-%s (%s/%s) built %s commit %s",
		bArgs.Version, bArgs.BuildType, runtime.GOOS, runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	currentBuildArgs = bArgs

	app := cli.App{
		Name:                  "chime",
		HelpName:              "chime",
		Usage:                 "Alarms and countdown timers for your terminal.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "chime <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:   "daemon",
				Usage:  "run the scheduling daemon in the foreground",
				Action: daemon,
				Flags:  daemonFlags,
			},
			{
				Name:    "alarm",
				Aliases: []string{"a"},
				Usage:   "manage alarms",
				Subcommands: []cli.Command{
					{
						Name:                   "set",
						Aliases:                []string{"s"},
						Usage:                  "create an alarm",
						UsageText:              "alarm set <HH:MM> [flags...]",
						Description:            SetAlarmDescription,
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 setAlarm,
						Flags:                  setAlarmFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:               "list",
						Aliases:            []string{"l"},
						Usage:              "list alarms, soonest first",
						OnUsageError:       common.UsageErrorCallback,
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             listAlarms,
					},
					{
						Name:                   "delete",
						Aliases:                []string{"rm"},
						Usage:                  "delete alarms",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 deleteAlarms,
						Flags:                  selectorFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:                   "stop",
						Usage:                  "dismiss ringing or snoozed alarms",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 stopAlarms,
						Flags:                  selectorFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:                   "snooze",
						Usage:                  "snooze ringing alarms",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 snoozeAlarms,
						Flags:                  snoozeFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:                   "enable",
						Usage:                  "enable alarms",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 enableAlarms,
						Flags:                  selectorFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:                   "disable",
						Usage:                  "disable alarms",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 disableAlarms,
						Flags:                  selectorFlags,
						UseShortOptionHandling: true,
					},
				},
			},
			{
				Name:    "timer",
				Aliases: []string{"t"},
				Usage:   "manage countdown timers",
				Subcommands: []cli.Command{
					{
						Name:                   "set",
						Aliases:                []string{"s"},
						Usage:                  "start a countdown timer",
						UsageText:              "timer set <duration> [flags...]",
						Description:            SetTimerDescription,
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 setTimer,
						Flags:                  setTimerFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:               "list",
						Aliases:            []string{"l"},
						Usage:              "list running timers",
						OnUsageError:       common.UsageErrorCallback,
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             listTimers,
					},
					{
						Name:                   "cancel",
						Aliases:                []string{"rm"},
						Usage:                  "cancel running timers",
						OnUsageError:           common.UsageErrorCallback,
						CustomHelpTemplate:     CMD_HELP_TEMPL,
						Action:                 cancelTimers,
						Flags:                  selectorFlags,
						UseShortOptionHandling: true,
					},
					{
						Name:               "watch",
						Aliases:            []string{"w"},
						Usage:              "watch a timer count down",
						UsageText:          "timer watch [id]",
						OnUsageError:       common.UsageErrorCallback,
						CustomHelpTemplate: CMD_HELP_TEMPL,
						Action:             watchTimer,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of chime",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	return app.Run(args)
}

// currentBuildArgs is consulted by the daemon for version reporting.
var currentBuildArgs BuildArgs
