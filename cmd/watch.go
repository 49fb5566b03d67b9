package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/chimekit/chime/cmd/common"
	cm "github.com/chimekit/chime/common"
	"github.com/chimekit/chime/pkg/chimecli"
)

// watchTimer renders a live countdown bar for one timer. With no
// argument it picks the timer closest to going off.
func watchTimer(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	client, err := chimecli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer watch", "new_client", err)
		return nil
	}
	defer client.Close()

	t, err := pickTimer(client, arg)
	if err != nil {
		common.PrintRuntimeErr(ctx, "timer watch", "pick", err)
		return nil
	}

	name := displayName(t.Name, t.ID)
	total := int64(t.Duration / time.Millisecond)

	p := mpb.New(mpb.WithWidth(48))
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")
	bar := p.New(total,
		barStyle,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Any(func(decor.Statistics) string {
				return fmtRemaining(time.Until(t.EndAt))
			}), "Done!"),
		),
	)

	for {
		remaining := time.Until(t.EndAt)
		if remaining <= 0 {
			bar.SetCurrent(total)
			break
		}
		bar.SetCurrent(total - int64(remaining/time.Millisecond))
		time.Sleep(200 * time.Millisecond)
	}
	p.Wait()
	fmt.Printf("Timer %s finished.\n", name)
	return nil
}

// pickTimer resolves the watch target: exact id when given, otherwise
// the next timer to expire.
func pickTimer(client *chimecli.Client, id string) (*cm.Timer, error) {
	resp, err := client.ListTimers()
	if err != nil {
		return nil, err
	}
	if len(resp.Timers) == 0 {
		return nil, fmt.Errorf("no timers running")
	}
	if id == "" {
		return &resp.Timers[0], nil
	}
	for i := range resp.Timers {
		if resp.Timers[i].ID == id {
			return &resp.Timers[i], nil
		}
	}
	return nil, fmt.Errorf("no timer with id %s", id)
}
