package panel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const sliderWidth = 20

// Terminal renders the panel as text. Identical consecutive views are
// printed once.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	last *View
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Render(v View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last != nil && *t.last == v {
		return
	}
	t.last = &v

	power := "[ ] off"
	if v.PowerChecked {
		power = "[x] on"
	}
	fmt.Fprintf(t.out, "%s  %s\n", sliderBar(v.Slider), v.TargetLabel)
	fmt.Fprintf(t.out, "%s\n", v.CurrentLabel)
	fmt.Fprintf(t.out, "Power: %s\n", power)
	if v.WeatherLabel != "" {
		fmt.Fprintf(t.out, "%s\n", v.WeatherLabel)
	}
	fmt.Fprintln(t.out)
}

// sliderBar draws "[50 ----o---- 90]".
func sliderBar(s SliderView) string {
	pos := 0
	if span := s.Max - s.Min; span > 0 {
		pos = (s.Value - s.Min) * sliderWidth / span
	}
	pos = max(0, min(pos, sliderWidth))
	bar := []byte(strings.Repeat("-", sliderWidth+1))
	bar[pos] = 'o'
	return fmt.Sprintf("[%d %s %d]", s.Min, bar, s.Max)
}

// Controls is what the terminal drives.
type Controls interface {
	SetTarget(v int)
	Increase()
	Decrease()
	SetPower(on bool)
	Snapshot() Snapshot
}

type commandKind int

const (
	cmdNone commandKind = iota
	cmdSet
	cmdIncrease
	cmdDecrease
	cmdOn
	cmdOff
	cmdToggle
	cmdQuit
)

type command struct {
	kind  commandKind
	value int
}

// CommandHelp lists the terminal commands.
const CommandHelp = "commands: + - set <n> <n> on off toggle q"

// parseCommand reads one input line.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{kind: cmdNone}, nil
	}
	switch fields[0] {
	case "+", "increase", "up":
		return command{kind: cmdIncrease}, nil
	case "-", "decrease", "down":
		return command{kind: cmdDecrease}, nil
	case "on":
		return command{kind: cmdOn}, nil
	case "off":
		return command{kind: cmdOff}, nil
	case "p", "power", "toggle":
		return command{kind: cmdToggle}, nil
	case "q", "quit", "exit":
		return command{kind: cmdQuit}, nil
	case "set":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: set <n>")
		}
		return parseTarget(fields[1])
	default:
		return parseTarget(fields[0])
	}
}

func parseTarget(s string) (command, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return command{}, fmt.Errorf("unknown command %q (%s)", s, CommandHelp)
	}
	return command{kind: cmdSet, value: v}, nil
}

func (c command) apply(ctl Controls) {
	switch c.kind {
	case cmdSet:
		ctl.SetTarget(c.value)
	case cmdIncrease:
		ctl.Increase()
	case cmdDecrease:
		ctl.Decrease()
	case cmdOn:
		ctl.SetPower(true)
	case cmdOff:
		ctl.SetPower(false)
	case cmdToggle:
		ctl.SetPower(!ctl.Snapshot().Heater.IsOn)
	}
}

// RunCommands reads one command per line from in and applies it to ctl. It
// returns nil on "q" or end of input, and ctx.Err() when ctx is cancelled.
// Parse errors go to errOut.
func RunCommands(ctx context.Context, in io.Reader, ctl Controls, errOut io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			cmd, err := parseCommand(line)
			if err != nil {
				fmt.Fprintln(errOut, err)
				continue
			}
			if cmd.kind == cmdQuit {
				return nil
			}
			cmd.apply(ctl)
		}
	}
}
