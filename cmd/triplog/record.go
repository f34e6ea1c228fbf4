package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/timeline"
)

// recorder is the part of service.RecordingService the interactive loop drives.
type recorder interface {
	Status() timeline.Snapshot
	Start(startLocation string) (timeline.Snapshot, error)
	AddEvent(label string) (domain.Event, error)
	AttachPhoto(seq int, ref string) (domain.Event, error)
	SetStartLocation(label string) (timeline.Snapshot, error)
	Reset()
	Save(ctx context.Context, notes string) (domain.Trip, error)
}

// runRecorder starts a recording and turns each input line into an event
// until :save, :reset, :quit, end of input or ctx cancellation. Input that
// ends without :save discards the recording.
func runRecorder(ctx context.Context, rec recorder, from string, tick time.Duration, in io.Reader, out io.Writer) error {
	snap, err := rec.Start(from)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Recording started at %s. Type an event label and press Enter; :save to finish.\n",
		timeline.FormatClock(*snap.StartTime))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)

	var ticks <-chan int64
	if tick > 0 {
		ticks = timeline.Tick(ctx, tick, func() int64 { return rec.Status().ElapsedSeconds })
	}

	for {
		select {
		case <-ctx.Done():
			rec.Reset()
			fmt.Fprintln(out, "Interrupted; recording discarded.")
			return nil
		case secs, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			fmt.Fprintf(out, "Elapsed %s\n", timeline.FormatElapsed(secs))
		case line, ok := <-lines:
			if !ok {
				rec.Reset()
				fmt.Fprintln(out, "Input closed; recording discarded.")
				return nil
			}
			done, err := handleLine(ctx, rec, strings.TrimSpace(line), out)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if done {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine and sends each line until ctx ends
// or in is exhausted, then closes the channel. A Read blocked on a terminal
// cannot be interrupted, so after ctx ends the goroutine lingers until the
// next line or EOF arrives. The CLI exits right after, and callers that own
// in can close it to release the goroutine.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
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
	}()
	return lines
}

// handleLine applies one line of input and reports whether the session is over.
func handleLine(ctx context.Context, rec recorder, line string, out io.Writer) (bool, error) {
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		ev, err := rec.AddEvent(line)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%d- %s at %s (%s)\n", ev.Seq, ev.Label, timeline.FormatClock(ev.Time), timeline.FormatOptionalDelta(ev.Delta))
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "from":
		if _, err := rec.SetStartLocation(arg); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "From: %s\n", arg)
	case "photo":
		seqStr, ref, _ := strings.Cut(arg, " ")
		seq, err := strconv.Atoi(seqStr)
		if err != nil {
			return false, fmt.Errorf("usage: :photo <event number> <ref>")
		}
		if _, err := rec.AttachPhoto(seq, strings.TrimSpace(ref)); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Photo attached to event %d\n", seq)
	case "status":
		snap := rec.Status()
		fmt.Fprintf(out, "%s\n\nElapsed %s\n", snap.Summary, snap.Elapsed)
	case "save":
		trip, err := rec.Save(ctx, arg)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s\n\nSaved trip %s\n", trip.Summary, trip.ID)
		return true, nil
	case "reset", "quit":
		rec.Reset()
		fmt.Fprintln(out, "Recording discarded.")
		return true, nil
	default:
		return false, fmt.Errorf("unknown command :%s", cmd)
	}
	return false, nil
}
