// sheetmidi streams a continuously edited spreadsheet as live MIDI notes.
//
// Make a header row with a column named `pitch` and any of the other
// supported fields (channel, loop, onset, duration, velocity, probability),
// then add one row per note. The sheet is re-read every few seconds, so
// edits take effect while the notes keep looping.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheetmidi/sheetmidi/internal/logger"
	"github.com/sheetmidi/sheetmidi/sdk/contracts"
	"github.com/sheetmidi/sheetmidi/sdk/sheetmidi"
)

func main() {
	spreadsheet := flag.String("spreadsheet", "", "ID of the Google Sheet to play")
	secrets := flag.String("secrets", "client_secret.json", "path to service-account secrets JSON")
	readRange := flag.String("range", "", "A1-notation range to read (default: first sheet)")
	csvFile := flag.String("csv", "", "play a local CSV file instead of a Google Sheet")
	port := flag.String("port", "", "MIDI output port (default: a virtual port / first destination)")
	client := flag.String("client", "sheetmidi", "MIDI client name as seen by the DAW")
	receive := flag.Float64("receive", 2.0, "receive interval in seconds")
	send := flag.Float64("send", 0.002, "send interval in seconds")
	debug := flag.Bool("debug", false, "set logging level to DEBUG")
	list := flag.Bool("list", false, "list MIDI output destinations and exit")
	flag.Parse()

	log := logger.NewZapLogger()

	level := contracts.InfoLevel
	if *debug {
		level = contracts.DebugLevel
	}

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithReceiveInterval(time.Duration(*receive * float64(time.Second))),
		contracts.WithSendInterval(time.Duration(*send * float64(time.Second))),
		contracts.WithSinkConfig(contracts.SinkConfig{
			ClientName: *client,
			PortName:   *port,
		}),
	}
	switch {
	case *csvFile != "":
		opts = append(opts, contracts.WithCSVFile(*csvFile))
	case *spreadsheet != "":
		opts = append(opts, contracts.WithSheet(contracts.SheetConfig{
			SpreadsheetID:   *spreadsheet,
			CredentialsFile: *secrets,
			ReadRange:       *readRange,
		}))
	case !*list:
		fmt.Fprintln(os.Stderr, "either -spreadsheet or -csv is required")
		flag.Usage()
		os.Exit(2)
	default:
		// -list alone still needs a source to build the player; a CSV that
		// is never fetched will do.
		opts = append(opts, contracts.WithCSVFile(os.DevNull))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player, err := sheetmidi.NewPlayer(ctx, opts...)
	if err != nil {
		log.Fatal("failed to initialize player", log.Field().Error("error", err))
	}
	defer player.Close()

	if *list {
		devices, err := player.Devices()
		if err != nil {
			log.Fatal("failed to list devices", log.Field().Error("error", err))
		}
		for i, device := range devices {
			fmt.Printf("%d: %s\n", i, device.Name)
		}
		return
	}

	if err := player.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("playback stopped", log.Field().Error("error", err))
	}
	log.Info("goodbye")
}
