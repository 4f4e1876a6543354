package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch <brd-id>",
	Short:   "Watch a BRD's event stream",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		interval, _ := cmd.Flags().GetDuration("interval")
		once, _ := cmd.Flags().GetBool("once")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[int64]bool)

		// Initial query.
		if err := queryAndPrintEvents(ctx, id, seen); err != nil {
			return err
		}
		if once {
			return nil
		}

		// Event-driven when NATS is reachable, polling otherwise.
		natsURL := os.Getenv("PIQ_NATS_URL")
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, id, seen)
		}
		return watchPoll(ctx, interval, id, seen)
	},
}

// watchNATS re-queries the event log whenever activity arrives on the
// projectiq subjects, with debounce to coalesce bursts.
func watchNATS(ctx context.Context, natsURL, id string, seen map[int64]bool) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("projectiq.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			debounce.Reset(250 * time.Millisecond)
		case <-reconnectCh:
			if err := queryAndPrintEvents(ctx, id, seen); err != nil {
				log.Printf("query error: %v", err)
			}
		case <-debounce.C:
			if err := queryAndPrintEvents(ctx, id, seen); err != nil {
				log.Printf("query error: %v", err)
			}
		}
	}
}

// watchPoll re-queries the event log at a fixed interval.
func watchPoll(ctx context.Context, interval time.Duration, id string, seen map[int64]bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := queryAndPrintEvents(ctx, id, seen); err != nil {
				log.Printf("query error: %v", err)
			}
		}
	}
}

// queryAndPrintEvents fetches the BRD's events and prints any not yet seen.
func queryAndPrintEvents(ctx context.Context, id string, seen map[int64]bool) error {
	evts, err := iqClient.GetEvents(ctx, id)
	if err != nil {
		return fmt.Errorf("getting events for %s: %w", id, err)
	}

	var fresh []*model.Event
	for _, e := range evts {
		if !seen[e.ID] {
			seen[e.ID] = true
			fresh = append(fresh, e)
		}
	}
	if len(fresh) > 0 {
		printEventsTable(fresh)
	}
	return nil
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval when NATS is unavailable")
	watchCmd.Flags().Bool("once", false, "print current events and exit")
}
