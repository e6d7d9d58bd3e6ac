package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newListenCmd() *cobra.Command {
	var username, password string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Log in and stream live game events",
		Long: `Log in to the server and print every broadcast event as it arrives.

Events include player movement, block changes, combat, chat, and
join/leave notices. Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerURL)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := login(client, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Listening as %s. Ctrl+C to stop.\n", summary.Username)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			events := make(chan error, 1)
			go func() {
				events <- streamEvents(client, jsonOutput)
			}()

			select {
			case <-sigCh:
				return nil
			case err := <-events:
				return err
			}
		},
	}

	credentialFlags(cmd, &username, &password)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// streamEvent is one received event as printed in json mode.
type streamEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(client *GameClient, jsonOutput bool) error {
	for {
		event, payload, err := client.Next()
		if err != nil {
			return err
		}

		if jsonOutput {
			line, err := json.Marshal(streamEvent{
				Time:  time.Now(),
				Event: event,
				Data:  payload,
			})
			if err != nil {
				continue
			}
			fmt.Println(string(line))
			continue
		}

		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), event, string(payload))
	}
}
