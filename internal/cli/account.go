package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldsmp/worlds-server/internal/model"
)

func credentialFlags(cmd *cobra.Command, username, password *string) {
	cmd.Flags().StringVarP(username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func newRegisterCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := Dial(cfg.ServerURL)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Send(model.EventRegister, model.CredentialsPayload{
				Username: username,
				Password: password,
			}); err != nil {
				return err
			}

			_, payload, err := client.WaitFor(model.EventRegisterResult)
			if err != nil {
				return err
			}

			var result model.ResultPayload
			if err := json.Unmarshal(payload, &result); err != nil {
				return fmt.Errorf("malformed result: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			if !result.Success {
				return fmt.Errorf("registration failed")
			}
			return nil
		},
	}

	credentialFlags(cmd, &username, &password)
	return cmd
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session summary",
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

			out := NewOutput(cfg.Output)
			out.Print(*summary)
			return nil
		},
	}

	credentialFlags(cmd, &username, &password)
	return cmd
}

// login sends the login event and collects the serverInfo and init events
// into a printable summary.
func login(client *GameClient, username, password string) (*SessionSummary, error) {
	if err := client.Send(model.EventLogin, model.CredentialsPayload{
		Username: username,
		Password: password,
	}); err != nil {
		return nil, err
	}

	summary := &SessionSummary{}
	for {
		event, payload, err := client.WaitFor(
			model.EventLoginResult, model.EventServerInfo, model.EventInit,
		)
		if err != nil {
			return nil, err
		}

		switch model.EventType(event) {
		case model.EventLoginResult:
			var result model.ResultPayload
			if err := json.Unmarshal(payload, &result); err != nil {
				return nil, fmt.Errorf("malformed result: %w", err)
			}
			if !result.Success {
				return nil, fmt.Errorf("login failed: %s", result.Error)
			}
		case model.EventServerInfo:
			var info model.ServerInfoPayload
			if err := json.Unmarshal(payload, &info); err != nil {
				return nil, fmt.Errorf("malformed server info: %w", err)
			}
			summary.Server = info.Name
			summary.Version = info.Version
			summary.Players = info.CurrentPlayers
			summary.MaxPlayers = info.MaxPlayers
		case model.EventInit:
			var init model.InitPayload
			if err := json.Unmarshal(payload, &init); err != nil {
				return nil, fmt.Errorf("malformed init: %w", err)
			}
			summary.ID = init.ID
			summary.Username = init.Username
			summary.Blocks = len(init.World)
			return summary, nil
		}
	}
}
