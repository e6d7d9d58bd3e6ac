package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/worldsmp/worlds-server/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
		fmt.Printf("Players: %d\n", v.Players)
	case model.ResultPayload:
		o.printResult(v)
	case SessionSummary:
		o.printSessionSummary(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printResult(r model.ResultPayload) {
	if r.Success {
		fmt.Println("OK")
	} else {
		fmt.Printf("Failed: %s\n", r.Error)
	}
}

// SessionSummary is the printable digest of a successful login.
type SessionSummary struct {
	ID         model.ConnID `json:"id"`
	Username   string       `json:"username"`
	Server     string       `json:"server"`
	Version    string       `json:"version"`
	Players    int          `json:"players"`
	MaxPlayers int          `json:"maxPlayers"`
	Blocks     int          `json:"blocks"`
}

func (o *Output) printSessionSummary(s SessionSummary) {
	fmt.Printf("Logged in as %s (%s)\n", s.Username, s.ID)
	fmt.Printf("Server: %s (v%s)\n", s.Server, s.Version)
	fmt.Printf("Players: %d/%d\n", s.Players, s.MaxPlayers)
	fmt.Printf("World: %d blocks\n", s.Blocks)
}
