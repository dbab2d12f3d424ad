// Command attendance-chat runs an interactive terminal conversation with the
// attendance agent. Useful for trying the pipeline without an HTTP client.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/autowhat/attendance-agent/app"
	"github.com/autowhat/attendance-agent/config"
	"github.com/autowhat/attendance-agent/core"
	"github.com/autowhat/attendance-agent/engine"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	employeeID := flag.String("employee", "emp-001", "employee ID for this session")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[MAIN] load config: %v", err)
	}

	ctx := context.Background()
	a, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("[MAIN] build pipeline: %v", err)
	}
	defer a.Close()

	fmt.Printf("Attendance agent chat (employee %s). Type 'quit' to exit.\n", *employeeID)

	var history []core.Turn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		out, err := a.Engine.Run(ctx, &engine.Input{
			EmployeeID: *employeeID,
			Message:    line,
			History:    history,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Printf("agent: %s\n", out.Reply)

		history = append(history,
			core.Turn{Role: core.RoleUser, Text: line},
			core.Turn{Role: core.RoleAgent, Text: out.Reply},
		)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("[MAIN] read input: %v", err)
	}
}
