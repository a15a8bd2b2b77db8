package main

import (
	"flag"
	"fmt"
	"os"

	"todo-service/config"
	"todo-service/server"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run")
	flag.Parse()

	switch *commandFlag {
	case "start":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "configuration error:", err)
			os.Exit(1)
		}
		server.StartServer(cfg)
	default:
		fmt.Println("Usage: go run main.go --command start")
		os.Exit(1)
	}
}
