package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"convenient-cf/internal/chooser"
	"convenient-cf/internal/config"
	"convenient-cf/internal/executor"
	"convenient-cf/internal/monitor"
	"convenient-cf/internal/release"
)

const (
	appVersion = "v0.1.0"
	configPath = "config.yml"
)

type app struct {
	cfg    *config.Config
	runner *executor.Executor
	mon    *monitor.Monitor
	rel    *release.Client
	choose *chooser.Chooser
	stdin  *bufio.Scanner
}

func main() {
	// 1. Load Configuration
	// It looks for config.yml in the working directory.
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		// First run: write the defaults so the user has a file to edit.
		if err := config.Save(configPath, cfg); err != nil {
			log.Printf("Could not create %s: %v", configPath, err)
		}
	}

	// 2. Locate the ffmpeg binary
	mon, err := monitor.New(cfg.FFmpegPath)
	if err != nil {
		log.Fatalf("Error: ffmpeg is not installed or not accessible: %v", err)
	}

	// 3. Build the executor
	runner := executor.New()
	runner.SetAutoOverwrite(cfg.AutoOverwrite)

	// 4. Ctrl+C stops a running encode; a second one exits the menu.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range stop {
			if runner.IsRunning() {
				log.Println("Stopping the current ffmpeg run...")
				runner.Stop()
				continue
			}
			fmt.Println("\nExiting the program. Goodbye!")
			os.Exit(0)
		}
	}()

	stdin := bufio.NewScanner(os.Stdin)
	a := &app{
		cfg:    cfg,
		runner: runner,
		mon:    mon,
		rel:    release.NewClient(cfg.ReleaseEndpoint),
		choose: chooser.NewFromScanner(stdin, os.Stdout),
		stdin:  stdin,
	}
	a.mainMenu()
}

func (a *app) mainMenu() {
	for {
		fmt.Printf("Convenient-CF %s\n", appVersion)
		fmt.Println("1.ffmpeg tools")
		fmt.Println("2.about")
		fmt.Println("3.exit")

		choice, ok := a.readChoice("Please enter your choice (1-3): ")
		if !ok {
			return
		}
		dividingLine(0)

		switch choice {
		case 1:
			a.ffmpegTools()
		case 2:
			a.about()
		case 3:
			fmt.Println("Exiting the program. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

// readChoice reads a menu selection; ok is false when input has ended.
func (a *app) readChoice(prompt string) (int, bool) {
	fmt.Print(prompt)
	if !a.stdin.Scan() {
		fmt.Println()
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.stdin.Text()))
	if err != nil {
		return -1, true
	}
	return n, true
}

func dividingLine(length int) {
	if length <= 0 {
		length = 66
	}
	fmt.Println(strings.Repeat("-", length))
}
