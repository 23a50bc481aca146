package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"convenient-cf/internal/executor"
	"convenient-cf/internal/filecheck"
)

// tailLines is how much of the transcript a run shows when the
// full_output setting is off.
const tailLines = 10

func (a *app) ffmpegTools() {
	fmt.Println("Checking ffmpeg version...")
	banner, err := a.mon.Version(context.Background(), false)
	if err != nil {
		fmt.Println("Error: ffmpeg is not installed or not accessible.")
		return
	}
	fmt.Println(banner)

	for {
		fmt.Println("1.ffmpeg version")
		fmt.Println("2.convert video format")
		fmt.Println("3.extract audio from video")
		fmt.Println("4.merge videos")
		fmt.Println("5.check for ffmpeg updates")
		fmt.Println("6.return to main menu")

		choice, ok := a.readChoice("Please enter your choice (1-6): ")
		if !ok {
			return
		}
		dividingLine(0)

		switch choice {
		case 1:
			a.showVersion()
		case 2:
			fmt.Println("Converting video format...")
			a.convertVideo()
		case 3:
			fmt.Println("Extracting audio from video...")
			a.extractAudio()
		case 4:
			fmt.Println("Merging videos...")
			a.mergeVideos()
		case 5:
			a.checkUpdates()
		case 6:
			fmt.Println("Returning to main menu...")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
		dividingLine(0)
	}
}

func (a *app) showVersion() {
	out, err := a.mon.Version(context.Background(), a.cfg.FullOutput)
	if err != nil {
		log.Printf("Version check failed: %v", err)
		return
	}
	if a.cfg.FullOutput {
		fmt.Println("Full output of ffmpeg version command:")
		dividingLine(100)
		fmt.Print(out)
		dividingLine(100)
	} else {
		fmt.Println(out)
	}
}

func (a *app) convertVideo() {
	input := a.choose.Single("Please enter the video file path to convert:")
	if input == "" {
		return
	}
	if filecheck.Check(input) != filecheck.Video {
		fmt.Println("Error: The input file is not a valid video file.")
		return
	}

	output := a.choose.Single("Please enter the output video file path:")
	if output == "" {
		return
	}
	if filecheck.ByExtension(output) != filecheck.Video {
		fmt.Println("Error: The output file path is not a valid video file path.")
		return
	}

	a.run(buildCmd(a.mon.Path(), "-i", quote(input), quote(output)))
}

func (a *app) extractAudio() {
	input := a.choose.Single("Please enter the video file path:")
	if input == "" {
		return
	}
	if filecheck.Check(input) != filecheck.Video {
		fmt.Println("Error: The input file is not a valid video file.")
		return
	}

	output := a.choose.Single("Please enter the output audio file path:")
	if output == "" {
		return
	}
	if filecheck.ByExtension(output) != filecheck.Audio {
		fmt.Println("Error: The output file path is not a valid audio file path.")
		return
	}

	a.run(buildCmd(a.mon.Path(), "-i", quote(input), "-vn", quote(output)))
}

func (a *app) mergeVideos() {
	inputs := a.choose.Multi("Please enter the video files to merge (in order):")
	if len(inputs) < 2 {
		fmt.Println("Error: merging needs at least two input files.")
		return
	}
	for _, in := range inputs {
		if filecheck.Check(in) != filecheck.Video {
			fmt.Printf("Error: %s is not a valid video file.\n", in)
			return
		}
	}

	output := a.choose.Single("Please enter the output video file path:")
	if output == "" {
		return
	}
	if filecheck.ByExtension(output) != filecheck.Video {
		fmt.Println("Error: The output file path is not a valid video file path.")
		return
	}

	// The concat demuxer wants its inputs listed in a file.
	list, err := os.CreateTemp("", "ccf-concat-*.txt")
	if err != nil {
		log.Printf("Could not create concat list: %v", err)
		return
	}
	defer os.Remove(list.Name())
	for _, in := range inputs {
		fmt.Fprintf(list, "file '%s'\n", in)
	}
	list.Close()

	a.run(buildCmd(a.mon.Path(), "-f", "concat", "-safe", "0",
		"-i", quote(list.Name()), "-c", "copy", quote(output)))
}

func (a *app) checkUpdates() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	banner, err := a.mon.Version(ctx, false)
	if err == nil {
		fmt.Println("Installed:", banner)
	}

	info, err := a.rel.Latest(ctx)
	if err != nil {
		log.Printf("Update check failed: %v", err)
		return
	}
	fmt.Printf("Latest ffmpeg release: %s (%s)\n", info.Version, info.Permalink)
}

func (a *app) about() {
	fmt.Printf("Convenient-CF ffmpeg tools %s\n", appVersion)
	fmt.Println("This tool provides various ffmpeg functionalities such as format conversion, audio extraction, and video merging.")

	caps, err := a.mon.Capabilities(context.Background())
	if err != nil {
		return
	}
	fmt.Println(caps.Banner)
	if len(caps.HardwareEncoders) > 0 {
		fmt.Printf("Hardware encoders: %s\n", strings.Join(caps.HardwareEncoders, ", "))
	} else {
		fmt.Println("Hardware encoders: none detected (software encoding only)")
	}
}

// run executes one ffmpeg command through the supervisor and presents
// its result.
func (a *app) run(command string) {
	if stats, err := a.mon.Stats(context.Background()); err == nil && stats.IsBusy {
		fmt.Printf("Warning: system is busy (CPU %.0f%%, RAM %.0f%%); the encode may be slow.\n",
			stats.CPUPercent, stats.RAMPercent)
	}

	log.Printf("Running: %s", command)
	res, err := a.runner.Execute(command)
	if err != nil {
		log.Printf("Execution failed: %v", err)
		return
	}
	a.printResult(res)
}

func (a *app) printResult(res executor.Result) {
	dividingLine(100)
	if a.cfg.FullOutput {
		fmt.Print(res.Output)
	} else {
		fmt.Print(lastLines(res.Output, tailLines))
	}
	dividingLine(100)

	if res.OverwritePrompted {
		if res.OverwriteConfirmed {
			fmt.Println("The output file existed and was overwritten.")
		} else {
			fmt.Println("The output file already exists; re-run with auto_overwrite enabled to replace it.")
		}
	}

	if res.Success {
		fmt.Println("Done.")
		return
	}
	fmt.Printf("Failed (exit code %d).\n", res.ExitCode)
	if res.ErrorLine != "" {
		fmt.Println("Last error:", res.ErrorLine)
	}
}

// buildCmd joins command parts with single spaces.
func buildCmd(parts ...string) string {
	return strings.Join(parts, " ")
}

// quote shields a path containing spaces from shell word splitting.
func quote(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}

// lastLines returns the final n lines of s, keeping the trailing newline.
func lastLines(s string, n int) string {
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}
