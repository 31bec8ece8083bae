// forgetool is a headless CLI for the generation service: submit a
// prompt and wait for the result, list the server gallery, or fetch
// artifacts. No window, no GL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/logger"
)

var (
	flagPrompt = flag.String("prompt", "", "Submit a generation request and wait for the result")
	flagList   = flag.Bool("list", false, "List models available on the server")
	flagFetch  = flag.String("fetch", "", "Download the artifacts of a named model")
	flagOut    = flag.String("out", "", "Download directory (default: generation.output_dir)")
)

var errCancelled = errors.New("generation cancelled")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Quiet by default; the nop logger swallows the client's log calls.
	// -debug turns on console logging for troubleshooting.
	if cfg.Logging.Level == "debug" {
		if err := logger.Init("debug", cfg.Logging.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	client := generation.NewClient(generation.Config{
		BaseURL:         cfg.Server.BaseURL,
		RequestTimeout:  cfg.Server.RequestTimeout,
		DownloadTimeout: cfg.Server.DownloadTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outDir := *flagOut
	if outDir == "" {
		outDir = cfg.Generation.OutputDir
	}

	switch {
	case *flagList:
		err = cmdList(ctx, client)
	case *flagFetch != "":
		err = cmdFetch(ctx, client, *flagFetch, outDir)
	case *flagPrompt != "":
		err = cmdGenerate(ctx, client, cfg, *flagPrompt, outDir)
	default:
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`forgetool - headless client for the MeshForge generation service

Usage:
  forgetool -prompt "a red cube" [-quality high] [-out dir]
  forgetool -list
  forgetool -fetch model_123.ply [-out dir]

Flags:
  -prompt string   Submit a prompt, poll to completion, download artifacts
  -list            Print the server's model gallery
  -fetch string    Download one artifact, or a whole set when the name
                   has no extension (tries .ply/.glb/.obj)
  -out string      Download directory (default from config)
  -server string   Generation server base URL
  -quality string  Generation quality: draft, standard or high
  -config string   Path to config file
  -debug           Verbose logging

Examples:
  forgetool -prompt "a wooden chair" -quality high
  forgetool -list
  forgetool -fetch a_wooden_chair_64_1724490000 -out ./models`)
}

// cmdGenerate submits the prompt, prints progress until the job
// resolves, then downloads every artifact of the result.
func cmdGenerate(ctx context.Context, client *generation.Client, cfg *config.Config, prompt, outDir string) error {
	quality, err := generation.ParseQuality(cfg.Generation.DefaultQuality)
	if err != nil {
		return err
	}

	if cfg.Generation.EnhancePrompts {
		prompt = generation.EnhancePrompt(prompt)
		fmt.Printf("Enhanced prompt: %s\n", prompt)
	}

	ctrl := generation.NewController(client, cfg.Server.PollInterval)
	job, err := ctrl.Submit(ctx, prompt, quality)
	if err != nil {
		return err
	}
	fmt.Printf("Job %s submitted (quality: %s)\n", job.ID, quality)

	files, err := waitForResult(ctx, ctrl)
	if err != nil {
		return err
	}

	fmt.Println("Generation completed.")
	return downloadAll(ctx, client, files, outDir)
}

// waitForResult consumes controller events until a terminal one
// arrives. An interrupt cancels the job and drains its terminal event.
func waitForResult(ctx context.Context, ctrl *generation.Controller) (generation.Files, error) {
	done := ctx.Done()
	lastLine := ""

	for {
		select {
		case <-done:
			// Cancel emits the terminal cancelled event; keep draining.
			ctrl.Cancel()
			done = nil

		case ev := <-ctrl.Events():
			switch ev.Type {
			case generation.EventProgress:
				line := fmt.Sprintf("%3.0f%%  %s", ev.Job.Progress, ev.Job.Message)
				if line != lastLine {
					fmt.Println(line)
					lastLine = line
				}

			case generation.EventCompleted:
				return ev.Job.Files, nil

			case generation.EventError:
				if ev.Err != nil {
					return generation.Files{}, ev.Err
				}
				return generation.Files{}, errors.New(ev.Job.Message)

			case generation.EventCancelled:
				return generation.Files{}, errCancelled
			}
		}
	}
}

// downloadAll fetches every artifact of a completed job concurrently.
func downloadAll(ctx context.Context, client *generation.Client, files generation.Files, outDir string) error {
	names := files.List()
	if len(names) == 0 {
		fmt.Println("No artifacts reported for this job.")
		return nil
	}

	paths, err := client.DownloadAll(ctx, files, outDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Downloaded: %s\n", p)
	}
	return nil
}

// cmdList prints the server gallery, newest first.
func cmdList(ctx context.Context, client *generation.Client) error {
	models, err := client.ListModels(ctx)
	if err != nil {
		return err
	}

	if len(models) == 0 {
		fmt.Println("No models on server.")
		return nil
	}

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Created > models[j].Created
	})

	fmt.Printf("%-20s %-40s %s\n", "CREATED", "NAME", "FILE")
	for _, m := range models {
		created := time.Unix(int64(m.Created), 0).Format("2006-01-02 15:04:05")
		fmt.Printf("%-20s %-40s %s\n", created, m.Name, m.PLY)
	}
	fmt.Fprintf(os.Stderr, "\n(%d models)\n", len(models))
	return nil
}

// cmdFetch downloads one artifact by filename, or the whole artifact
// set when the name carries no extension. Missing set members are
// reported but not fatal as long as one download lands.
func cmdFetch(ctx context.Context, client *generation.Client, name, outDir string) error {
	if filepath.Ext(name) != "" {
		path, err := client.Download(ctx, name, outDir)
		if err != nil {
			return err
		}
		fmt.Printf("Downloaded: %s\n", path)
		return nil
	}

	var (
		fetched int
		lastErr error
	)
	for _, ext := range []string{".ply", ".glb", ".obj"} {
		path, err := client.Download(ctx, name+ext, outDir)
		if err != nil {
			lastErr = err
			fmt.Fprintf(os.Stderr, "  %s%s: not available\n", name, ext)
			continue
		}
		fmt.Printf("Downloaded: %s\n", path)
		fetched++
	}

	if fetched == 0 {
		if lastErr != nil {
			return lastErr
		}
		return fmt.Errorf("no artifacts found for %s", name)
	}
	fmt.Fprintf(os.Stderr, "\n(%d of 3 formats fetched)\n", fetched)
	return nil
}
