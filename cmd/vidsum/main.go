package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/vidsum/internal/config"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/pipeline"
	"github.com/nguyentantai21042004/vidsum/internal/render"
	"github.com/nguyentantai21042004/vidsum/internal/watcher"
)

var (
	configFlag     string
	urlFlag        string
	langFlag       string
	modelFlag      string
	cookiesFlag    string
	noSaveFlag     bool
	keyframesFlag  bool
	visionFlag     bool
	whisperFlag    bool
	noCacheFlag    bool
	extractiveFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "vidsum [url]",
	Short: "AI video transcript summarizer",
	Long: `vidsum fetches a video's transcript (platform captions, or Whisper ASR as
a fallback), runs a map-reduce summarization over it, and writes a
structured summary bundle with optional keyframe images and study notes.

Examples:
  vidsum https://www.youtube.com/watch?v=dQw4w9WgXcQ
  vidsum BV1xx411c7mD --lang zh --keyframes
  vidsum --url https://youtu.be/dQw4w9WgXcQ --vision --extractive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory for URL list files and summarize each video",
	RunE:  runWatch,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "config.yaml", "Path to config file")
	pf.StringVar(&langFlag, "lang", "", "Output language (zh/en)")
	pf.StringVar(&modelFlag, "model", "", "LLM model to use")
	pf.StringVar(&cookiesFlag, "cookies", "", "Path to cookies.txt")
	pf.BoolVar(&keyframesFlag, "keyframes", false, "Extract keyframes for each chapter")
	pf.BoolVar(&visionFlag, "vision", false, "Refine summary using keyframe images (implies --keyframes)")
	pf.BoolVar(&whisperFlag, "whisper", false, "Enable Whisper ASR fallback for videos without captions")
	pf.BoolVar(&noCacheFlag, "no-cache", false, "Disable the summary cache and recompute")
	pf.BoolVar(&extractiveFlag, "extractive", false, "Also generate extractive study notes without the LLM")

	rootCmd.Flags().StringVar(&urlFlag, "url", "", "Video URL (YouTube or Bilibili)")
	rootCmd.Flags().BoolVar(&noSaveFlag, "no-save", false, "Do not save the output bundle")

	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if langFlag != "" {
		cfg.Languages.Output = langFlag
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	return cfg, nil
}

func runOptions() pipeline.Options {
	return pipeline.Options{
		AllowASR:         whisperFlag,
		ExtractKeyframes: keyframesFlag,
		UseVision:        visionFlag,
		Extractive:       extractiveFlag,
		ForceRefresh:     noCacheFlag,
		NoSave:           noSaveFlag,
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	url := urlFlag
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" {
		cmd.Help()
		return fmt.Errorf("missing URL: provide a positional URL or --url")
	}
	url = normalizeURL(url)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)

	pipe, err := pipeline.Build(cfg, cookiesFlag, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := pipe.Run(ctx, url, runOptions())
	if err != nil {
		return err
	}

	fmt.Println(render.ToMarkdown(result.Metadata, result.Summary))
	if result.OutputDir != "" {
		fmt.Printf("\nSaved output to %s\n", result.OutputDir)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		return fmt.Errorf("create input dir: %w", err)
	}

	pipe, err := pipeline.Build(cfg, cookiesFlag, log)
	if err != nil {
		return err
	}

	opts := runOptions()
	handler := func(ctx context.Context, url string) error {
		_, err := pipe.Run(ctx, normalizeURL(url), opts)
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Monitoring %s, output in %s. Press Ctrl+C to stop.", cfg.Paths.Input, cfg.Paths.Output)
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
