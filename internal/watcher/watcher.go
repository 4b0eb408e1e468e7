package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

// settleDelay gives the writer time to finish the file before it is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir  string
	handler   Handler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start blocks, monitoring the input directory until the context is
// cancelled. Each created .txt or .urls file is read as a list of video
// URLs, one per line; lines starting with # are skipped.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for URL list files (.txt, .urls)", w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing runs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isURLFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New URL file detected: %s", event.Name)
			time.Sleep(settleDelay)
			if err := w.dispatchFile(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to read %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) dispatchFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	urls := parseURLs(string(data))
	if len(urls) == 0 {
		w.logger.Warn(ctx, "No URLs found in %s", path)
		return nil
	}
	w.logger.Info(ctx, "Queueing %d URLs from %s", len(urls), filepath.Base(path))

	for _, url := range urls {
		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}

		w.wg.Add(1)
		go func(url string) {
			defer w.wg.Done()
			defer func() { <-w.semaphore }()

			if err := w.handler(ctx, url); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", url, err)
			}
		}(url)
	}
	return nil
}

func isURLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".urls":
		return true
	}
	return false
}

func parseURLs(content string) []string {
	var urls []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}
