// Copyright (c) 2024, 0x0BSoD. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/feedPoster/internal/config"
	"github.com/0x0BSoD/feedPoster/internal/feedlist"
	"github.com/0x0BSoD/feedPoster/internal/ledger"
	"github.com/0x0BSoD/feedPoster/internal/logging"
	"github.com/0x0BSoD/feedPoster/internal/model"
	"github.com/0x0BSoD/feedPoster/internal/poller"
	"github.com/0x0BSoD/feedPoster/internal/publisher"
	"github.com/0x0BSoD/feedPoster/internal/reporter"
	"github.com/0x0BSoD/feedPoster/internal/scrape"
	"github.com/0x0BSoD/feedPoster/internal/source"
	"github.com/0x0BSoD/feedPoster/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("missing required configuration", "err", err)
		os.Exit(config.ExitCodeBadConfig)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Error("failed to create botAPI", "err", err)
		os.Exit(1)
	}

	var summarizer poller.Summarizer
	switch cfg.AIType {
	case "openai":
		if cfg.AIKey == "" {
			logger.Error(`ai_key is required when ai_type is "openai"`)
			os.Exit(config.ExitCodeBadConfig)
		}
		summarizer = summary.NewOpenAISummarizer(cfg.AIBaseURL, cfg.AIKey, cfg.AIPrompt, cfg.AIModel, cfg.AITimeout)
		logger.Info("using OpenAI-compatible summarizer", "model", cfg.AIModel)
	case "ollama":
		if cfg.AIBaseURL == "" {
			logger.Error(`ai_base_url is required when ai_type is "ollama"`)
			os.Exit(config.ExitCodeBadConfig)
		}
		summarizer = summary.NewOllamaSummarizer(cfg.AIBaseURL, cfg.AIPrompt, cfg.AIModel, cfg.AITimeout)
		logger.Info("using Ollama summarizer", "model", cfg.AIModel)
	default:
		summarizer = summary.NewTextRankSummarizer(3)
		logger.Info("using extractive TextRank summarizer")
	}

	store := ledger.Load(cfg.PostedFile, logger)
	logger.Info("ledger loaded", "path", cfg.PostedFile, "items", store.Len())

	p := poller.New(poller.Deps{
		Feeds:    feedlist.New(cfg.HTTPTimeout, logger),
		FeedsCSV: cfg.FeedsCSV,
		NewSource: func(feed model.Feed) poller.Source {
			return source.NewRSSSource(feed, cfg.HTTPTimeout)
		},
		Store:        store,
		StorePath:    cfg.PostedFile,
		Threshold:    cfg.FuzzyThreshold,
		Scraper:      scrape.New(cfg.HTTPTimeout),
		Summarizer:   summarizer,
		Publisher:    publisher.New(botAPI, cfg.TelegramChatID, cfg.HTTPTimeout, logger),
		Reporter:     reporter.New(botAPI, cfg.TelegramAdminChatID, logger),
		Logger:       logger,
		PostDelay:    cfg.PostDelay,
		PollInterval: cfg.PollInterval,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Once {
		if err := p.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sweep failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := p.Start(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("failed to run poller", "err", err)
			os.Exit(1)
		}
		logger.Info("poller stopped")
	}
}
