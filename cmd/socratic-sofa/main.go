// Command socratic-sofa serves the Socratic dialogue web demo.
package main

import (
	"context"
	"os"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/sirupsen/logrus"

	sofa "github.com/darth-dodo/socratic-sofa"
	"github.com/darth-dodo/socratic-sofa/config"
	"github.com/darth-dodo/socratic-sofa/logging"
	"github.com/darth-dodo/socratic-sofa/moderation"
	"github.com/darth-dodo/socratic-sofa/pipeline"
	"github.com/darth-dodo/socratic-sofa/ratelimit"
	"github.com/darth-dodo/socratic-sofa/server"
	"github.com/darth-dodo/socratic-sofa/topics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	logger := logging.Setup(logging.ParseLevel(cfg.LogLevel), cfg.LogJSON)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx := context.Background()

	dialogueModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return err
	}
	moderationModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.ModerationModel,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	dialoguePipeline, err := pipeline.New(dialogueModel, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	gate := moderation.NewGate(moderationModel,
		moderation.WithLogger(logger),
		moderation.WithLimiter(ratelimit.New(cfg.ModerationCalls, cfg.ModerationPeriod)),
	)

	orchestrator := sofa.NewOrchestrator(dialoguePipeline, gate, gate, sofa.WithLogger(logger))
	catalog := topics.Load(cfg.TopicsFile)

	return server.New(orchestrator, catalog, logger).ListenAndServe(cfg.Addr)
}
