// Package moderation decides whether a topic is appropriate for
// philosophical dialogue. The gate fails open: any internal error yields an
// approval rather than blocking the user.
package moderation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"github.com/darth-dodo/socratic-sofa/ratelimit"
)

// MaxTopicLength is the rejection threshold checked before any model call.
const MaxTopicLength = 500

const tooLongReason = "Topic is too long. Please keep it concise (under 500 characters)."

const moderationPromptTemplate = `You are a content moderator for a philosophical dialogue platform. Evaluate if this topic is appropriate for respectful philosophical discussion.

Topic: %q

Criteria for rejection:
- Explicitly sexual or pornographic content
- Graphic violence or gore
- Hate speech or discrimination
- Illegal activities (except as legitimate policy questions like "should X be legal?")
- Trolling or bad faith topics

Criteria for acceptance:
- Legitimate philosophical questions about ethics, even if controversial
- Policy questions about legalization/regulation
- Questions about morality, even if touching on difficult subjects
- Sincere inquiry into human nature and society

Respond with ONLY:
- "APPROPRIATE" if the topic is suitable for philosophical dialogue
- "INAPPROPRIATE: [brief reason]" if it should be rejected

Response:`

// Gate moderates topics with a fast length pre-check followed by one
// rate-limited LLM verdict call.
type Gate struct {
	chatModel model.BaseChatModel
	limiter   *ratelimit.Limiter
	logger    *logrus.Logger
}

type gateOptions struct {
	limiter *ratelimit.Limiter
	logger  *logrus.Logger
}

// Option configures a Gate.
type Option func(*gateOptions)

// WithLimiter overrides the rate limiter applied to verdict calls.
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(o *gateOptions) {
		o.limiter = limiter
	}
}

// WithLogger sets the gate's logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *gateOptions) {
		o.logger = logger
	}
}

// NewGate creates a moderation gate over the given chat model.
func NewGate(chatModel model.BaseChatModel, opts ...Option) *Gate {
	options := gateOptions{
		limiter: ratelimit.NewDefault(),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Gate{
		chatModel: chatModel,
		limiter:   options.limiter,
		logger:    options.logger,
	}
}

// Check implements sofa.ModerationGate. Empty topics always pass without a
// model call; over-long topics are rejected without one.
func (g *Gate) Check(ctx context.Context, topic string) (bool, string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return true, ""
	}

	length := utf8.RuneCountInString(topic)
	log := g.logger.WithField("topic_length", length)
	if length > MaxTopicLength {
		log.Info("topic rejected, too long")
		return false, tooLongReason
	}

	if err := g.limiter.Wait(ctx); err != nil {
		log.WithError(err).Warn("moderation rate limit wait failed, failing open")
		return true, ""
	}

	response, err := g.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(moderationPromptTemplate, topic)),
	})
	if err != nil {
		log.WithError(err).Warn("content moderation error, failing open")
		return true, ""
	}

	verdict := strings.TrimSpace(response.Content)
	switch {
	case strings.HasPrefix(verdict, "APPROPRIATE"):
		log.Info("topic approved")
		return true, ""
	case strings.HasPrefix(verdict, "INAPPROPRIATE:"):
		reason := strings.TrimSpace(strings.TrimPrefix(verdict, "INAPPROPRIATE:"))
		log.WithField("reason", reason).Info("topic rejected by moderation")
		return false, fmt.Sprintf("This topic may not be appropriate: %s", reason)
	default:
		// Unclear verdicts are allowed through.
		log.WithField("response", verdict).Debug("unclear moderation response, allowing")
		return true, ""
	}
}

// Suggest implements sofa.SuggestionSource.
func (g *Gate) Suggest(rejectedTopic string) []string {
	return Suggestions(rejectedTopic)
}
