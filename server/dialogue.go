package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	sofa "github.com/darth-dodo/socratic-sofa"
	"github.com/darth-dodo/socratic-sofa/topics"
)

const heartbeatInterval = 15 * time.Second

// snapshotEvent is the SSE payload: the full snapshot plus an RFC7386 merge
// patch against the previous one, so clients can apply incremental updates.
type snapshotEvent struct {
	RunID    string          `json:"run_id"`
	Snapshot sofa.Snapshot   `json:"snapshot"`
	Delta    json.RawMessage `json:"delta,omitempty"`
}

// handleDialogueStream resolves the topic selection and streams orchestrator
// snapshots as server-sent events until the run reaches a terminal state.
func (s *Server) handleDialogueStream(c *gin.Context) {
	topic := topics.Resolve(c.Query("topic"), c.Query("custom"))
	runID := uuid.New().String()
	log := s.logger.WithFields(logrus.Fields{
		"run_id":       runID,
		"topic_length": len(topic),
	})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	dialoguesStarted.Inc()
	log.Info("dialogue stream opened")
	start := time.Now()

	ctx := c.Request.Context()
	snapshots := s.runner.Run(ctx, sofa.Request{
		Topic:       topic,
		YearContext: time.Now().Format("2006"),
	})

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	var prevJSON []byte
	var last *sofa.Snapshot
	count := 0
	for {
		select {
		case <-ctx.Done():
			log.Info("dialogue stream client disconnected")
			// Drain so the orchestrator can finish joining its worker.
			for range snapshots {
			}
			return
		case <-heartbeat.C:
			c.Writer.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()
		case snap, open := <-snapshots:
			if !open {
				s.recordOutcome(log, last, count, time.Since(start))
				c.Writer.Write([]byte("event: done\ndata: {}\n\n"))
				flusher.Flush()
				return
			}
			count++
			payload, err := s.encodeEvent(runID, snap, prevJSON, last)
			if err != nil {
				log.WithError(err).Error("encode snapshot event")
				continue
			}
			prevJSON = payload.snapJSON
			snapCopy := snap
			last = &snapCopy

			c.Writer.Write([]byte("event: snapshot\ndata: "))
			c.Writer.Write(payload.eventJSON)
			c.Writer.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

type encodedEvent struct {
	eventJSON []byte
	snapJSON  []byte
}

func (s *Server) encodeEvent(runID string, snap sofa.Snapshot, prevJSON []byte, prev *sofa.Snapshot) (encodedEvent, error) {
	snapJSON, err := sonic.Marshal(snap)
	if err != nil {
		return encodedEvent{}, err
	}

	event := snapshotEvent{RunID: runID, Snapshot: snap}
	if prev != nil && len(prevJSON) > 0 {
		if delta, err := jsonpatch.CreateMergePatch(prevJSON, snapJSON); err == nil {
			event.Delta = delta
		}
	}

	eventJSON, err := sonic.Marshal(event)
	if err != nil {
		return encodedEvent{}, err
	}
	return encodedEvent{eventJSON: eventJSON, snapJSON: snapJSON}, nil
}

// recordOutcome classifies the terminal snapshot for metrics and logs.
func (s *Server) recordOutcome(log *logrus.Entry, last *sofa.Snapshot, count int, elapsed time.Duration) {
	if last == nil {
		return
	}
	for stage := 0; stage < last.Progress.CompletedStages && stage < sofa.StageCount; stage++ {
		stageCompletions.WithLabelValues(sofa.Stage(stage).String()).Inc()
	}
	switch {
	case last.Progress.CompletedStages == sofa.StageCount:
		dialoguesCompleted.Inc()
		dialogueDuration.Observe(elapsed.Seconds())
		log.WithField("elapsed", elapsed.Seconds()).Info("dialogue completed")
	case count == 1 && uniformFields(*last):
		topicsRejected.Inc()
		log.Info("dialogue rejected by moderation")
	case uniformFields(*last):
		dialoguesFailed.Inc()
		log.Warn("dialogue failed")
	default:
		log.Info("dialogue ended early")
	}
}

func uniformFields(snap sofa.Snapshot) bool {
	return snap.Topic == snap.FirstInquiry &&
		snap.Topic == snap.SecondInquiry &&
		snap.Topic == snap.Judgment &&
		strings.TrimSpace(snap.Topic) != ""
}
