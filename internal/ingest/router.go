// Package ingest routes webhook deliveries into typed processing paths:
// identity evidence, direct messages, and comment changes.
package ingest

import (
	"context"
	"log/slog"

	"github.com/growthgenius/engagebot/common/logger"
	"github.com/growthgenius/engagebot/internal/dedup"
	"github.com/growthgenius/engagebot/internal/identity"
	"github.com/growthgenius/engagebot/internal/instagram"
	"github.com/growthgenius/engagebot/internal/model"
)

// commentDMPrefix derives the follow-up DM text from the original comment.
const commentDMPrefix = "Thanks for your comment! "

// ResponseGenerator is the orchestrator boundary; Generate is total and never
// returns an error.
type ResponseGenerator interface {
	Generate(ctx context.Context, userID, text string, kind model.ChannelKind) string
}

// Router is the top-level entry point for webhook payloads. It owns the
// identity resolver and dedup guard and applies both before dispatching to the
// orchestrator.
type Router struct {
	identity  *identity.Resolver
	guard     dedup.Guard
	responder ResponseGenerator
	outbound  instagram.API
	logger    *slog.Logger
}

func NewRouter(resolver *identity.Resolver, guard dedup.Guard, responder ResponseGenerator, outbound instagram.API, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		identity:  resolver,
		guard:     guard,
		responder: responder,
		outbound:  outbound,
		logger:    log,
	}
}

// Route processes every entry of the delivery batch. Entries are independent:
// a failure in one is logged and must not stop the rest, so each runs under
// its own recover.
func (r *Router) Route(ctx context.Context, envelope model.Envelope) {
	for _, entry := range envelope.Entries {
		r.processEntry(ctx, entry)
	}
}

func (r *Router) processEntry(ctx context.Context, entry model.Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic while processing entry", "entry_id", entry.ID, "panic", rec)
		}
	}()

	// Unverified: scan this entry's messaging list for echo evidence. The
	// first echo wins; once the latch flips, later entries skip the scan.
	if !r.identity.IsVerified() {
		for _, m := range entry.Messaging {
			if m.Message != nil && m.Message.IsEcho {
				r.logger.InfoContext(ctx, "identified own account id from echo message", "sender_id", m.Sender.ID)
				r.identity.Resolve(ctx, m.Sender.ID)
				break
			}
		}
	}

	for _, m := range entry.Messaging {
		r.processMessage(ctx, m)
	}

	for _, change := range entry.Changes {
		if change.Field == "comments" {
			r.processComment(ctx, change.Value)
		}
	}
}

// processMessage handles one inbound DM event. Events from self, events not
// addressed to self, and events without a text payload (attachments,
// reactions, read receipts) are dropped silently.
func (r *Router) processMessage(ctx context.Context, m model.Messaging) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(m.Sender.ID),
		EventType: logger.Ptr("message"),
		Component: "engagebot.ingest.router",
	})

	selfID := r.identity.CurrentID()

	if m.Sender.ID == selfID {
		r.logger.DebugContext(ctx, "ignoring own message")
		return
	}
	if m.Recipient.ID != selfID {
		r.logger.DebugContext(ctx, "ignoring message not addressed to this account", "recipient_id", m.Recipient.ID)
		return
	}
	if m.Message == nil || m.Message.Text == "" {
		r.logger.DebugContext(ctx, "ignoring non-text message event")
		return
	}

	r.logger.InfoContext(ctx, "processing direct message", "text", logger.Truncate(m.Message.Text, 200))

	response := r.responder.Generate(ctx, m.Sender.ID, m.Message.Text, model.ChannelDM)
	if err := r.outbound.SendMessage(ctx, m.Sender.ID, response); err != nil {
		r.logger.ErrorContext(ctx, "failed to deliver DM response", "error", err)
	}
}

// processComment handles one comment change. Each fresh comment gets two
// touches, each with its own generation cycle and interaction record: a public
// reply on the thread and a private follow-up DM.
func (r *Router) processComment(ctx context.Context, comment model.Comment) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(comment.From.ID),
		CommentID: logger.Ptr(comment.ID),
		EventType: logger.Ptr("comment"),
		Component: "engagebot.ingest.router",
	})

	if comment.From.ID == r.identity.CurrentID() {
		r.logger.DebugContext(ctx, "ignoring own comment")
		return
	}

	username := r.outbound.GetUsername(ctx, comment.From.ID)

	if !r.guard.ShouldProcess(ctx, comment.ID) {
		r.logger.InfoContext(ctx, "comment already processed, skipping", "username", username)
		return
	}

	publicReply := r.responder.Generate(ctx, comment.From.ID, comment.Text, model.ChannelComment)
	if err := r.outbound.ReplyToComment(ctx, comment.ID, publicReply); err != nil {
		r.logger.ErrorContext(ctx, "failed to deliver comment reply", "error", err)
	}

	followUp := r.responder.Generate(ctx, comment.From.ID, commentDMPrefix+comment.Text, model.ChannelDM)
	if err := r.outbound.SendMessage(ctx, comment.From.ID, followUp); err != nil {
		r.logger.ErrorContext(ctx, "failed to deliver follow-up DM", "error", err)
	}

	r.logger.InfoContext(ctx, "processed comment event", "username", username)
}
