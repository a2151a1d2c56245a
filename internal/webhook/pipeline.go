// Package webhook implements the inbound event pipeline: normalization,
// duplicate suppression, echo filtering, audit logging, lead upsert and the
// optional auto-reply.
package webhook

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/barkanor/leadgate/internal/convlog"
	"github.com/barkanor/leadgate/internal/greenapi"
	"github.com/barkanor/leadgate/internal/leads"
	observemetrics "github.com/barkanor/leadgate/internal/observability/metrics"
	"github.com/barkanor/leadgate/pkg/logging"
)

var tracer = otel.Tracer("leadgate.internal.webhook")

type leadUpserter interface {
	Upsert(ctx context.Context, phone, lastMessage string) (leads.Action, error)
}

type replySender interface {
	SendMessage(ctx context.Context, chatID, text string) (*greenapi.SendResponse, error)
}

// Processor sequences the per-event pipeline. Everything it does runs after
// the HTTP acknowledgment, so failures are logged and swallowed; nothing here
// may reach the webhook caller or crash the process.
type Processor struct {
	gate      *Gate
	log       convlog.Appender
	leads     leadUpserter
	sender    replySender
	replyText string
	metrics   *observemetrics.WebhookMetrics
	logger    *logging.Logger
	now       func() time.Time
}

// ProcessorConfig carries the pipeline's collaborators.
type ProcessorConfig struct {
	Gate      *Gate
	Log       convlog.Appender
	Leads     leadUpserter
	Sender    replySender
	ReplyText string
	Metrics   *observemetrics.WebhookMetrics
	Logger    *logging.Logger
}

// NewProcessor wires a Processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.Gate == nil {
		panic("webhook: dedup gate required")
	}
	if cfg.Log == nil {
		panic("webhook: conversation log required")
	}
	if cfg.Leads == nil {
		panic("webhook: lead upserter required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Processor{
		gate:      cfg.Gate,
		log:       cfg.Log,
		leads:     cfg.Leads,
		sender:    cfg.Sender,
		replyText: cfg.ReplyText,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// Process runs the full pipeline for one raw webhook body. It is handed a
// detached context by the HTTP handler and its result is discarded; outcomes
// are visible only through logs and metrics.
func (p *Processor) Process(ctx context.Context, body []byte) {
	logger := p.logger.With("processing_id", uuid.NewString())
	defer func() {
		if r := recover(); r != nil {
			logger.Error("webhook pipeline panic", "panic", r)
			p.metrics.ObserveInbound(observemetrics.OutcomeError)
		}
	}()

	start := p.now()
	ctx, span := tracer.Start(ctx, "webhook.process")
	defer span.End()

	var evt InboundEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		// Malformed payloads are not an error class of their own: the
		// extractors degrade to empty fields and the pipeline continues.
		logger.Warn("undecodable webhook body", "error", err)
	}

	msg := Normalize(&evt, start)
	span.SetAttributes(
		attribute.String("chat_id", msg.ChatID),
		attribute.String("msg_type", msg.MsgType),
	)

	fp := Fingerprint(&evt, msg)
	if p.gate.CheckAndInsert(fp) {
		logger.Info("duplicate event suppressed", "chat_id", msg.ChatID)
		p.finish(observemetrics.OutcomeDuplicate, start)
		return
	}

	if IsFromMe(&evt, msg, p.replyText) {
		logger.Info("self-echo suppressed", "chat_id", msg.ChatID)
		p.finish(observemetrics.OutcomeEcho, start)
		return
	}

	incoming := convlog.NewRow(msg.Timestamp, msg.Phone, msg.ChatID, convlog.DirectionIncoming, msg.MsgType, msg.Text)
	if err := p.log.Append(ctx, incoming); err != nil {
		logger.Error("failed to log incoming message", "error", err, "chat_id", msg.ChatID)
		p.finish(observemetrics.OutcomeError, start)
		return
	}

	action, err := p.leads.Upsert(ctx, msg.Phone, msg.Text)
	if err != nil {
		logger.Error("lead upsert failed", "error", err, "phone", msg.Phone)
		p.finish(observemetrics.OutcomeError, start)
		return
	}
	p.metrics.ObserveLeadUpsert(string(action))
	logger.Info("lead upserted", "phone", msg.Phone, "action", string(action))

	if p.shouldReply(msg) {
		if err := p.reply(ctx, msg, logger); err != nil {
			p.finish(observemetrics.OutcomeError, start)
			return
		}
	}

	p.finish(observemetrics.OutcomeProcessed, start)
}

// shouldReply gates the auto-reply: textual message types only, and both the
// text and chat id must be present.
func (p *Processor) shouldReply(msg Message) bool {
	if p.sender == nil || p.replyText == "" {
		return false
	}
	return strings.Contains(strings.ToLower(msg.MsgType), "text") &&
		msg.Text != "" &&
		msg.ChatID != ""
}

func (p *Processor) reply(ctx context.Context, msg Message, logger *logging.Logger) error {
	resp, err := p.sender.SendMessage(ctx, msg.ChatID, p.replyText)
	if err != nil {
		logger.Error("auto-reply send failed", "error", err, "chat_id", msg.ChatID)
		p.metrics.ObserveOutbound("failed")
		return err
	}
	p.metrics.ObserveOutbound("sent")
	logger.Info("auto-reply sent", "chat_id", msg.ChatID, "id_message", resp.IDMessage)

	outgoing := convlog.NewRow(p.now(), msg.Phone, msg.ChatID, convlog.DirectionOutgoing, "textMessage", p.replyText)
	if err := p.log.Append(ctx, outgoing); err != nil {
		logger.Error("failed to log outgoing message", "error", err, "chat_id", msg.ChatID)
		return err
	}
	return nil
}

func (p *Processor) finish(outcome string, start time.Time) {
	p.metrics.ObserveInbound(outcome)
	p.metrics.ObservePipelineLatency(outcome, p.now().Sub(start).Seconds())
}
