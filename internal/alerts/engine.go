package alerts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/notifications"
)

// DetectionCounter counts recent detections inside a geographic region.
type DetectionCounter interface {
	CountInBounds(ctx context.Context, since time.Time, minLat, maxLat, minLon, maxLon float64) (int64, error)
}

// Engine evaluates alert rules against recent detections and dispatches
// notifications when a rule fires.
type Engine struct {
	repo     Repository
	counter  DetectionCounter
	sms      notifications.Channel
	email    notifications.Channel
	ws       *notifications.Manager
	lookback time.Duration
	logger   *zap.Logger
}

// NewEngine creates a new alert engine
func NewEngine(repo Repository, counter DetectionCounter, sms, email notifications.Channel, ws *notifications.Manager, lookback time.Duration, logger *zap.Logger) *Engine {
	return &Engine{
		repo:     repo,
		counter:  counter,
		sms:      sms,
		email:    email,
		ws:       ws,
		lookback: lookback,
		logger:   logger,
	}
}

// EvaluateAll checks every active rule. Evaluation keeps going past
// individual rule failures; an alert run should never abort halfway.
func (e *Engine) EvaluateAll(ctx context.Context) {
	rules, err := e.repo.ListActive(ctx)
	if err != nil {
		e.logger.Error("Failed to load alert rules", zap.Error(err))
		return
	}

	now := time.Now()
	for i := range rules {
		if err := e.evaluate(ctx, &rules[i], now); err != nil {
			e.logger.Error("Alert rule evaluation failed",
				zap.String("rule", rules[i].Name), zap.Error(err))
		}
	}
}

func (e *Engine) evaluate(ctx context.Context, rule *Rule, now time.Time) error {
	if rule.InCooldown(now) {
		return nil
	}

	count, err := e.counter.CountInBounds(ctx, now.Add(-e.lookback),
		rule.MinLat, rule.MaxLat, rule.MinLon, rule.MaxLon)
	if err != nil {
		return err
	}
	if count < int64(rule.Threshold) {
		return nil
	}

	e.logger.Info("Alert rule triggered",
		zap.String("rule", rule.Name),
		zap.Int64("detections", count),
		zap.Int("threshold", rule.Threshold))

	if err := e.repo.MarkTriggered(ctx, rule.ID, now); err != nil {
		e.logger.Warn("Failed to record trigger time", zap.String("rule", rule.Name), zap.Error(err))
	}

	e.Trigger(ctx, rule, count)
	return nil
}

// Trigger dispatches notifications for a rule. Channel failures are
// logged per recipient and never stop the remaining deliveries.
func (e *Engine) Trigger(ctx context.Context, rule *Rule, count int64) {
	msg := notifications.Message{
		Subject: fmt.Sprintf("Critical pothole area: %s", rule.Name),
		Body: fmt.Sprintf("%d potholes detected in area %q in the last %s. Threshold is %d.",
			count, rule.Name, e.lookback, rule.Threshold),
	}

	e.ws.Broadcast(notifications.Event{
		Type:     "alert",
		Title:    msg.Subject,
		Message:  msg.Body,
		Severity: rule.Severity,
		Data: map[string]interface{}{
			"rule_id":         rule.ID.String(),
			"detection_count": count,
		},
	})

	recipients := rule.DecodeRecipients()
	for _, phone := range recipients.SMS {
		if err := e.sms.Send(ctx, phone, msg); err != nil {
			e.logger.Warn("SMS delivery failed", zap.String("phone_number", phone), zap.Error(err))
		}
	}
	for _, address := range recipients.Email {
		if err := e.email.Send(ctx, address, msg); err != nil {
			e.logger.Warn("Email delivery failed", zap.String("address", address), zap.Error(err))
		}
	}
}
