// Package notifications reacts to booking writes: it runs the status
// transition state machine and delivers at most one outbound notification
// per relevant transition (an admin push for new bookings, a customer email
// for accept/reject decisions). All delivery is best effort; nothing in this
// package ever propagates an error back to the booking write.
package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/booking_models"
	"github.com/salon16/booking/models/summary_models"
	"github.com/salon16/booking/models/user_models"
	"github.com/salon16/booking/utils/mail"
)

// Dispatcher delivers notifications for booking status transitions.
type Dispatcher struct {
	Push      PushSender
	Mail      mail.Sender
	Users     UserDirectory
	Summaries SummaryLookup
}

// NewDispatcher wires the production transports and lookups.
func NewDispatcher(db *pgxpool.Pool) *Dispatcher {
	return &Dispatcher{
		Push:      NewFCMClient(),
		Mail:      mail.NewSMTPSender(),
		Users:     &pgDirectory{db: db},
		Summaries: &redisSummaries{},
	}
}

// Dispatch reacts to a booking write. before is nil when the booking was just
// created. Exactly one notification is attempted per relevant transition:
//
//	(absent) -> pending   admin push
//	any -> accepted       customer email, accepted template
//	any -> rejected       customer email, rejected template (admin note included)
//	X -> X                nothing
//	-> completed/cancelled nothing
//
// Dispatch never returns an error: every transport failure is logged and
// contained so a booking write cannot fail because a notification did.
func (d *Dispatcher) Dispatch(ctx context.Context, before, after *booking_models.Booking) {
	if after == nil {
		return
	}
	if before != nil && before.Status == after.Status {
		return
	}

	switch {
	case before == nil && after.Status == booking_models.StatusPending:
		d.notifyAdmins(ctx, after)
	case after.Status == booking_models.StatusAccepted:
		d.emailCustomer(ctx, after, AcceptedSubject, mail.BookingAcceptedTemplate)
	case after.Status == booking_models.StatusRejected:
		d.emailCustomer(ctx, after, RejectedSubject, mail.BookingRejectedTemplate)
	}
}

// notifyAdmins announces a new booking to the admin audience. The broadcast
// topic is tried first; if that fails, every registered admin device token is
// collected, de-duplicated, and multicast in provider-sized batches. Each
// attempt is made at most once.
func (d *Dispatcher) notifyAdmins(ctx context.Context, b *booking_models.Booking) {
	title := "📅 New Booking Request"
	body := fmt.Sprintf("%s requested %s on %s at %s",
		b.CustomerName, b.ServiceName, FormatLongDate(b.Date), FormatTime12Hour(b.Time))

	err := d.Push.SendToTopic(ctx, AdminTopic, title, body)
	if err == nil {
		logger.InfoLogger.Infof("Admin topic push sent for booking %s", b.ID)
		return
	}
	logger.WarnLogger.Warnf("Admin topic push failed for booking %s, falling back to device tokens: %v", b.ID, err)

	admins, err := d.Users.AdminUsers(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Admin push fallback: failed to query admin users for booking %s: %v", b.ID, err)
		return
	}

	tokens := collectAdminTokens(admins)
	if len(tokens) == 0 {
		logger.WarnLogger.Warnf("Admin push fallback: no registered admin device tokens for booking %s", b.ID)
		return
	}

	for start := 0; start < len(tokens); start += MulticastBatchSize {
		end := start + MulticastBatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		if err := d.Push.SendMulticast(ctx, tokens[start:end], title, body); err != nil {
			logger.ErrorLogger.Errorf("Admin multicast batch failed for booking %s: %v", b.ID, err)
		}
	}
	logger.InfoLogger.Infof("Admin multicast fallback attempted for booking %s across %d token(s)", b.ID, len(tokens))
}

// collectAdminTokens gathers every device token from the single-token and
// multi-token fields across all admins, de-duplicated in first-seen order.
func collectAdminTokens(admins []user_models.User) []string {
	seen := make(map[string]struct{})
	var tokens []string

	add := func(token string) {
		if token == "" {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	for _, admin := range admins {
		if admin.FCMToken != nil {
			add(*admin.FCMToken)
		}
		for _, token := range admin.FCMTokens {
			add(token)
		}
	}
	return tokens
}

// pgDirectory resolves users through the postgres pool.
type pgDirectory struct {
	db *pgxpool.Pool
}

func (p *pgDirectory) AdminUsers(ctx context.Context) ([]user_models.User, error) {
	return user_models.GetAdminUsers(ctx, p.db)
}

func (p *pgDirectory) UserByID(ctx context.Context, id uuid.UUID) (*user_models.User, error) {
	return user_models.GetUserByID(ctx, p.db, id)
}

// redisSummaries resolves booking summaries through Redis.
type redisSummaries struct{}

func (r *redisSummaries) Summary(ctx context.Context, bookingID string) (*summary_models.BookingSummary, error) {
	return summary_models.GetSummary(ctx, bookingID)
}
