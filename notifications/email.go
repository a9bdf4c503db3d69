package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salon16/booking/logger"
	"github.com/salon16/booking/models/booking_models"
	"github.com/salon16/booking/models/summary_models"
	"github.com/salon16/booking/models/user_models"
)

// Customer email subjects. Fixed strings shown to customers; do not rephrase.
const (
	AcceptedSubject = "✅ Booking Accepted - Salon16"
	RejectedSubject = "❌ Booking Update - Salon16"
)

// UserDirectory looks up user records for notification dispatch.
type UserDirectory interface {
	AdminUsers(ctx context.Context) ([]user_models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user_models.User, error)
}

// SummaryLookup reads denormalized booking summaries.
type SummaryLookup interface {
	Summary(ctx context.Context, bookingID string) (*summary_models.BookingSummary, error)
}

// bookingEmailData feeds the accepted/rejected HTML templates.
type bookingEmailData struct {
	CustomerName string
	Date         string
	Time         string
	ServiceName  string
	AdminNotes   string
	Year         int
}

// resolvedCustomer is the outcome of the email resolution chain.
type resolvedCustomer struct {
	Email string
	Name  string
}

// emailResolver is one step of the resolution chain. ok is false when this
// step cannot produce an address.
type emailResolver func(ctx context.Context) (resolvedCustomer, bool)

// resolveCustomer walks the fallback chain for a booking's customer email:
// the address embedded in the booking, then the user profile, then the
// denormalized booking summary. First success wins.
func (d *Dispatcher) resolveCustomer(ctx context.Context, b *booking_models.Booking) (resolvedCustomer, bool) {
	resolvers := []emailResolver{
		func(context.Context) (resolvedCustomer, bool) {
			if b.CustomerEmail == "" {
				return resolvedCustomer{}, false
			}
			return resolvedCustomer{Email: b.CustomerEmail, Name: b.CustomerName}, true
		},
		func(ctx context.Context) (resolvedCustomer, bool) {
			user, err := d.Users.UserByID(ctx, b.CustomerID)
			if err != nil {
				logger.WarnLogger.Warnf("Email resolution: user profile lookup failed for %s: %v", b.CustomerID, err)
				return resolvedCustomer{}, false
			}
			if user.Email == "" {
				return resolvedCustomer{}, false
			}
			name := user.FullName()
			if name == "" {
				name = b.CustomerName
			}
			return resolvedCustomer{Email: user.Email, Name: name}, true
		},
		func(ctx context.Context) (resolvedCustomer, bool) {
			summary, err := d.Summaries.Summary(ctx, b.ID.String())
			if err != nil {
				logger.WarnLogger.Warnf("Email resolution: summary lookup failed for booking %s: %v", b.ID, err)
				return resolvedCustomer{}, false
			}
			if summary.CustomerEmail == "" {
				return resolvedCustomer{}, false
			}
			return resolvedCustomer{Email: summary.CustomerEmail, Name: summary.CustomerName}, true
		},
	}

	for _, resolve := range resolvers {
		if customer, ok := resolve(ctx); ok {
			return customer, true
		}
	}
	return resolvedCustomer{}, false
}

// emailCustomer resolves the customer's address and sends the template for
// the transition. A booking whose address cannot be resolved is a terminal,
// non-retried failure: logged, nothing sent.
func (d *Dispatcher) emailCustomer(ctx context.Context, b *booking_models.Booking, subject, templateName string) {
	customer, ok := d.resolveCustomer(ctx, b)
	if !ok {
		logger.ErrorLogger.Errorf("No email resolvable for booking %s (customer %s); dispatch aborted", b.ID, b.CustomerID)
		return
	}

	data := bookingEmailData{
		CustomerName: customer.Name,
		Date:         FormatLongDate(b.Date),
		Time:         FormatTime12Hour(b.Time),
		ServiceName:  b.ServiceName,
		Year:         time.Now().Year(),
	}
	if b.AdminNotes != nil {
		data.AdminNotes = *b.AdminNotes
	}

	if err := d.Mail.Send(customer.Email, subject, templateName, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to send %q email for booking %s: %v", subject, b.ID, err)
		return
	}
	logger.InfoLogger.Infof("Sent %q email for booking %s to %s", subject, b.ID, customer.Email)
}
