package worker

// email_worker.go
// Processes invoice delivery jobs from QueueInvoiceEmail.
// Sends the PDF invoice to the customer via SMTP, guarded by a circuit
// breaker and exponential-backoff retries. Jobs that exhaust all retries
// are parked in the dead letter queue.

import (
	"context"
	"encoding/json"
	"time"

	"inventra/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const emailMaxAttempts = 3

// InvoiceEmailPayload is the job envelope sent to QueueInvoiceEmail.
type InvoiceEmailPayload struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	InvoicePath   string `json:"invoice_path"`
}

// EmailWorker delivers invoice emails.
type EmailWorker struct {
	mailer   *infra.Mailer
	invoices *infra.PDFInvoiceGenerator
	cb       *infra.CircuitBreaker
	rdb      *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, invoices *infra.PDFInvoiceGenerator, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, invoices: invoices, cb: cb, rdb: rdb}
}

// Process sends one invoice email. SMTP calls run through the circuit
// breaker; when it is open the attempt fails fast and counts as a retry.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoiceEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.CustomerEmail == "" {
		log.Warn().Msg("email_worker: empty customer_email — skipping")
		return
	}

	pdfPath := w.invoices.FilePath(payload.InvoicePath)
	subject := "Your invoice — order " + payload.OrderID
	body := "Please find your invoice attached.\n\nThank you for your order."

	err := withRetry(ctx, emailMaxAttempts, func(attempt int) error {
		sendErr := w.cb.Execute(func() error {
			return w.mailer.SendInvoice(payload.CustomerEmail, subject, body, pdfPath)
		})
		if sendErr != nil {
			log.Warn().
				Err(sendErr).
				Int("attempt", attempt+1).
				Str("order_id", payload.OrderID).
				Msg("email_worker: send attempt failed")
		}
		return sendErr
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).
			Msg("email_worker: giving up after all retries")
		SendToDLQ(ctx, w.rdb, QueueInvoiceEmail, "invoice_email", raw, err.Error(), emailMaxAttempts)
		return
	}

	log.Info().Str("to", payload.CustomerEmail).Str("order_id", payload.OrderID).
		Msg("email_worker: invoice sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
