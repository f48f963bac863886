package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/metrics"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/sirupsen/logrus"
)

// AttemptRecorder stores the audit row of each delivery attempt.
type AttemptRecorder interface {
	Record(ctx context.Context, attempt *models.WebhookDeliveryAttempt) error
}

// Publisher receives deliveries that ran out of attempts.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

type Config struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
	// Delays[i] is the wait between attempt i+1 and attempt i+2. The number
	// of attempts is len(Delays)+1.
	Delays    []time.Duration
	UserAgent string
	DLQTopic  string
}

// Dispatcher delivers signed webhooks in the background. Deliveries for the
// same payment run one at a time in the order they were enqueued; retries are
// scheduled with timers instead of sleeping on a worker.
type Dispatcher struct {
	cfg       Config
	client    *http.Client
	attempts  AttemptRecorder
	publisher Publisher
	now       func() time.Time

	jobs   chan *delivery
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	queues  map[string][]*delivery
	pending sync.WaitGroup
	workers sync.WaitGroup
}

type delivery struct {
	reference   string
	serviceID   string
	event       models.WebhookEvent
	url         string
	body        []byte
	signature   string
	attempt     int
	scheduledAt time.Time
	lastErr     string
}

func NewDispatcher(cfg Config, attempts AttemptRecorder, publisher Publisher) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Acoruss-Payments/1.0"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		cfg:       cfg,
		client:    &http.Client{},
		attempts:  attempts,
		publisher: publisher,
		now:       time.Now,
		jobs:      make(chan *delivery, cfg.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
		queues:    make(map[string][]*delivery),
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.workers.Add(1)
		go d.work()
	}
}

func (d *Dispatcher) MaxAttempts() int {
	return len(d.cfg.Delays) + 1
}

// Enqueue snapshots p into a signed payload and queues it for svc's webhook
// URL. It never waits on the network.
func (d *Dispatcher) Enqueue(svc *models.Service, p *models.Payment, event models.WebhookEvent) error {
	log := logrus.WithFields(logrus.Fields{"reference": p.Reference, "event": event, "service": svc.Slug})
	if svc.WebhookURL == "" {
		log.Info("no webhook url configured, skipping delivery")
		return nil
	}
	if d.ctx.Err() != nil {
		return errors.New("webhook dispatcher is stopped")
	}

	body, err := json.Marshal(models.NewWebhookPayload(p, event))
	if err != nil {
		return fmt.Errorf("error marshaling webhook payload: %w", err)
	}

	d.queue(&delivery{
		reference:   p.Reference,
		serviceID:   svc.ID,
		event:       event,
		url:         svc.WebhookURL,
		body:        body,
		signature:   Sign(svc.APISecret, body),
		attempt:     1,
		scheduledAt: d.now(),
	})
	log.Debug("webhook queued")
	return nil
}

// Redeliver queues a dead-lettered body again with a fresh attempt budget.
// The body is sent as recorded but signed with the service's current secret
// and posted to its current webhook URL.
func (d *Dispatcher) Redeliver(svc *models.Service, msg models.DLQMessage) error {
	if svc.WebhookURL == "" {
		return fmt.Errorf("service %s has no webhook url", svc.Slug)
	}
	if d.ctx.Err() != nil {
		return errors.New("webhook dispatcher is stopped")
	}
	body := []byte(msg.Body)
	d.queue(&delivery{
		reference:   msg.PaymentReference,
		serviceID:   svc.ID,
		event:       msg.Event,
		url:         svc.WebhookURL,
		body:        body,
		signature:   Sign(svc.APISecret, body),
		attempt:     1,
		scheduledAt: d.now(),
	})
	logrus.WithFields(logrus.Fields{
		"reference": msg.PaymentReference,
		"event":     msg.Event,
		"service":   svc.Slug,
	}).Info("dead-lettered webhook queued for redelivery")
	return nil
}

// queue appends job behind any delivery already pending for its payment.
func (d *Dispatcher) queue(job *delivery) {
	d.pending.Add(1)
	d.mu.Lock()
	queue := d.queues[job.reference]
	d.queues[job.reference] = append(queue, job)
	first := len(queue) == 0
	d.mu.Unlock()

	if first {
		d.submit(job)
	}
}

// submit hands job to the workers without blocking the caller.
func (d *Dispatcher) submit(job *delivery) {
	select {
	case d.jobs <- job:
	default:
		go func() {
			select {
			case d.jobs <- job:
			case <-d.ctx.Done():
				d.abandon(job)
			}
		}()
	}
}

func (d *Dispatcher) work() {
	defer d.workers.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case job := <-d.jobs:
			if d.ctx.Err() != nil {
				d.abandon(job)
				continue
			}
			d.deliver(job)
		}
	}
}

func (d *Dispatcher) deliver(job *delivery) {
	sentAt := d.now()
	status, err := d.post(job)
	duration := d.now().Sub(sentAt)

	succeeded := err == nil && status >= 200 && status < 300
	if err == nil && !succeeded {
		err = fmt.Errorf("unexpected status %d", status)
	}
	final := succeeded || job.attempt >= d.MaxAttempts()

	outcome := "success"
	if !succeeded {
		outcome = "failure"
		job.lastErr = err.Error()
	}
	metrics.WebhookAttempts.WithLabelValues(string(job.event), outcome).Inc()
	metrics.WebhookLatency.WithLabelValues(string(job.event)).Observe(duration.Seconds())

	d.record(job, sentAt, status, succeeded, final, duration)

	log := logrus.WithFields(logrus.Fields{
		"reference": job.reference,
		"event":     job.event,
		"attempt":   job.attempt,
		"status":    statusText(status),
	})
	switch {
	case succeeded:
		log.Info("webhook delivered")
		d.finish(job)
	case !final:
		delay := d.cfg.Delays[job.attempt-1]
		log.WithError(err).Warnf("webhook delivery failed, retrying in %s", delay)
		job.attempt++
		job.scheduledAt = d.now().Add(delay)
		time.AfterFunc(delay, func() {
			if d.ctx.Err() != nil {
				d.abandon(job)
				return
			}
			d.submit(job)
		})
	default:
		log.WithError(err).Errorf("webhook delivery failed permanently after %d attempts", job.attempt)
		d.deadLetter(job)
		d.finish(job)
	}
}

func (d *Dispatcher) post(job *delivery) (int, error) {
	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, job.url, bytes.NewReader(job.body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, job.signature)
	req.Header.Set(EventHeader, string(job.event))
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	return resp.StatusCode, nil
}

func (d *Dispatcher) record(job *delivery, sentAt time.Time, status int, succeeded, final bool, duration time.Duration) {
	row := &models.WebhookDeliveryAttempt{
		PaymentReference: job.reference,
		ServiceID:        job.serviceID,
		Event:            job.event,
		URL:              job.url,
		Attempt:          job.attempt,
		ScheduledAt:      job.scheduledAt,
		SentAt:           sentAt,
		Succeeded:        succeeded,
		Final:            final,
		DurationMS:       duration.Milliseconds(),
	}
	if status > 0 {
		row.ResponseStatus = &status
	}
	if !succeeded {
		row.Error = truncate(job.lastErr, 500)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.attempts.Record(ctx, row); err != nil {
		logrus.WithError(err).WithField("reference", job.reference).Error("failed to record webhook attempt")
	}
}

func (d *Dispatcher) deadLetter(job *delivery) {
	if d.publisher == nil || d.cfg.DLQTopic == "" {
		return
	}
	msg := models.DLQMessage{
		PaymentReference: job.reference,
		ServiceID:        job.serviceID,
		Event:            job.event,
		URL:              job.url,
		Body:             string(job.body),
		Attempts:         job.attempt,
		LastError:        job.lastErr,
		Timestamp:        d.now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := d.publisher.Publish(ctx, d.cfg.DLQTopic, msg); err != nil {
		logrus.WithError(err).WithField("reference", job.reference).Error("failed to publish webhook to dead letter topic")
	}
}

// finish releases job's slot and starts the next delivery for the same payment.
func (d *Dispatcher) finish(job *delivery) {
	d.mu.Lock()
	queue := d.queues[job.reference][1:]
	var next *delivery
	if len(queue) == 0 {
		delete(d.queues, job.reference)
	} else {
		d.queues[job.reference] = queue
		next = queue[0]
	}
	d.mu.Unlock()

	d.pending.Done()
	if next != nil {
		next.scheduledAt = d.now()
		d.submit(next)
	}
}

// abandon drops a delivery, and the ones queued behind it, during shutdown.
func (d *Dispatcher) abandon(job *delivery) {
	d.mu.Lock()
	queue := d.queues[job.reference]
	delete(d.queues, job.reference)
	d.mu.Unlock()

	for _, j := range queue {
		logrus.WithFields(logrus.Fields{
			"reference": j.reference,
			"event":     j.event,
			"attempt":   j.attempt,
		}).Warn("dispatcher stopped, webhook delivery abandoned")
		d.pending.Done()
	}
}

// Shutdown waits for queued deliveries, including pending retries, until ctx
// expires, then stops the workers.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = fmt.Errorf("webhook dispatcher did not drain: %w", ctx.Err())
	}
	d.cancel()
	d.workers.Wait()
	d.drainJobs()
	return err
}

// drainJobs abandons deliveries still buffered once the workers are gone.
func (d *Dispatcher) drainJobs() {
	for {
		select {
		case job := <-d.jobs:
			d.abandon(job)
		default:
			return
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// statusText renders a response status for logs, "-" when there was none.
func statusText(status int) string {
	if status == 0 {
		return "-"
	}
	return strconv.Itoa(status)
}
