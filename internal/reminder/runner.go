package reminder

import (
	"context"
	"fmt"
	"time"

	"go-doctask/internal/company"
	"go-doctask/internal/mailqueue"
	"go-doctask/internal/shared/metrics"
	"go-doctask/internal/task"
	"go-doctask/internal/tenant"
	"go-doctask/internal/user"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	outcomeSent    = "sent"
	outcomeSkipped = "skipped"
	outcomeRetried = "retried"
	outcomeFailed  = "failed"
)

// MissingDocumentResolver dipenuhi oleh task.Service
//
//go:generate mockgen -source=runner.go -destination=mock/runner_mock.go -package=mock
type MissingDocumentResolver interface {
	MissingDocumentTypes(ctx context.Context, id string) ([]task.MissingDocumentTypeResponse, error)
}

type Config struct {
	Interval      time.Duration
	MaxRetries    int
	RetryInterval time.Duration
	BatchSize     int
	// TaskURLTemplate menerima dua %s: company id lalu task id,
	// mis. https://app.example.com/companies/%s/tasks/%s
	TaskURLTemplate string
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 24 * time.Hour
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 24 * time.Hour
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	return c
}

type Runner struct {
	cfg         Config
	mailRepo    mailqueue.Repository
	taskRepo    task.Repository
	userRepo    user.Repository
	companyRepo company.Repository
	resolver    MissingDocumentResolver
	renderer    Renderer
	sender      Sender
	sf          singleflight.Group
	logger      *zap.Logger
}

func NewRunner(
	cfg Config,
	mailRepo mailqueue.Repository,
	taskRepo task.Repository,
	userRepo user.Repository,
	companyRepo company.Repository,
	resolver MissingDocumentResolver,
	renderer Renderer,
	sender Sender,
	logger ...*zap.Logger,
) *Runner {
	l := zap.L().Named("reminder.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reminder.runner")
	}
	return &Runner{
		cfg:         cfg.withDefaults(),
		mailRepo:    mailRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		resolver:    resolver,
		renderer:    renderer,
		sender:      sender,
		logger:      l,
	}
}

func (r *Runner) Start(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.logger.Info("reminder runner started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("max_retries", r.cfg.MaxRetries),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reminder runner stopped")
			return
		case <-ticker.C:
			if err := r.RunCycle(ctx); err != nil {
				r.logger.Error("reminder cycle failed", zap.Error(err))
			}
		}
	}
}

// RunCycle memproses seluruh record pengingat yang jatuh tempo lintas tenant.
// Singleflight menjaga hanya satu cycle berjalan pada satu waktu; cycle yang
// menyusul cukup menumpang hasil cycle yang sedang jalan
func (r *Runner) RunCycle(ctx context.Context) error {
	_, err, _ := r.sf.Do("reminder-cycle", func() (any, error) {
		return nil, r.runCycle(ctx)
	})
	return err
}

func (r *Runner) runCycle(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.ReminderCycleDuration.Observe(time.Since(start).Seconds())
	}()

	now := time.Now().UTC()
	records, err := r.mailRepo.ListDue(ctx, now, r.cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	r.logger.Info("processing due reminders", zap.Int("count", len(records)))

	processed := make([]*mailqueue.EmailQueue, 0, len(records))
	for i := range records {
		// Pembatalan menghentikan record BARU; record yang sudah diproses
		// tetap dipersist di bawah
		if ctx.Err() != nil {
			r.logger.Warn("reminder cycle cancelled mid-batch",
				zap.Int("processed", len(processed)),
				zap.Int("remaining", len(records)-i),
			)
			break
		}

		rec := &records[i]
		// Tiap record berjalan dalam tenant context company miliknya
		rctx := tenant.WithCompany(ctx, rec.CompanyID)
		if err := r.processRecord(rctx, rec, now); err != nil {
			r.recordFailure(rec, err, now)
		}
		processed = append(processed, rec)
	}

	// Satu kali persist di akhir cycle, per record supaya kegagalan simpan
	// satu record tidak menghilangkan hasil record lain
	for _, rec := range processed {
		if err := r.mailRepo.Save(context.WithoutCancel(ctx), rec); err != nil {
			r.logger.Error("persist reminder record failed",
				zap.String("record_id", rec.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (r *Runner) processRecord(ctx context.Context, rec *mailqueue.EmailQueue, now time.Time) error {
	t, err := r.taskRepo.FindByID(ctx, rec.EntityID)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	missing, err := r.resolver.MissingDocumentTypes(ctx, t.ID.String())
	if err != nil {
		return fmt.Errorf("resolve missing documents: %w", err)
	}

	// Semua dokumen sudah terpenuhi: tidak ada yang perlu diingatkan lagi,
	// record ditutup tanpa kirim email
	if len(missing) == 0 {
		rec.Status = mailqueue.StatusSent
		rec.SentAtUtc = &now
		rec.Error = nil
		metrics.ReminderProcessedCounter.WithLabelValues(outcomeSkipped).Inc()
		r.logger.Info("reminder skipped, no missing documents",
			zap.String("record_id", rec.ID.String()),
			zap.String("task_id", t.ID.String()),
		)
		return nil
	}

	assignee, err := r.userRepo.FindByID(ctx, t.AssigneeUserID)
	if err != nil {
		return fmt.Errorf("load assignee: %w", err)
	}
	comp, err := r.companyRepo.FindByID(ctx, rec.CompanyID)
	if err != nil {
		return fmt.Errorf("load company: %w", err)
	}

	model := r.buildEmailModel(t, assignee, comp, missing)
	body, err := r.renderer.Render(model)
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	if err := r.sender.Send(ctx, rec.ToAddress, rec.Subject, body); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	rec.Body = body
	rec.Status = mailqueue.StatusSent
	rec.SentAtUtc = &now
	rec.Error = nil
	metrics.ReminderProcessedCounter.WithLabelValues(outcomeSent).Inc()
	r.logger.Info("reminder sent",
		zap.String("record_id", rec.ID.String()),
		zap.String("task_id", t.ID.String()),
		zap.Int("missing_count", len(missing)),
	)
	return nil
}

func (r *Runner) buildEmailModel(
	t *task.TaskItem,
	assignee *user.User,
	comp *company.Company,
	missing []task.MissingDocumentTypeResponse,
) ReminderEmailModel {
	// Zona waktu tenant menentukan tampilan tanggal jatuh tempo; zona tidak
	// dikenal jatuh ke UTC
	tzID := comp.TimeZone
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		r.logger.Warn("unknown company time zone, falling back to UTC",
			zap.String("company_id", comp.ID.String()),
			zap.String("time_zone", tzID),
		)
		tzID = "UTC"
		loc = time.UTC
	}

	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.Name
	}

	// Template membawa dua placeholder: company id lalu task id, mengikuti
	// bentuk rute /companies/:companyId/tasks/:taskId
	taskURL := ""
	if r.cfg.TaskURLTemplate != "" {
		taskURL = fmt.Sprintf(r.cfg.TaskURLTemplate, comp.ID.String(), t.ID.String())
	}

	return ReminderEmailModel{
		CompanyName:      comp.Name,
		AssigneeName:     assignee.FullName,
		TaskTitle:        t.Title,
		TimeZoneID:       tzID,
		DueDateLocal:     t.DueDateUtc.In(loc).Format("02.01.2006 15:04"),
		MissingDocuments: names,
		TaskURL:          taskURL,
	}
}

// recordFailure menaikkan hitungan percobaan; setelah batas percobaan
// terlampaui record menjadi FAILED dan tidak pernah diambil lagi
func (r *Runner) recordFailure(rec *mailqueue.EmailQueue, cause error, now time.Time) {
	rec.TryCount++
	msg := cause.Error()
	if len(msg) > 1000 {
		msg = msg[:1000]
	}
	rec.Error = &msg

	if rec.TryCount >= r.cfg.MaxRetries {
		rec.Status = mailqueue.StatusFailed
		rec.NextTryAtUtc = nil
		metrics.ReminderProcessedCounter.WithLabelValues(outcomeFailed).Inc()
		r.logger.Error("reminder permanently failed",
			zap.String("record_id", rec.ID.String()),
			zap.Int("try_count", rec.TryCount),
			zap.Error(cause),
		)
		return
	}

	next := now.Add(r.cfg.RetryInterval)
	rec.Status = mailqueue.StatusPending
	rec.NextTryAtUtc = &next
	metrics.ReminderProcessedCounter.WithLabelValues(outcomeRetried).Inc()
	r.logger.Warn("reminder attempt failed, scheduled retry",
		zap.String("record_id", rec.ID.String()),
		zap.Int("try_count", rec.TryCount),
		zap.Time("next_try_at", next),
		zap.Error(cause),
	)
}
