package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dukerupert/chorewheel/internal/model"
)

var (
	ErrNotConfigured  = errors.New("offsite backup not configured")
	ErrBackupNotFound = errors.New("backup not found")
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// HistorySource supplies the rosters to back up.
type HistorySource interface {
	History() []model.DailyAssignments
}

// RecordStore keeps a local record of every upload.
type RecordStore interface {
	Create(key string) (*model.Backup, error)
	GetByID(id int64) (*model.Backup, error)
	List(limit int) ([]model.Backup, error)
	UpdateStatus(id int64, status model.BackupStatus, errorMsg string) error
	UpdateCompleted(id, sizeBytes int64, days int) error
	DeleteOlderThan(before time.Time) ([]string, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
}

func (c S3Config) complete() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Config holds backup manager configuration. Offsite copies are always
// encrypted, so Passphrase is required for the manager to be enabled.
type Config struct {
	S3            S3Config
	Passphrase    string
	Interval      time.Duration
	RetentionDays int
}

// Enabled reports whether cfg has everything needed to upload.
func (c Config) Enabled() bool {
	return c.S3.complete() && c.Passphrase != ""
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"lastBackup,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"inProgress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Manager uploads encrypted history exports to S3-compatible storage on a
// schedule and on demand.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback

	client  s3Client
	history HistorySource
	records RecordStore
	logger  *slog.Logger
	now     func() time.Time

	// run serializes uploads.
	run sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(cfg Config, history HistorySource, records RecordStore, callback StatusCallback, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	m := &Manager{
		cfg:      cfg,
		history:  history,
		records:  records,
		callback: callback,
		logger:   logger,
		now:      time.Now,
		status:   Status{State: StateDisabled},
	}
	if cfg.Enabled() {
		m.client = newS3Client(cfg.S3)
		m.status.State = StateIdle
	}
	return m
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Start begins the scheduled backup loop. It does nothing when the manager
// is disabled or no interval is configured.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.status.State == StateDisabled || m.cfg.Interval <= 0 {
		m.mu.Unlock()
		return
	}
	interval := m.cfg.Interval
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	m.logger.Info("scheduled backups enabled", "interval", interval, "bucket", m.cfg.S3.Bucket)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.scheduled(ctx)
			}
		}
	}()
}

// Stop waits for the scheduled loop to finish.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the current backup status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

func (m *Manager) scheduled(ctx context.Context) {
	if _, err := m.RunNow(ctx); err != nil {
		m.logger.Error("scheduled backup failed", "error", err)
	}
	if err := m.Cleanup(ctx); err != nil {
		m.logger.Error("backup cleanup failed", "error", err)
	}
}

// RunNow uploads the current history and returns the completed record.
func (m *Manager) RunNow(ctx context.Context) (*model.Backup, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()
	if client == nil {
		return nil, ErrNotConfigured
	}

	m.run.Lock()
	defer m.run.Unlock()

	m.setStatus(Status{State: StateRunning, InProgress: true})

	key := cfg.S3.Prefix + "history-" + m.now().UTC().Format("2006-01-02T150405.000Z") + ".json.enc"
	record, err := m.records.Create(key)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, fmt.Errorf("create backup record: %w", err)
	}

	fail := func(stage string, err error) (*model.Backup, error) {
		err = fmt.Errorf("%s: %w", stage, err)
		if uerr := m.records.UpdateStatus(record.ID, model.BackupStatusFailed, err.Error()); uerr != nil {
			m.logger.Error("record backup failure", "id", record.ID, "error", uerr)
		}
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return nil, err
	}

	history := m.history.History()
	var buf bytes.Buffer
	if err := Export(&buf, history, cfg.Passphrase); err != nil {
		return fail("export", err)
	}
	size := int64(buf.Len())

	if err := m.records.UpdateStatus(record.ID, model.BackupStatusUploading, ""); err != nil {
		return fail("mark uploading", err)
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(cfg.S3.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fail("upload to s3", err)
	}

	if err := m.records.UpdateCompleted(record.ID, size, len(history)); err != nil {
		return fail("mark completed", err)
	}

	now := m.now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now})
	m.logger.Info("backup uploaded", "id", record.ID, "key", key, "days", len(history), "bytes", size)

	return m.records.GetByID(record.ID)
}

// List returns the most recent backup records.
func (m *Manager) List(limit int) ([]model.Backup, error) {
	return m.records.List(limit)
}

// Fetch downloads and decrypts a completed backup. It does not touch the
// local history; the caller decides whether to import it.
func (m *Manager) Fetch(ctx context.Context, id int64) ([]model.DailyAssignments, error) {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()
	if client == nil {
		return nil, ErrNotConfigured
	}

	record, err := m.records.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get backup: %w", err)
	}
	if record == nil || record.Status != model.BackupStatusCompleted {
		return nil, fmt.Errorf("backup %d: %w", id, ErrBackupNotFound)
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cfg.S3.Bucket),
		Key:    aws.String(record.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("download from s3: %w", err)
	}
	defer result.Body.Close()

	return Import(result.Body, cfg.Passphrase)
}

// Cleanup deletes backups older than the retention period, both the records
// and the stored objects.
func (m *Manager) Cleanup(ctx context.Context) error {
	m.mu.RLock()
	client := m.client
	cfg := m.cfg
	m.mu.RUnlock()
	if client == nil {
		return ErrNotConfigured
	}

	cutoff := m.now().UTC().AddDate(0, 0, -cfg.RetentionDays)
	keys, err := m.records.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("delete old backup records: %w", err)
	}

	var errs []error
	for _, key := range keys {
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.S3.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if len(keys) > 0 {
		m.logger.Info("old backups removed", "count", len(keys)-len(errs))
	}
	return errors.Join(errs...)
}
