package drafts

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler định kỳ xoá bản nháp cũ hơn ttl.
type Scheduler struct {
	store Store
	ttl   time.Duration
	log   *logrus.Logger
	cron  *cron.Cron
	now   func() time.Time

	// Purged đếm số bản nháp đã xoá, có thể nil.
	Purged prometheus.Counter
}

func NewScheduler(store Store, ttl time.Duration, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		store: store,
		ttl:   ttl,
		log:   log,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start đăng ký job theo biểu thức cron (vd "@daily", "0 3 * * *") rồi chạy nền.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Purge(context.Background()) }); err != nil {
		return fmt.Errorf("schedule draft purge %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.WithFields(logrus.Fields{"schedule": spec, "ttl": s.ttl.String()}).Info("draft purge scheduled")
	return nil
}

// Stop dừng cron và chờ job đang chạy xong.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Purge chạy một lượt dọn, trả về số bản nháp đã xoá.
func (s *Scheduler) Purge(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.ttl)
	n, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.log.WithError(err).Error("draft purge failed")
		return 0
	}
	if s.Purged != nil {
		s.Purged.Add(float64(n))
	}
	s.log.WithFields(logrus.Fields{"purged": n, "cutoff": cutoff.Format(time.RFC3339)}).Info("draft purge done")
	return n
}
