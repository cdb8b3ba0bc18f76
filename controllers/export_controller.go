package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/models"
	"github.com/vnkhanh/service-survey/surveytree"
	"github.com/vnkhanh/service-survey/utils"
)

type ExportRequest struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// startExport chạy job nền; test thay bằng bản đồng bộ.
var startExport = func(jobID string) {
	go processExportJob(context.Background(), jobID)
}

// POST /api/services/:id/export
func CreateExport(c *gin.Context) {
	svc, ok := loadService(c)
	if !ok {
		return
	}

	var req ExportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
			return
		}
	}
	if req.Format == "" {
		req.Format = utils.FormatCSV
	}
	if !utils.ValidFormat(req.Format) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "format must be csv or xlsx"})
		return
	}

	fromPtr, err := parseExportTime(req.RangeFrom)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "range_from must be RFC3339"})
		return
	}
	toPtr, err := parseExportTime(req.RangeTo)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "range_to must be RFC3339"})
		return
	}
	if fromPtr != nil && toPtr != nil && fromPtr.After(*toPtr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "range_from is after range_to"})
		return
	}

	job := models.ExportJob{
		JobID:     uuid.New().String(),
		ServiceID: svc.ID,
		Format:    req.Format,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    models.ExportQueued,
	}
	if err := config.DB.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		dbError(c, err, "create export job")
		return
	}

	startExport(job.JobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
	})
}

// GET /api/exports/:job_id
// Job xong và file còn trên đĩa thì trả file, ngược lại trả trạng thái.
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.WithContext(c.Request.Context()).First(&job, "job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Export job not found"})
			return
		}
		dbError(c, err, "load export job")
		return
	}

	if job.Status == models.ExportDone && job.FilePath != nil && c.Query("status") == "" {
		if _, err := os.Stat(*job.FilePath); err == nil {
			c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":     job.JobID,
		"status":     job.Status,
		"format":     job.Format,
		"public_url": job.PublicURL,
		"error":      job.ErrorMsg,
	})
}

// processExportJob ghi các lượt trả lời của dịch vụ ra file, mỗi câu hỏi một cột (giá trị là nhãn đã chọn).
func processExportJob(ctx context.Context, jobID string) {
	db := config.DB.WithContext(ctx)
	log := logger.Log.WithField("job_id", jobID)

	var job models.ExportJob
	if err := db.First(&job, "job_id = ?", jobID).Error; err != nil {
		log.WithError(err).Error("export job not found")
		return
	}
	if err := db.Model(&job).Update("status", models.ExportProcessing).Error; err != nil {
		log.WithError(err).Error("mark export processing")
		return
	}

	fail := func(err error) {
		em := err.Error()
		if uerr := db.Model(&job).Updates(map[string]interface{}{"status": models.ExportFailed, "error_msg": em}).Error; uerr != nil {
			log.WithError(uerr).Error("mark export failed")
		}
		log.WithError(err).Error("export failed")
	}

	var svc models.Service
	if err := db.First(&svc, job.ServiceID).Error; err != nil {
		fail(fmt.Errorf("load service: %w", err))
		return
	}
	survey, err := surveytree.LoadOne(ctx, config.DB, int64(svc.SurveyID))
	if err != nil && !errors.Is(err, surveytree.ErrSurveyNotFound) {
		fail(err)
		return
	}

	var responses []models.Response
	q := db.Preload("Answers").Where("service_id = ?", job.ServiceID)
	if job.RangeFrom != nil {
		q = q.Where("completed_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("completed_at <= ?", job.RangeTo)
	}
	if err := q.Order("completed_at ASC").Order("id ASC").Find(&responses).Error; err != nil {
		fail(fmt.Errorf("load responses: %w", err))
		return
	}

	header, rows := exportTable(survey, responses)
	var buf bytes.Buffer
	if err := utils.WriteTable(&buf, job.Format, "Responses", header, rows); err != nil {
		fail(err)
		return
	}

	cfg := config.Current()
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		fail(err)
		return
	}
	filename := fmt.Sprintf("export_%d_%s.%s", svc.ID, job.JobID, job.Format)
	outPath := filepath.Join(cfg.ExportDir, filename)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		fail(err)
		return
	}

	updates := map[string]interface{}{"status": models.ExportDone, "file_path": outPath}

	// Supabase là tuỳ chọn: upload lỗi thì vẫn giữ file local
	storageCfg := utils.SupabaseConfig{URL: cfg.SupabaseURL, Key: cfg.SupabaseKey, Bucket: cfg.SupabaseBucket}
	if storageCfg.Enabled() {
		url, err := utils.UploadToSupabase(storageCfg, buf.Bytes(), "exports", filename, utils.ContentType(job.Format))
		if err != nil {
			log.WithError(err).Warn("upload export to supabase failed")
		} else {
			updates["public_url"] = url
		}
	}

	if err := db.Model(&job).Updates(updates).Error; err != nil {
		log.WithError(err).WithField("file", outPath).Error("mark export done")
		return
	}
	log.WithFields(logrus.Fields{"rows": len(rows), "file": outPath}).Info("export done")
}

func exportTable(survey surveytree.Survey, responses []models.Response) ([]string, [][]string) {
	header := []string{"response_id", "completed_at", "overall", "corruption_perception", "service_quality", "survey_integrity"}
	for _, q := range survey.Questions {
		header = append(header, fmt.Sprintf("Q%d %s", q.ItemID, q.Text))
	}

	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		labels := make(map[uint]string, len(r.Answers))
		for _, a := range r.Answers {
			labels[a.ItemID] = a.Label
		}
		row := []string{
			r.PublicID,
			r.CompletedAt.UTC().Format(time.RFC3339),
			formatScore(r.Overall),
			formatScore(r.CorruptionPerception),
			formatScore(r.ServiceQuality),
			formatScore(r.SurveyIntegrity),
		}
		for _, q := range survey.Questions {
			row = append(row, labels[uint(q.ItemID)])
		}
		rows = append(rows, row)
	}
	return header, rows
}

// parseExportTime: nil hoặc chuỗi rỗng nghĩa là không giới hạn.
func parseExportTime(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
