package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/canopy/internal/risk"
	"github.com/JaimeStill/canopy/pkg/pagination"
	"github.com/JaimeStill/canopy/pkg/query"
	"github.com/JaimeStill/canopy/pkg/repository"
	"github.com/JaimeStill/canopy/pkg/storage"
)

// recentWindow bounds the recent report count in Stats.
const recentWindow = 7 * 24 * time.Hour

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
// A nil store skips archived image cleanup on delete.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "DiseaseName", "DiseaseID", "UserNotes")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Generate(ctx context.Context, cmd GenerateCommand) (*Report, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	analysisDoc, err := json.Marshal(cmd.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	riskDoc, err := jsonOrNil(cmd.Risk)
	if err != nil {
		return nil, fmt.Errorf("encode risk: %w", err)
	}
	weatherDoc, err := jsonOrNil(cmd.Weather)
	if err != nil {
		return nil, fmt.Errorf("encode weather: %w", err)
	}

	det := cmd.Analysis.Result.Detection
	var riskLevel *string
	var temperature, humidity *float64
	if cmd.Risk != nil {
		level := string(cmd.Risk.RiskLevel)
		riskLevel = &level
		temperature = &cmd.Risk.Temperature
		humidity = &cmd.Risk.Humidity
	} else if cmd.Weather != nil {
		temperature = &cmd.Weather.Temperature
		humidity = &cmd.Weather.Humidity
	}

	var imageKey *string
	if k := cmd.Analysis.Image.Key; k != "" {
		imageKey = &k
	}

	q := `
		INSERT INTO reports(
			id, plant_type, disease_id, disease_name, confidence, is_fallback, model_used,
			risk_level, temperature, humidity, image_key, analysis, risk, weather,
			user_notes, summary, type, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING
			id, plant_type, disease_id, disease_name, confidence, is_fallback, model_used,
			risk_level, temperature, humidity, image_key, analysis, risk, weather,
			user_notes, summary, type, status, created_at`

	insertArgs := []any{
		uuid.New(),
		string(cmd.Analysis.PlantType),
		cmd.Analysis.Result.DiseaseID,
		cmd.Analysis.Result.Disease.Name,
		det.Confidence,
		det.IsFallback,
		det.ModelUsed,
		riskLevel,
		temperature,
		humidity,
		imageKey,
		string(analysisDoc),
		riskDoc,
		weatherDoc,
		cmd.UserNotes,
		Summarize(cmd, time.Now().UTC()),
		TypeDiseaseAnalysis,
		StatusCompleted,
	}

	rep, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReport)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report generated", "id", rep.ID, "disease_id", rep.DiseaseID)
	return &rep, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if r.storage != nil && rep.ImageKey != nil {
		if delErr := r.storage.Delete(ctx, *rep.ImageKey); delErr != nil {
			r.logger.Warn(
				"image delete failed after report delete",
				"key", *rep.ImageKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now().UTC()
	stats := &Stats{
		DiseaseDistribution: make(map[string]int),
		RiskDistribution: map[string]int{
			string(risk.High):   0,
			string(risk.Medium): 0,
			string(risk.Low):    0,
		},
		GeneratedAt: now,
	}

	err := r.db.QueryRowContext(
		ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $1) FROM reports",
		now.Add(-recentWindow),
	).Scan(&stats.TotalReports, &stats.RecentReports)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	if err := r.distribution(
		ctx,
		"SELECT disease_name, COUNT(*) FROM reports GROUP BY disease_name",
		stats.DiseaseDistribution,
	); err != nil {
		return nil, fmt.Errorf("disease distribution: %w", err)
	}

	if err := r.distribution(
		ctx,
		"SELECT risk_level, COUNT(*) FROM reports WHERE risk_level IS NOT NULL GROUP BY risk_level",
		stats.RiskDistribution,
	); err != nil {
		return nil, fmt.Errorf("risk distribution: %w", err)
	}

	return stats, nil
}

type bucket struct {
	key   string
	count int
}

func (r *repo) distribution(ctx context.Context, q string, into map[string]int) error {
	buckets, err := repository.QueryMany(ctx, r.db, q, nil, func(s repository.Scanner) (bucket, error) {
		var b bucket
		err := s.Scan(&b.key, &b.count)
		return b, err
	})
	if err != nil {
		return err
	}
	for _, b := range buckets {
		into[b.key] = b.count
	}
	return nil
}

func jsonOrNil[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
