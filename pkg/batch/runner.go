package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fundmatch-dev/siteinfoextractor/pkg/config"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/crawler"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/models"
	"github.com/fundmatch-dev/siteinfoextractor/pkg/utils"
)

// Enricher is the optional AI analysis stage applied after a successful
// crawl. A nil Enricher disables enrichment entirely.
type Enricher interface {
	AnalyzeBusiness(ctx context.Context, business models.Business, agg *models.CrawlAggregate, pageHTML string) (*models.BusinessAnalysis, error)
}

// Runner processes a table of businesses: one bounded crawl each, optional
// enrichment, one result row per input row. A failed business never aborts
// the batch.
type Runner struct {
	crawler  *crawler.Crawler
	enricher Enricher
	cfg      config.BatchConfig
	log      *logrus.Logger
}

// NewRunner creates a Runner. enricher may be nil.
func NewRunner(c *crawler.Crawler, enricher Enricher, cfg config.BatchConfig, log *logrus.Logger) *Runner {
	return &Runner{
		crawler:  c,
		enricher: enricher,
		cfg:      cfg,
		log:      log,
	}
}

// Run processes every business and returns one result per input, in input
// order. On context cancellation the results produced so far keep their
// rows; unprocessed businesses get a cancellation row.
func (r *Runner) Run(ctx context.Context, businesses []models.Business) []models.BusinessResult {
	runID := uuid.NewString()
	runLog := r.log.WithFields(logrus.Fields{
		"run_id":     runID,
		"businesses": len(businesses),
	})
	runLog.Info("Starting batch run")

	results := make([]models.BusinessResult, len(businesses))
	sem := semaphore.NewWeighted(int64(r.cfg.Concurrency))
	g, gctx := errgroup.WithContext(ctx)

	for i, business := range businesses {
		i, business := i, business
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				results[i] = r.cancelledResult(business, runID, err)
				return nil
			}
			defer sem.Release(1)

			if i > 0 {
				if err := r.businessPause(gctx); err != nil {
					results[i] = r.cancelledResult(business, runID, err)
					return nil
				}
			}

			results[i] = r.processBusiness(gctx, business, runID)
			return nil
		})
	}
	g.Wait() // Workers never return errors; Wait is for completion only

	summarize(runLog, results)
	return results
}

// businessPause sleeps a random duration between the configured bounds,
// spacing out businesses so crawls do not look machine-timed.
func (r *Runner) businessPause(ctx context.Context) error {
	span := r.cfg.MaxBusinessDelay - r.cfg.MinBusinessDelay
	delay := r.cfg.MinBusinessDelay
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) processBusiness(ctx context.Context, business models.Business, runID string) models.BusinessResult {
	bizLog := r.log.WithFields(logrus.Fields{
		"business": business.Name,
		"website":  business.Website,
	})

	result := models.BusinessResult{
		Name:    business.Name,
		Address: business.Address,
		Phone:   business.PhoneNumber,
		Website: business.Website,
		RunID:   runID,
	}

	if business.Website == "" {
		bizLog.Info("No website listed, skipping crawl")
		result.ErrorMessage = utils.CategorizeError(utils.ErrNoWebsite)
		return result
	}

	crawlResult, err := r.crawler.Crawl(ctx, business.Website)
	if err != nil {
		bizLog.WithError(err).Warn("Crawl failed")
		result.ErrorMessage = utils.CategorizeError(err)
		if crawlResult != nil && crawlResult.Aggregate != nil {
			// Cancelled mid-crawl: keep the partial aggregate
			result.Aggregate = crawlResult.Aggregate
			result.StatusCode = crawlResult.Aggregate.StatusCode
		}
		return result
	}

	result.Success = true
	result.Aggregate = crawlResult.Aggregate
	result.StatusCode = crawlResult.Aggregate.StatusCode

	if r.enricher != nil {
		analysis, err := r.enricher.AnalyzeBusiness(ctx, business, crawlResult.Aggregate, string(crawlResult.RootHTML))
		if err != nil {
			// Enrichment is best-effort, the crawl result stands on its own
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				bizLog.WithError(err).Warn("Enrichment cancelled")
			} else {
				bizLog.WithError(err).Warn("Enrichment failed, keeping crawl-only result")
			}
		} else {
			result.Analysis = analysis
		}
	}

	bizLog.WithFields(logrus.Fields{
		"emails": len(crawlResult.Aggregate.Emails),
		"items":  len(crawlResult.Aggregate.Items),
	}).Info("Business processed")
	return result
}

func (r *Runner) cancelledResult(business models.Business, runID string, err error) models.BusinessResult {
	return models.BusinessResult{
		Name:         business.Name,
		Address:      business.Address,
		Phone:        business.PhoneNumber,
		Website:      business.Website,
		ErrorMessage: utils.CategorizeError(err),
		RunID:        runID,
	}
}

func summarize(runLog *logrus.Entry, results []models.BusinessResult) {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	runLog.WithField("succeeded", fmt.Sprintf("%d/%d", succeeded, len(results))).Info("Batch run finished")
}
