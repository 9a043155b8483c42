package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"datekeeper/models"
	"datekeeper/services/intelligence"
	"datekeeper/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Dates further than 5 years in the past or 10 years in the future are OCR
// garbage (birth years, serial numbers), not plausible expiry dates.
const (
	minOffsetDays = -1825
	maxOffsetDays = 3650
)

// recentPastDays bounds the "recently expired" selection window.
const recentPastDays = 730

const cacheTTL = 24 * time.Hour

// ExtractionService turns raw OCR text into a best-guess expiry date and a
// document type. Absence of a date is a normal outcome, never an error.
type ExtractionService interface {
	Extract(ctx context.Context, text string) models.ExtractionResult
}

// DefaultExtractionService is the production implementation.
// Suggester and Cache are optional; Now is injectable for tests.
type DefaultExtractionService struct {
	Suggester intelligence.ExpiryDateSuggester
	Cache     *redis.Client
	Now       func() time.Time
}

func (s *DefaultExtractionService) today() time.Time {
	if s.Now != nil {
		return models.DateOnly(s.Now())
	}
	return models.DateOnly(time.Now())
}

// Extract runs the AI-assisted pass when configured, then the deterministic
// pattern pass. It never fails: malformed or dateless text yields a result
// with no expiry date and low confidence.
func (s *DefaultExtractionService) Extract(ctx context.Context, text string) models.ExtractionResult {
	logger := utils.GetLogger()
	today := s.today()
	docType := DetectDocumentType(text)

	if cached, ok := s.cachedResult(ctx, text, today); ok {
		return cached
	}

	if s.Suggester != nil {
		if suggested, err := s.Suggester.SuggestExpiryDate(ctx, text); err == nil {
			date := models.DateOnly(suggested)
			result := models.ExtractionResult{
				ExpiryDate:   &date,
				Confidence:   models.ConfidenceHigh,
				DocumentType: docType,
			}
			s.storeResult(ctx, text, today, result)
			return result
		} else {
			// Best effort only; fall through to the pattern pass.
			logger.Debug("AI date suggestion unavailable", zap.Error(err))
		}
	}

	result := models.ExtractionResult{
		Confidence:   models.ConfidenceLow,
		DocumentType: docType,
	}
	if date, ok := extractByPatterns(text, today); ok {
		result.ExpiryDate = &date
		result.Confidence = models.ConfidenceHigh
	}
	s.storeResult(ctx, text, today, result)
	return result
}

// extractByPatterns scans the text with the ordered pattern list, parses every
// candidate, drops out-of-range dates and selects the most actionable one.
func extractByPatterns(text string, today time.Time) (time.Time, bool) {
	type candidate struct {
		date time.Time
		diff int
	}
	var found []candidate

	for _, p := range datePatterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			raw := match[len(match)-1]
			date, ok := parseCandidate(raw)
			if !ok {
				continue
			}
			diff := models.DaysUntil(date, today)
			if diff < minOffsetDays || diff > maxOffsetDays {
				continue
			}
			found = append(found, candidate{date: date, diff: diff})
		}
	}
	if len(found) == 0 {
		return time.Time{}, false
	}

	// Earliest future-or-today date wins: the closest upcoming expiry is the
	// most actionable. With no future dates, prefer the most recent expiry
	// within the last two years, then the most recent overall.
	var future, recentPast, overall *candidate
	for i := range found {
		c := &found[i]
		switch {
		case c.diff >= 0:
			if future == nil || c.date.Before(future.date) {
				future = c
			}
		case c.diff >= -recentPastDays:
			if recentPast == nil || c.date.After(recentPast.date) {
				recentPast = c
			}
		}
		if overall == nil || c.date.After(overall.date) {
			overall = c
		}
	}

	switch {
	case future != nil:
		return future.date, true
	case recentPast != nil:
		return recentPast.date, true
	default:
		return overall.date, true
	}
}

var docTypeKeywords = []struct {
	docType  models.DocumentType
	keywords []string
}{
	{models.TypePassport, []string{"passport", "passeport", "pasaporte"}},
	{models.TypeDrivingLicense, []string{"driving", "driver", "license", "licence"}},
	{models.TypeNationalID, []string{"identity", "national id", "citizen"}},
	{models.TypeVisa, []string{"visa"}},
}

// DetectDocumentType guesses the document type from keywords in the text.
// Always succeeds; unrecognized text is TypeOther.
func DetectDocumentType(text string) models.DocumentType {
	lower := strings.ToLower(text)
	for _, entry := range docTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.docType
			}
		}
	}
	return models.TypeOther
}

// cacheKey incorporates the current day: candidate selection is relative to
// "today", so yesterday's answer may differ from today's.
func cacheKey(text string, today time.Time) string {
	sum := sha256.Sum256([]byte(text))
	return "extract:" + today.Format("2006-01-02") + ":" + hex.EncodeToString(sum[:])
}

func (s *DefaultExtractionService) cachedResult(ctx context.Context, text string, today time.Time) (models.ExtractionResult, bool) {
	if s.Cache == nil {
		return models.ExtractionResult{}, false
	}
	raw, err := s.Cache.Get(ctx, cacheKey(text, today)).Result()
	if err != nil {
		return models.ExtractionResult{}, false
	}
	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.ExtractionResult{}, false
	}
	return result, true
}

func (s *DefaultExtractionService) storeResult(ctx context.Context, text string, today time.Time, result models.ExtractionResult) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(text, today), raw, cacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache extraction result", zap.Error(err))
	}
}
