package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/hash"
)

type AnalyzeInput struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Language string `json:"language" validate:"omitempty,max=32"`
	Content  string `json:"content" validate:"max=1048576"`
}

// Analyze scores source text. Reports are cached by language and content
// fingerprint; the returned Result always carries a fresh id and time.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (analysis.Result, error) {
	lang := analysis.DetectLanguage(in.Filename)
	if in.Language != "" {
		l, ok := analysis.ParseLanguage(in.Language)
		if !ok {
			return analysis.Result{}, apperr.InvalidParam("unsupported language "+in.Language, nil)
		}
		lang = l
	}

	key := cache.AnalysisReportKey(string(lang), hash.ContentKey(in.Content))
	report, err := s.reports.GetOrSetWithTTL(key, s.reportTTL, func() (analysis.Report, error) {
		return s.evaluate(ctx, key, in.Content, lang)
	})
	if err != nil {
		s.logger.Warn("analyze failed", zap.String("key", key), zap.Error(err))
		return analysis.Result{}, apperr.MapError(serviceName, err, apperr.CodeInternal, apperr.MsgComputeFailed, http.StatusInternalServerError)
	}

	return s.analyzer.Stamp(in.Filename, lang, report), nil
}

// evaluate consults the remote cache, when configured, before computing.
func (s *Service) evaluate(ctx context.Context, key, content string, lang analysis.Language) (analysis.Report, error) {
	return throughRemote(ctx, s, key, s.reportTTL, func() (analysis.Report, error) {
		return analysis.Evaluate(content, lang), nil
	})
}
