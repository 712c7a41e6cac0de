// Package triage assigns a lane, a risk level and a preparation list to
// an incoming issue using category and keyword matching.
package triage

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/domain"
)

// Options toggles the two policy variants of the engine.
type Options struct {
	// UrgentFlagForcesCriticalPath routes every self-reported urgent issue
	// to the critical lane. When false the flag only raises the risk level.
	UrgentFlagForcesCriticalPath bool
	// UrgentKeyword adds "urgent" to the description keyword list.
	UrgentKeyword bool
}

// Result is the outcome of triaging one issue.
type Result struct {
	Path           domain.Path
	RiskLevel      domain.RiskLevel
	Checklist      []string
	DocsNeeded     []string
	MatchedKeyword string
}

var criticalTypes = map[domain.IssueType]struct{}{
	domain.IssueTypeLostCard:      {},
	domain.IssueTypeStolenCard:    {},
	domain.IssueTypeMoneyMissing:  {},
	domain.IssueTypeFraud:         {},
	domain.IssueTypeAccountLocked: {},
}

var baseKeywords = []string{
	"lost",
	"stolen",
	"fraud",
	"scam",
	"missing",
	"locked",
	"blocked",
	"no money",
	"cannot login",
}

// Engine is safe for concurrent use; it holds no mutable state.
type Engine struct {
	opts     Options
	keywords []string
	logger   *zap.Logger
}

// NewEngine builds an engine for the given policy.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	keywords := append([]string{}, baseKeywords...)
	if opts.UrgentKeyword {
		keywords = append(keywords, "urgent")
	}
	return &Engine{opts: opts, keywords: keywords, logger: logger}
}

// Keywords returns the description keywords in scan order.
func (e *Engine) Keywords() []string {
	return append([]string{}, e.keywords...)
}

// Triage classifies an issue. It never fails; unknown categories get the
// generic preparation list.
func (e *Engine) Triage(issueType domain.IssueType, description string, isUrgent bool) Result {
	res := Result{Path: domain.PathNormal, RiskLevel: domain.RiskLow}

	if isUrgent {
		res.RiskLevel = domain.RiskHigh
		if e.opts.UrgentFlagForcesCriticalPath {
			res.Path = domain.PathCritical
		}
	}

	if _, ok := criticalTypes[issueType]; ok {
		res.Path = domain.PathCritical
		res.RiskLevel = domain.RiskHigh
	}

	text := strings.ToLower(description)
	for _, word := range e.keywords {
		if strings.Contains(text, word) {
			res.Path = domain.PathCritical
			res.RiskLevel = domain.RiskHigh
			res.MatchedKeyword = word
			break
		}
	}

	prep := preparationFor(issueType)
	res.Checklist = append([]string{}, prep.checklist...)
	res.DocsNeeded = append([]string{}, prep.docs...)

	e.logger.Debug("triage",
		zap.String("issue_type", string(issueType)),
		zap.Bool("urgent", isUrgent),
		zap.String("keyword", res.MatchedKeyword),
		zap.String("path", string(res.Path)),
		zap.String("risk", string(res.RiskLevel)))
	return res
}
