package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-queue/internal/domain"
)

func TestTriageKeywordShortCircuit(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage(domain.IssueTypeOthers, "my card was stolen yesterday", false)
	assert.Equal(t, domain.PathCritical, res.Path)
	assert.Equal(t, domain.RiskHigh, res.RiskLevel)
	assert.Equal(t, "stolen", res.MatchedKeyword)
}

func TestTriageFirstKeywordWins(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage(domain.IssueTypeOthers, "Account BLOCKED after my card was LOST", false)
	assert.Equal(t, "lost", res.MatchedKeyword)
}

func TestTriageCategoryOverride(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage(domain.IssueTypeAccountLocked, "just a simple question", false)
	assert.Equal(t, domain.PathCritical, res.Path)
	assert.Equal(t, domain.RiskHigh, res.RiskLevel)
	assert.Empty(t, res.MatchedKeyword)
	assert.Equal(t, lockedPreparation.checklist, res.Checklist)
}

func TestTriageDefaultsToNormalLow(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage(domain.IssueTypeOthers, "question about fees", false)
	assert.Equal(t, domain.PathNormal, res.Path)
	assert.Equal(t, domain.RiskLow, res.RiskLevel)
	assert.Equal(t, genericPreparation.checklist, res.Checklist)
	assert.Equal(t, genericPreparation.docs, res.DocsNeeded)
}

func TestTriageUrgentFlagPolicies(t *testing.T) {
	lenient := NewEngine(Options{}, nil).Triage(domain.IssueTypeOthers, "question about fees", true)
	assert.Equal(t, domain.PathNormal, lenient.Path)
	assert.Equal(t, domain.RiskHigh, lenient.RiskLevel)

	strict := NewEngine(Options{UrgentFlagForcesCriticalPath: true}, nil).Triage(domain.IssueTypeOthers, "question about fees", true)
	assert.Equal(t, domain.PathCritical, strict.Path)
	assert.Equal(t, domain.RiskHigh, strict.RiskLevel)
}

func TestTriageUrgentKeywordOption(t *testing.T) {
	desc := "urgent help with statement"
	without := NewEngine(Options{}, nil).Triage(domain.IssueTypeOthers, desc, false)
	assert.Equal(t, domain.PathNormal, without.Path)

	with := NewEngine(Options{UrgentKeyword: true}, nil)
	res := with.Triage(domain.IssueTypeOthers, desc, false)
	assert.Equal(t, domain.PathCritical, res.Path)
	assert.Equal(t, "urgent", res.MatchedKeyword)
	assert.Contains(t, with.Keywords(), "urgent")
}

func TestTriageUnknownCategoryUsesGenericPreparation(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage("Mortgage enquiry", "", false)
	assert.Equal(t, domain.PathNormal, res.Path)
	assert.Equal(t, genericPreparation.checklist, res.Checklist)
}

func TestTriageDeterministic(t *testing.T) {
	e := NewEngine(Options{}, nil)
	descriptions := []string{"", "fees", "scam call", "cannot login to app", "NO MONEY left"}
	for _, it := range append(domain.IssueTypes, "Unknown") {
		for _, d := range descriptions {
			for _, urgent := range []bool{false, true} {
				first := e.Triage(it, d, urgent)
				for i := 0; i < 3; i++ {
					require.Equal(t, first, e.Triage(it, d, urgent), "%s/%q/%v", it, d, urgent)
				}
			}
		}
	}
}

func TestTriageResultDoesNotAliasTable(t *testing.T) {
	e := NewEngine(Options{}, nil)
	res := e.Triage(domain.IssueTypeLostCard, "", false)
	res.Checklist[0] = "changed"
	again := e.Triage(domain.IssueTypeLostCard, "", false)
	assert.Equal(t, "Confirm last 3 transactions", again.Checklist[0])
}
