package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notch-chatbot/internal/models"
)

func TestCheck_FixtureIsConsistent(t *testing.T) {
	kb, err := NewDirSource(fixtureDir).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, Check(kb))
}

func TestCheck_ReportsDanglingReferences(t *testing.T) {
	kb := &models.KnowledgeBase{
		Services: []models.Service{{ID: "ai-engineering"}},
		CaseStudies: []models.CaseStudy{
			{ID: "c1", ServicesUsed: []string{"ai-engineering", "legacy-rescue"}},
		},
		UseCases: []models.UseCase{
			{ID: "u1", RelatedServices: []string{"ghost"}},
		},
		ExpertiseDomains: map[string]string{
			"ai_engineering": "AI",
			"blockchain":     "Ledgers",
		},
	}

	issues := Check(kb)
	require.Len(t, issues, 3)

	assert.Equal(t, Issue{Kind: IssueUnknownService, Collection: DocCaseStudies, ID: "c1", Reference: "legacy-rescue"}, issues[0])
	assert.Equal(t, Issue{Kind: IssueUnknownService, Collection: DocUseCases, ID: "u1", Reference: "ghost"}, issues[1])
	assert.Equal(t, IssueUnknownExpertiseKey, issues[2].Kind)
	assert.Equal(t, "blockchain", issues[2].Reference)

	assert.Equal(t, `case_studies c1 references unknown service "legacy-rescue"`, issues[0].String())
	assert.Contains(t, issues[2].String(), "blockchain")
}
