package knowledgequery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/knowledge"
	"notch-chatbot/internal/models"
	"notch-chatbot/pkg/registry"
)

const fixtureDir = "../../knowledge/testdata/kb"

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	store, err := knowledge.Open(context.Background(), knowledge.NewDirSource(fixtureDir))
	require.NoError(t, err)

	reg := registry.New("test", logger.NewTestLogger(t))
	require.NoError(t, Register(reg, knowledge.NewQuery(store), ServiceDependencies{Logger: logger.NewTestLogger(t)}))
	return reg
}

func invoke[T any](t *testing.T, reg *registry.Registry, name, args string) T {
	t.Helper()
	raw, err := reg.Invoke(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func serviceID(s models.Service) string     { return s.ID }
func caseStudyID(c models.CaseStudy) string { return c.ID }

// ==========================
// Registration
// ==========================

func TestRegister_AllToolsInOrder(t *testing.T) {
	reg := newRegistry(t)

	assert.Equal(t, []string{
		ToolFindServicesByKeyword,
		ToolFindServicesByCategory,
		ToolFindCaseStudiesByIndustry,
		ToolFindCaseStudiesByService,
		ToolFindSimilarCaseStudies,
		ToolGetAllCaseStudies,
		ToolFindUseCasesByDomain,
		ToolGetExpertiseDescription,
		ToolListAllServices,
		ToolListAvailableIndustries,
	}, reg.Names())

	for _, def := range reg.Definitions() {
		assert.Equal(t, Category, def.Category, def.Name)
		assert.NotEmpty(t, def.Description, def.Name)
	}
}

func TestRegister_TwiceFails(t *testing.T) {
	reg := newRegistry(t)
	store := knowledge.NewStore(&models.KnowledgeBase{})

	err := Register(reg, knowledge.NewQuery(store), ServiceDependencies{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeToolRegistrationFailed))
}

// ==========================
// Services
// ==========================

func TestFindServicesByKeyword(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name string
		args string
		want []string
	}{
		{
			name: "iot",
			args: `{"keywords":["IoT"]}`,
			want: []string{"mobile-app-development", "iot-solutions", "cloud-devops"},
		},
		{
			name: "no match",
			args: `{"keywords":["cobol-mainframe-zzz"]}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoke[[]models.Service](t, reg, ToolFindServicesByKeyword, tt.args)
			assert.Equal(t, tt.want, ids(got, serviceID))
		})
	}
}

func TestFindServicesByKeyword_MissingKeywords(t *testing.T) {
	reg := newRegistry(t)

	_, err := reg.Invoke(context.Background(), ToolFindServicesByKeyword, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeToolArgumentsInvalid))
	assert.Contains(t, err.Error(), "keywords")
}

func TestFindServicesByKeyword_WrongType(t *testing.T) {
	reg := newRegistry(t)

	_, err := reg.Invoke(context.Background(), ToolFindServicesByKeyword, json.RawMessage(`{"keywords":"IoT"}`))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeToolArgumentsInvalid))
}

func TestFindServicesByCategory(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.Service](t, reg, ToolFindServicesByCategory, `{"category":" BUILD "}`)
	assert.Equal(t, []string{
		"custom-software-development",
		"ai-engineering",
		"mobile-app-development",
		"quality-engineering",
		"team-augmentation",
	}, ids(got, serviceID))

	unknown := invoke[[]models.Service](t, reg, ToolFindServicesByCategory, `{"category":"operate"}`)
	assert.Empty(t, unknown)
}

func TestListAllServices(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.Service](t, reg, ToolListAllServices, `{}`)
	require.Len(t, got, 11)
	assert.Equal(t, "product-discovery", got[0].ID)
	assert.Equal(t, "team-augmentation", got[10].ID)
	assert.Nil(t, got[10].TypicalTimeline)
	assert.NotNil(t, got[10].IdealFor)
}

func TestListAllServices_OmittedListsSerializeEmpty(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"services", "case_studies", "use_cases", "expertise"} {
		raw, err := os.ReadFile(filepath.Join(fixtureDir, name+".json"))
		require.NoError(t, err)
		if name == "services" {
			var docs []map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &docs))
			for _, d := range docs {
				delete(d, "ideal_for")
				d["key_features"] = []string{}
			}
			raw, err = json.Marshal(docs)
			require.NoError(t, err)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), raw, 0o600))
	}

	store, err := knowledge.Open(context.Background(), knowledge.NewDirSource(dir))
	require.NoError(t, err)
	reg := registry.New("test", logger.NewTestLogger(t))
	require.NoError(t, Register(reg, knowledge.NewQuery(store), ServiceDependencies{Logger: logger.NewTestLogger(t)}))

	raw, err := reg.Invoke(context.Background(), ToolListAllServices, json.RawMessage(`{}`))
	require.NoError(t, err)
	out := string(raw)
	assert.Equal(t, 11, strings.Count(out, `"ideal_for":[]`))
	assert.Equal(t, 11, strings.Count(out, `"key_features":[]`))
	assert.NotContains(t, out, `"ideal_for":null`)
	assert.NotContains(t, out, `"key_features":null`)
}

func TestListAllServices_NullArguments(t *testing.T) {
	reg := newRegistry(t)

	raw, err := reg.Invoke(context.Background(), ToolListAllServices, json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"product-discovery"`)
}

// ==========================
// Case studies
// ==========================

func TestFindCaseStudiesByIndustry(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name     string
		industry string
		want     []string
	}{
		{name: "token", industry: "manufacturing", want: []string{"factory-analytics", "plant-workflows"}},
		{name: "human phrasing", industry: "Workforce Management", want: []string{"shiftboard"}},
		{name: "unknown", industry: "agriculture", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, _ := json.Marshal(IndustryInput{Industry: tt.industry})
			got := invoke[[]models.CaseStudy](t, reg, ToolFindCaseStudiesByIndustry, string(args))
			assert.Equal(t, tt.want, ids(got, caseStudyID))
		})
	}
}

func TestFindCaseStudiesByService(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.CaseStudy](t, reg, ToolFindCaseStudiesByService, `{"service_id":"iot-solutions"}`)
	assert.Contains(t, ids(got, caseStudyID), "spotsie")
	for _, cs := range got {
		assert.Contains(t, cs.ServicesUsed, "iot-solutions")
	}
}

func TestFindSimilarCaseStudies(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.CaseStudy](t, reg, ToolFindSimilarCaseStudies, `{"keywords":["kafka"]}`)
	assert.Contains(t, ids(got, caseStudyID), "spotsie")
}

func TestGetAllCaseStudies(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.CaseStudy](t, reg, ToolGetAllCaseStudies, `{}`)
	require.Len(t, got, 7)
	assert.Nil(t, got[6].Outcome)
}

func TestListAvailableIndustries(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]string](t, reg, ToolListAvailableIndustries, `{}`)
	assert.Equal(t, []string{"energy", "fintech", "healthcare", "iot", "manufacturing", "workforce_management"}, got)
}

// ==========================
// Use cases and expertise
// ==========================

func TestFindUseCasesByDomain(t *testing.T) {
	reg := newRegistry(t)

	got := invoke[[]models.UseCase](t, reg, ToolFindUseCasesByDomain, `{"domain":"AI Engineering"}`)
	require.Len(t, got, 1)
	assert.Equal(t, "document-qa", got[0].ID)
}

func TestGetExpertiseDescription(t *testing.T) {
	reg := newRegistry(t)

	raw, err := reg.Invoke(context.Background(), ToolGetExpertiseDescription, json.RawMessage(`{"domain":"cloud_devops"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `"Cloud architecture, infrastructure as code and CI/CD."`, string(raw))

	raw, err = reg.Invoke(context.Background(), ToolGetExpertiseDescription, json.RawMessage(`{"domain":"quantum"}`))
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
