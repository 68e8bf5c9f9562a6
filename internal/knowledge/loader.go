// Package knowledge loads the Notch knowledge base and answers read-only
// queries over it.
package knowledge

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	apperrors "notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/validation"
	"notch-chatbot/internal/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Document names, in load order.
const (
	DocServices    = "services"
	DocCaseStudies = "case_studies"
	DocUseCases    = "use_cases"
	DocExpertise   = "expertise"
)

var documentNames = []string{DocServices, DocCaseStudies, DocUseCases, DocExpertise}

// Source produces a validated knowledge base.
type Source interface {
	Load(ctx context.Context) (*models.KnowledgeBase, error)
}

// DirSource reads services.json, case_studies.json, use_cases.json and
// expertise.json from Dir.
type DirSource struct {
	Dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Load(ctx context.Context) (*models.KnowledgeBase, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDocuments(docs, fileLabel)
}

// Documents returns the raw bytes of the four documents keyed by name,
// without validating them.
func (s *DirSource) Documents(ctx context.Context) (map[string][]byte, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, apperrors.NewKnowledgeResourceNotFoundError(fmt.Sprintf("data directory %s", s.Dir), err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewKnowledgeResourceNotFoundError(fmt.Sprintf("data directory %s (not a directory)", s.Dir), nil)
	}

	docs := make(map[string][]byte, len(documentNames))
	for _, name := range documentNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.Dir, fileLabel(name))
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewKnowledgeResourceNotFoundError(path, err)
		}
		docs[name] = raw
	}
	return docs, nil
}

func fileLabel(name string) string {
	return name + ".json"
}

// decodeDocuments parses, validates and assembles the four documents.
// label renders a document name for error messages.
func decodeDocuments(docs map[string][]byte, label func(string) string) (*models.KnowledgeBase, error) {
	kb := &models.KnowledgeBase{}
	targets := map[string]interface{}{
		DocServices:    &kb.Services,
		DocCaseStudies: &kb.CaseStudies,
		DocUseCases:    &kb.UseCases,
		DocExpertise:   &kb.ExpertiseDomains,
	}

	for _, name := range documentNames {
		raw := docs[name]
		resource := label(name)

		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, apperrors.NewKnowledgeParseFailedError(resource, err)
		}

		schema, err := documentSchema(name)
		if err != nil {
			return nil, err
		}
		result := validation.ValidateDocument(schema, raw)
		if !result.Valid {
			return nil, apperrors.NewKnowledgeValidationFailedError(resource, result.GetErrorMessages())
		}

		if err := json.Unmarshal(raw, targets[name]); err != nil {
			return nil, apperrors.NewKnowledgeParseFailedError(resource, err)
		}
	}

	applyDefaults(kb)

	if problems := duplicateIDs(kb, label); len(problems) > 0 {
		return nil, apperrors.NewKnowledgeValidationFailedError("knowledge base", problems)
	}
	return kb, nil
}

var compiledSchemas = map[string]*gojsonschema.Schema{}

func init() {
	for _, name := range documentNames {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
		if err != nil {
			panic(fmt.Sprintf("knowledge: missing embedded schema %s: %v", name, err))
		}
		compiled, err := validation.CompileRaw(raw)
		if err != nil {
			panic(fmt.Sprintf("knowledge: invalid embedded schema %s: %v", name, err))
		}
		compiledSchemas[name] = compiled
	}
}

func documentSchema(name string) (*gojsonschema.Schema, error) {
	schema, ok := compiledSchemas[name]
	if !ok {
		return nil, fmt.Errorf("no schema for knowledge document %q", name)
	}
	return schema, nil
}

// applyDefaults fills list fields that default to empty when omitted.
func applyDefaults(kb *models.KnowledgeBase) {
	if kb.Services == nil {
		kb.Services = []models.Service{}
	}
	if kb.CaseStudies == nil {
		kb.CaseStudies = []models.CaseStudy{}
	}
	if kb.UseCases == nil {
		kb.UseCases = []models.UseCase{}
	}
	if kb.ExpertiseDomains == nil {
		kb.ExpertiseDomains = map[string]string{}
	}
	for i := range kb.Services {
		if kb.Services[i].IdealFor == nil {
			kb.Services[i].IdealFor = []string{}
		}
	}
	for i := range kb.CaseStudies {
		if kb.CaseStudies[i].Technologies == nil {
			kb.CaseStudies[i].Technologies = []string{}
		}
	}
}

func duplicateIDs(kb *models.KnowledgeBase, label func(string) string) []string {
	var problems []string
	check := func(doc string, ids []string) {
		seen := make(map[string]int, len(ids))
		for i, id := range ids {
			if first, ok := seen[id]; ok {
				problems = append(problems, fmt.Sprintf("%s: %d.id: duplicate id %q (first at %d)", label(doc), i, id, first))
				continue
			}
			seen[id] = i
		}
	}

	ids := make([]string, len(kb.Services))
	for i, s := range kb.Services {
		ids[i] = s.ID
	}
	check(DocServices, ids)

	ids = make([]string, len(kb.CaseStudies))
	for i, cs := range kb.CaseStudies {
		ids[i] = cs.ID
	}
	check(DocCaseStudies, ids)

	ids = make([]string, len(kb.UseCases))
	for i, uc := range kb.UseCases {
		ids[i] = uc.ID
	}
	check(DocUseCases, ids)

	return problems
}
