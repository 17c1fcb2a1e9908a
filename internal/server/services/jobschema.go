package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed job_schema.json
var jobSchemaJSON []byte

// JobSchema validates job documents against the embedded JSON schema.
type JobSchema struct {
	schema *gojsonschema.Schema
}

func NewJobSchema() (*JobSchema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jobSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("load job schema: %w", err)
	}
	return &JobSchema{schema: schema}, nil
}

// Validate returns a common.ErrorValidation error listing every violation.
func (s *JobSchema) Validate(job *models.Job) error {
	doc, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate job: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return common.NewError(common.ErrorValidation, "invalid job: "+strings.Join(msgs, "; "))
}
