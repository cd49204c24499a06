package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/mbudget/internal/model"
	"github.com/theirongolddev/mbudget/internal/pipeline"
	"github.com/theirongolddev/mbudget/internal/report"
)

type formField struct {
	Key   string
	Label string
	Hint  string
	Value string
	Text  bool
}

type pageData struct {
	Title        string
	Organization string
	TableName    string
	Fields       []formField
	Doc          report.Document
	Warnings     []string
	Formats      []report.Format
}

// PlanResponse is returned by POST /api/plan.
type PlanResponse struct {
	Plan       model.Plan      `json:"plan"`
	Warnings   []model.Warning `json:"warnings"`
	RatioTable string          `json:"ratio_table"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleForm(c *gin.Context) {
	in := s.opts.Defaults
	if c.Request.Method == http.MethodPost {
		var err error
		if in, err = s.bindInputs(c); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	plan := pipeline.Compute(in, s.opts.Table)
	data := pageData{
		Title:        report.Title,
		Organization: s.opts.Organization,
		TableName:    s.opts.Table.Name,
		Doc:          s.document(plan, false),
		Formats:      report.Formats,
	}
	for _, f := range pipeline.Fields {
		data.Fields = append(data.Fields, formField{
			Key:   f.Key,
			Label: pipeline.FieldLabel(f, plan.NextYear),
			Hint:  f.Hint,
			Value: pipeline.FieldValue(in, f.Key),
			Text:  f.Text,
		})
	}
	for _, w := range pipeline.Validate(in, s.opts.Table) {
		data.Warnings = append(data.Warnings, w.String())
	}

	c.HTML(http.StatusOK, "form.html", data)
}

func (s *Server) handlePlan(c *gin.Context) {
	in, err := s.bindInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	plan := pipeline.Compute(in, s.opts.Table)
	if !plan.Finite() {
		// encoding/json cannot carry NaN or ±Inf.
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "inputs overflow the plan; use smaller values"})
		return
	}

	warns := pipeline.Validate(in, s.opts.Table)
	if warns == nil {
		warns = []model.Warning{}
	}
	c.JSON(http.StatusOK, PlanResponse{
		Plan:       plan,
		Warnings:   warns,
		RatioTable: s.opts.Table.Name,
	})
}

func (s *Server) handleBands(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Table)
}

func (s *Server) handleReport(c *gin.Context) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	in, err := s.bindInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	doc := s.document(pipeline.Compute(in, s.opts.Table), s.opts.IncludeChart)
	var buf bytes.Buffer
	if err := report.Render(&buf, doc, format); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "rendering report failed"})
		return
	}

	name := report.Filename(doc.Brand, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, quoteSafe(name)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// bindInputs overlays the request body on the configured defaults. JSON
// bodies are decoded as model.Inputs; anything else is read as a form.
func (s *Server) bindInputs(c *gin.Context) (model.Inputs, error) {
	in := s.opts.Defaults
	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&in); err != nil {
			return s.opts.Defaults, fmt.Errorf("decoding inputs: %w", err)
		}
		return in, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return s.opts.Defaults, fmt.Errorf("parsing form: %w", err)
	}
	for _, f := range pipeline.Fields {
		if v, ok := c.GetPostForm(f.Key); ok {
			pipeline.SetField(&in, f.Key, v)
		}
	}
	return in, nil
}

func (s *Server) document(p model.Plan, chart bool) report.Document {
	return report.Build(p, report.Options{
		Organization: s.opts.Organization,
		IncludeChart: chart,
		Now:          s.opts.Now,
	})
}

var quoteReplacer = strings.NewReplacer(`"`, "'", "\r", "", "\n", "")

func quoteSafe(s string) string {
	return quoteReplacer.Replace(s)
}
