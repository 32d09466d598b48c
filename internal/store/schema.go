package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ProgressColumns holds the columns for the "survey_progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "answers", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProgressTable holds the in-progress answer map, one row per user.
	ProgressTable = &schema.Table{
		Name:       "survey_progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
	}

	// SurveysColumns holds the columns for the "surveys" table.
	SurveysColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "answers", Type: field.TypeJSON},
		{Name: "score", Type: field.TypeInt},
		{Name: "notes", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "assessment_data", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// SurveysTable holds completed assessments.
	SurveysTable = &schema.Table{
		Name:       "surveys",
		Columns:    SurveysColumns,
		PrimaryKey: []*schema.Column{SurveysColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "survey_user_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{SurveysColumns[1], SurveysColumns[6]},
			},
		},
	}

	// InsightsColumns holds the columns for the "insights" table.
	InsightsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "survey_id", Type: field.TypeInt},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "summary", Type: field.TypeString, Size: 2147483647},
		{Name: "strengths", Type: field.TypeJSON},
		{Name: "concerns", Type: field.TypeJSON},
		{Name: "suggestions", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// InsightsTable holds generated reflections on completed assessments.
	InsightsTable = &schema.Table{
		Name:       "insights",
		Columns:    InsightsColumns,
		PrimaryKey: []*schema.Column{InsightsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "insight_survey_id",
				Unique:  false,
				Columns: []*schema.Column{InsightsColumns[1]},
			},
		},
	}

	// LLMRequestsColumns holds the columns for the "llm_requests" table.
	LLMRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestsTable is the audit log of LLM API calls.
	LLMRequestsTable = &schema.Table{
		Name:       "llm_requests",
		Columns:    LLMRequestsColumns,
		PrimaryKey: []*schema.Column{LLMRequestsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequest_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProgressTable,
		SurveysTable,
		InsightsTable,
		LLMRequestsTable,
	}
)
