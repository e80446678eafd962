package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableAttempts        = "attempts"
	tableResponses       = "responses"
	tableReports         = "reports"
	tableRecommendations = "career_recommendations"
)

var (
	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "instrument_id", Type: field.TypeString},
		{Name: "owner_key", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString, Default: ""},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_owner_key_instrument_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[2], AttemptsColumns[1]},
			},
		},
	}

	// ResponsesColumns holds the columns for the "responses" table.
	ResponsesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "raw_value", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64, Nullable: true},
		{Name: "time_spent_ms", Type: field.TypeInt64, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ResponsesTable holds the schema information for the "responses" table.
	ResponsesTable = &schema.Table{
		Name:       tableResponses,
		Columns:    ResponsesColumns,
		PrimaryKey: []*schema.Column{ResponsesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "responses_attempts_responses",
				Columns:    []*schema.Column{ResponsesColumns[1]},
				RefColumns: []*schema.Column{AttemptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "response_attempt_id_question_id",
				Unique:  true,
				Columns: []*schema.Column{ResponsesColumns[1], ResponsesColumns[2]},
			},
		},
	}

	// ReportsColumns holds the columns for the "reports" table.
	ReportsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "attempt_id", Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ReportsTable holds the schema information for the "reports" table.
	ReportsTable = &schema.Table{
		Name:       tableReports,
		Columns:    ReportsColumns,
		PrimaryKey: []*schema.Column{ReportsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "reports_attempts_report",
				Columns:    []*schema.Column{ReportsColumns[1]},
				RefColumns: []*schema.Column{AttemptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// RecommendationsColumns holds the columns for the "career_recommendations" table.
	RecommendationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "occupation_code", Type: field.TypeString},
		{Name: "rank", Type: field.TypeInt},
		{Name: "match_score", Type: field.TypeInt},
		{Name: "data", Type: field.TypeJSON},
	}
	// RecommendationsTable holds the schema information for the "career_recommendations" table.
	RecommendationsTable = &schema.Table{
		Name:       tableRecommendations,
		Columns:    RecommendationsColumns,
		PrimaryKey: []*schema.Column{RecommendationsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "career_recommendations_attempts_careers",
				Columns:    []*schema.Column{RecommendationsColumns[1]},
				RefColumns: []*schema.Column{AttemptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "recommendation_attempt_id_occupation_code",
				Unique:  true,
				Columns: []*schema.Column{RecommendationsColumns[1], RecommendationsColumns[2]},
			},
			{
				Name:    "recommendation_attempt_id_rank",
				Unique:  true,
				Columns: []*schema.Column{RecommendationsColumns[1], RecommendationsColumns[3]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AttemptsTable,
		ResponsesTable,
		ReportsTable,
		RecommendationsTable,
	}
)

func init() {
	ResponsesTable.ForeignKeys[0].RefTable = AttemptsTable
	ReportsTable.ForeignKeys[0].RefTable = AttemptsTable
	RecommendationsTable.ForeignKeys[0].RefTable = AttemptsTable
}
