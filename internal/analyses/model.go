package analyses

import (
	"encoding/json"
	"time"
)

// AnalysisResult mirrors the JSON object the optimizer prompt demands. The
// service passes the raw decoded object through to clients unchanged; this
// typed view exists for scoring, history summaries, and exports.
type AnalysisResult struct {
	JDAnalysis        JDAnalysis       `json:"jd_analysis"`
	GapAnalysis       []GapItem        `json:"gap_analysis"`
	LineByLineChanges []LineChange     `json:"line_by_line_changes"`
	Improvements      []string         `json:"improvements"`
	OptimizedResume   OptimizedResume  `json:"optimized_resume"`
}

type JDAnalysis struct {
	Company         string           `json:"company"`
	Role            string           `json:"role"`
	Seniority       string           `json:"seniority"`
	KeyRequirements []KeyRequirement `json:"key_requirements"`
}

type KeyRequirement struct {
	Requirement string   `json:"requirement"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
}

// Match levels for a gap analysis entry.
const (
	MatchStrong  = "strong"
	MatchPartial = "partial"
	MatchGap     = "gap"
)

type GapItem struct {
	Requirement     string `json:"requirement"`
	MatchLevel      string `json:"match_level"`
	CurrentEvidence string `json:"current_evidence"`
	Suggestion      string `json:"suggestion"`
}

type LineChange struct {
	Section string `json:"section"`
	Item    string `json:"item"`
	Before  string `json:"before"`
	After   string `json:"after"`
	Reason  string `json:"reason"`
}

type OptimizedResume struct {
	Header     ResumeHeader      `json:"header"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
}

type ResumeHeader struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Contact string `json:"contact"`
}

type ExperienceEntry struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// Record is a persisted analysis row. Rows are insert-only.
type Record struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	ResumeText     string          `json:"resumeText"`
	JobDescription string          `json:"jobDescription"`
	Result         json.RawMessage `json:"result"`
	Status         string          `json:"status"`
	ProcessingMs   int64           `json:"processingMs"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// StatusCompleted is the only status written today; the column exists so a
// future async pipeline can reuse the table.
const StatusCompleted = "completed"

// Summary is the list view of a persisted analysis.
type Summary struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Score     int       `json:"score"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
