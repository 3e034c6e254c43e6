// Package pipeline derives statistics and views from a collection of job
// applications. All functions are pure: inputs are never modified and every
// change is returned as a new slice.
package pipeline

import (
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"job-copilot-backend/internal/domain"
)

// Sort keys accepted by Sort
const (
	SortByDate    = "date"
	SortByCompany = "company"
	SortByStatus  = "status"
)

// Filters accepted by Filter besides an exact status
const (
	FilterAll        = "all"
	FilterActive     = "active"
	FilterInterviews = "interviews"
)

// progressStages is the number of leading vocabulary entries drawn as a
// progress bar; the last two are terminal negative/neutral outcomes.
var progressStages = len(domain.StatusVocabulary) - 2

// pipelineStages is the number of leading stages shown in the pipeline view
const pipelineStages = 6

var statusColors = map[domain.Status]string{
	domain.StatusNotSubmitted:      "#94a3b8",
	domain.StatusSubmitted:         "#3b82f6",
	domain.StatusInitialResponse:   "#8b5cf6",
	domain.StatusInterview:         "#f59e0b",
	domain.StatusOnsiteInterview:   "#ec4899",
	domain.StatusOffer:             "#10b981",
	domain.StatusRejectedInterview: "#ef4444",
	domain.StatusDeclined:          "#6b7280",
}

// StatusColor returns the display color of a status, grey when unknown
func StatusColor(s domain.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#94a3b8"
}

// Statuses describes the vocabulary in order
func Statuses() []domain.StatusInfo {
	out := make([]domain.StatusInfo, len(domain.StatusVocabulary))
	for i, s := range domain.StatusVocabulary {
		out[i] = domain.StatusInfo{Status: s, Index: i, Color: StatusColor(s), Terminal: s.Terminal()}
	}
	return out
}

func isInterview(s domain.Status) bool {
	return strings.Contains(string(s), "Interview")
}

// ComputeStats derives the tracker headline figures. It is total: an empty
// collection yields all zeros.
func ComputeStats(apps []domain.Application) domain.ApplicationStats {
	st := domain.ApplicationStats{Total: len(apps)}
	responded := 0
	for _, a := range apps {
		if !a.Status.Terminal() {
			st.Active++
		}
		if isInterview(a.Status) {
			st.Interviews++
		}
		if a.Status == domain.StatusOffer {
			st.Offers++
		}
		if a.Status != domain.StatusNotSubmitted {
			responded++
		}
	}
	if st.Total > 0 {
		st.ResponseRate = int(math.Round(100 * float64(responded) / float64(st.Total)))
	}
	return st
}

// Transition returns a copy of apps where the application with the given id
// has the new status. Any vocabulary member is accepted regardless of the
// current status. An unknown id leaves the copy unchanged.
func Transition(apps []domain.Application, id string, status domain.Status) ([]domain.Application, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	out := make([]domain.Application, len(apps))
	copy(out, apps)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
		}
	}
	return out, nil
}

// Find returns the application with the given id
func Find(apps []domain.Application, id string) (domain.Application, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Application{}, false
}

// StageProgress marks every progress stage up to and including the current
// status. An unknown status reaches nothing.
func StageProgress(status domain.Status) []domain.StageMark {
	current := status.Index()
	marks := make([]domain.StageMark, progressStages)
	for i := 0; i < progressStages; i++ {
		marks[i] = domain.StageMark{Status: domain.StatusVocabulary[i], Reached: i <= current}
	}
	return marks
}

// Filter selects applications by "all", "active", "interviews" or an exact status
func Filter(apps []domain.Application, filter string) []domain.Application {
	out := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		var keep bool
		switch filter {
		case "", FilterAll:
			keep = true
		case FilterActive:
			keep = !a.Status.Terminal()
		case FilterInterviews:
			keep = isInterview(a.Status)
		default:
			keep = string(a.Status) == filter
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}

func appliedAt(a domain.Application) time.Time {
	t, err := time.Parse(domain.DateLayout, a.AppliedDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Sort returns a stably sorted copy: by date newest first, by company using
// English collation, or by vocabulary index. Unknown keys keep input order.
func Sort(apps []domain.Application, key string) []domain.Application {
	out := slices.Clone(apps)
	if out == nil {
		out = []domain.Application{}
	}
	switch key {
	case SortByDate:
		slices.SortStableFunc(out, func(a, b domain.Application) int {
			return appliedAt(b).Compare(appliedAt(a))
		})
	case SortByCompany:
		col := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b domain.Application) int {
			return col.CompareString(a.Company, b.Company)
		})
	case SortByStatus:
		slices.SortStableFunc(out, func(a, b domain.Application) int {
			return a.Status.Index() - b.Status.Index()
		})
	}
	return out
}

func stageLabel(s domain.Status) string {
	l := strings.Replace(string(s), "Onsite/Video ", "", 1)
	l = strings.Replace(l, "Received ", "", 1)
	return strings.Replace(l, " yet", "", 1)
}

// Pipeline counts applications per stage for the leading pipeline stages.
// Percentages are of the whole collection and zero when it is empty.
func Pipeline(apps []domain.Application) []domain.PipelineStage {
	counts := make(map[domain.Status]int, len(domain.StatusVocabulary))
	for _, a := range apps {
		counts[a.Status]++
	}
	stages := make([]domain.PipelineStage, pipelineStages)
	for i := 0; i < pipelineStages; i++ {
		s := domain.StatusVocabulary[i]
		st := domain.PipelineStage{Status: s, Label: stageLabel(s), Count: counts[s], Color: StatusColor(s)}
		if len(apps) > 0 {
			st.Percentage = 100 * float64(st.Count) / float64(len(apps))
		}
		stages[i] = st
	}
	return stages
}

// RecentActivity returns at most n applications, newest first
func RecentActivity(apps []domain.Application, n int) []domain.Application {
	sorted := Sort(apps, SortByDate)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
