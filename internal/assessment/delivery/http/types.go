package http

import "assessment-planner/internal/assessment"

// importRequest is the body of the import endpoint.
// The upstream auth layer identifies the user; only the text comes from the client.
type importRequest struct {
	Text        string `json:"text"`
	UseFallback bool   `json:"use_fallback"`
}

// savedAssessmentResp is one persisted assessment in the import response.
type savedAssessmentResp struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Subject      string          `json:"subject"`
	Description  string          `json:"description,omitempty"`
	DueDate      string          `json:"due_date"`
	Tasks        []savedTaskResp `json:"tasks"`
	CalendarLink string          `json:"calendar_link,omitempty"`
}

type savedTaskResp struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// importResponse is the payload of a successful import.
type importResponse struct {
	Assessments    []savedAssessmentResp `json:"assessments"`
	Skipped        int                   `json:"skipped"`
	UsedFallback   bool                  `json:"used_fallback"`
	Confidence     float64               `json:"confidence"`
	Clarifications []string              `json:"clarifications_needed"`
	ContextUsed    string                `json:"context_used,omitempty"`
}

func newImportResponse(out assessment.ImportOutput, saved assessment.SaveOutput) importResponse {
	resp := importResponse{
		Assessments:    make([]savedAssessmentResp, 0, len(saved.Saved)),
		Skipped:        saved.Skipped,
		UsedFallback:   out.UsedFallback,
		Confidence:     out.Confidence,
		Clarifications: out.Clarifications,
		ContextUsed:    out.ContextUsed,
	}
	if resp.Clarifications == nil {
		resp.Clarifications = []string{}
	}

	for _, s := range saved.Saved {
		tasks := make([]savedTaskResp, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			tasks = append(tasks, savedTaskResp{ID: t.ID, Title: t.Title, Description: t.Description})
		}
		resp.Assessments = append(resp.Assessments, savedAssessmentResp{
			ID:           s.Assessment.ID,
			Title:        s.Assessment.Title,
			Subject:      s.Assessment.Subject,
			Description:  s.Assessment.Description,
			DueDate:      s.Assessment.DueDate.Format("2006-01-02"),
			Tasks:        tasks,
			CalendarLink: s.CalendarLink,
		})
	}

	return resp
}
