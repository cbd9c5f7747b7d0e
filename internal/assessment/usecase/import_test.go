package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"assessment-planner/internal/assessment"
	"assessment-planner/internal/assessment/usecase"
	"assessment-planner/internal/model"
	"assessment-planner/pkg/datemath"
	"assessment-planner/pkg/openrouter"
	"assessment-planner/pkg/studycal"
)

// mockLogger is a no-op logger for tests.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any) {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any) {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Warn(ctx context.Context, args ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Error(ctx context.Context, args ...any) {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any) {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any) {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any) {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any) {}

// mockLLM returns a canned reply (or error) and records the last request.
type mockLLM struct {
	reply   string
	err     error
	lastReq *openrouter.Request
}

func (m *mockLLM) ChatCompletion(ctx context.Context, req *openrouter.Request) (*openrouter.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &openrouter.Response{
		Choices: []openrouter.Choice{
			{Message: openrouter.Message{Role: "assistant", Content: m.reply}},
		},
	}, nil
}

func (m *mockLLM) Model() string { return "test-model" }

// mockRepo is an in-memory Repository.
type mockRepo struct {
	subjects      []string
	subjectsErr   error
	recentCalls   int
	created       []model.Assessment
	createdTasks  []model.AssessmentTask
	createErr     error
	createTaskErr error
}

func (m *mockRepo) CreateAssessment(ctx context.Context, a model.Assessment) (model.Assessment, error) {
	if m.createErr != nil {
		return model.Assessment{}, m.createErr
	}
	a.ID = "assessment-1"
	a.CreatedAt = time.Now()
	m.created = append(m.created, a)
	return a, nil
}

func (m *mockRepo) CreateTasks(ctx context.Context, tasks []model.AssessmentTask) ([]model.AssessmentTask, error) {
	if m.createTaskErr != nil {
		return nil, m.createTaskErr
	}
	for i := range tasks {
		tasks[i].ID = "task-1"
		tasks[i].Position = i
	}
	m.createdTasks = append(m.createdTasks, tasks...)
	return tasks, nil
}

func (m *mockRepo) RecentSubjects(ctx context.Context, userID string, limit int) ([]string, error) {
	m.recentCalls++
	if m.subjectsErr != nil {
		return nil, m.subjectsErr
	}
	return m.subjects, nil
}

// mockScheduler records booking requests.
type mockScheduler struct {
	err  error
	last studycal.BookSessionRequest
}

func (m *mockScheduler) BookSession(ctx context.Context, req studycal.BookSessionRequest) (*studycal.Session, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &studycal.Session{ID: "session-1", HTMLLink: "https://calendar.example/session-1"}, nil
}

// testClock anchors all relative dates at Monday 2026-08-24.
func testClock() time.Time {
	return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
}

func newTestUseCase(t *testing.T, llm openrouter.IOpenRouter, repo *mockRepo, sched studycal.Scheduler) assessment.UseCase {
	t.Helper()
	dm, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return usecase.New(&mockLogger{}, llm, repo, sched, dm, "UTC", testClock)
}

func testScope() model.Scope {
	return model.Scope{UserID: "user-1"}
}

const validReply = `{
  "assessments": [
    {
      "title": "Math homework",
      "subject": "Math",
      "due_date": "2026-08-28",
      "description": "Chapter 5 exercises",
      "tasks": [
        {"title": "Do exercises", "description": "Problems 1-20"},
        {"title": "Check answers"}
      ]
    }
  ],
  "confidence": 0.9,
  "clarifications_needed": [],
  "context_used": "recent subjects"
}`

func TestImportFromText_EmptyInput(t *testing.T) {
	uc := newTestUseCase(t, &mockLLM{reply: validReply}, &mockRepo{}, nil)

	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: text, AllowFallback: true})
		if !errors.Is(err, assessment.ErrEmptyInput) {
			t.Errorf("input %q: expected ErrEmptyInput, got %v", text, err)
		}
	}
}

func TestImportFromText_Success(t *testing.T) {
	llm := &mockLLM{reply: validReply}
	uc := newTestUseCase(t, llm, &mockRepo{}, nil)

	out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "Math homework due Friday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.UsedFallback {
		t.Error("expected UsedFallback=false")
	}
	if out.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", out.Confidence)
	}
	if len(out.Assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(out.Assessments))
	}

	a := out.Assessments[0]
	if a.Title != "Math homework" || a.Subject != "Math" || a.DueDate != "2026-08-28" {
		t.Errorf("unexpected assessment: %+v", a)
	}
	if len(a.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(a.Tasks))
	}
}

func TestImportFromText_FencedReply(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"JSON fence", "```json\n" + validReply + "\n```"},
		{"Bare fence", "```\n" + validReply + "\n```"},
		{"Surrounding prose", "Here is the extraction:\n" + validReply + "\nHope that helps!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUseCase(t, &mockLLM{reply: tc.reply}, &mockRepo{}, nil)

			out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "Math homework"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Assessments) != 1 || out.Assessments[0].Title != "Math homework" {
				t.Errorf("unexpected output: %+v", out)
			}
		})
	}
}

func TestImportFromText_ConfidenceDefaultsWhenOmitted(t *testing.T) {
	reply := `{"assessments": [{"title": "Essay", "tasks": [{"title": "Write draft"}]}]}`
	uc := newTestUseCase(t, &mockLLM{reply: reply}, &mockRepo{}, nil)

	out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "essay"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Confidence != 0.5 {
		t.Errorf("expected default confidence 0.5, got %v", out.Confidence)
	}
	if out.Clarifications == nil {
		t.Error("expected non-nil clarifications slice")
	}
}

func TestImportFromText_FiltersBadCandidates(t *testing.T) {
	reply := `{
	  "assessments": [
	    {"title": "", "tasks": [{"title": "orphan"}]},
	    {"title": "No tasks field"},
	    {"title": "Tasks not array", "tasks": "do stuff"},
	    {"title": "Tasks null", "tasks": null},
	    {"title": "  Good one  ", "subject": " Science ", "tasks": [{"title": " Research "}, {"title": "  "}]}
	  ],
	  "confidence": 0.7
	}`
	uc := newTestUseCase(t, &mockLLM{reply: reply}, &mockRepo{}, nil)

	out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "several things"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Assessments) != 1 {
		t.Fatalf("expected 1 surviving assessment, got %d", len(out.Assessments))
	}

	a := out.Assessments[0]
	if a.Title != "Good one" || a.Subject != "Science" {
		t.Errorf("fields not trimmed: %+v", a)
	}
	if len(a.Tasks) != 1 || a.Tasks[0].Title != "Research" {
		t.Errorf("empty-title task should be dropped: %+v", a.Tasks)
	}
}

func TestImportFromText_FallbackGate(t *testing.T) {
	t.Run("Disallowed fallback propagates error", func(t *testing.T) {
		llm := &mockLLM{err: errors.New("upstream down")}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		_, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "some text"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !assessment.IsExtractionError(err) {
			t.Errorf("expected ExtractionError, got %v", err)
		}
	})

	t.Run("Allowed fallback synthesizes one assessment", func(t *testing.T) {
		llm := &mockLLM{err: errors.New("upstream down")}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "Biology exam prep\nchapters 1-3", AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.UsedFallback {
			t.Error("expected UsedFallback=true")
		}
		if out.Confidence != 0.1 {
			t.Errorf("expected fallback confidence 0.1, got %v", out.Confidence)
		}
		if len(out.Assessments) != 1 {
			t.Fatalf("expected 1 assessment, got %d", len(out.Assessments))
		}

		fb := out.Assessments[0]
		if fb.Title != "Biology exam prep" {
			t.Errorf("expected first line as title, got %q", fb.Title)
		}
		if fb.Subject != "General" {
			t.Errorf("expected subject General, got %q", fb.Subject)
		}
		if len(fb.Tasks) != 3 {
			t.Errorf("expected exactly 3 generic tasks, got %d", len(fb.Tasks))
		}
	})

	t.Run("Invalid JSON reply falls back", func(t *testing.T) {
		llm := &mockLLM{reply: "I could not find any assessments in that text, sorry."}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "gibberish", AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.UsedFallback {
			t.Error("expected fallback on unparseable reply")
		}
	})

	t.Run("Missing assessments array falls back", func(t *testing.T) {
		llm := &mockLLM{reply: `{"confidence": 0.8}`}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "text", AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.UsedFallback {
			t.Error("expected fallback on contract violation")
		}
	})

	t.Run("Only null-tasks candidates falls back", func(t *testing.T) {
		llm := &mockLLM{reply: `{"assessments": [{"title": "Essay", "tasks": null}]}`}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "essay", AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.UsedFallback {
			t.Error("expected fallback when no candidate carries a task array")
		}
	})

	t.Run("Nothing survives validation without fallback", func(t *testing.T) {
		llm := &mockLLM{reply: `{"assessments": [{"title": ""}]}`}
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)

		_, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "text"})
		if !errors.Is(err, assessment.ErrNoAssessmentsExtracted) {
			t.Errorf("expected ErrNoAssessmentsExtracted, got %v", err)
		}
	})
}

func TestImportFromText_FallbackTitleTruncation(t *testing.T) {
	llm := &mockLLM{err: errors.New("upstream down")}

	t.Run("Long first line truncated to 50 chars", func(t *testing.T) {
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)
		line := strings.Repeat("a", 51)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: line, AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		title := out.Assessments[0].Title
		if len(title) != 50 {
			t.Errorf("expected 50-char title, got %d chars", len(title))
		}
		if !strings.HasSuffix(title, "...") {
			t.Errorf("expected ellipsis suffix, got %q", title)
		}
	})

	t.Run("Exactly 50 chars kept as-is", func(t *testing.T) {
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)
		line := strings.Repeat("b", 50)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: line, AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Assessments[0].Title != line {
			t.Errorf("50-char title should be unchanged, got %q", out.Assessments[0].Title)
		}
	})

	t.Run("Multibyte first line truncated by runes", func(t *testing.T) {
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)
		line := strings.Repeat("é", 51)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: line, AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		title := out.Assessments[0].Title
		if !utf8.ValidString(title) {
			t.Fatalf("truncation must not split a rune: %q", title)
		}
		if got := utf8.RuneCountInString(title); got != 50 {
			t.Errorf("expected 50 runes, got %d", got)
		}
		if !strings.HasPrefix(title, strings.Repeat("é", 47)) || !strings.HasSuffix(title, "...") {
			t.Errorf("expected 47 runes plus ellipsis, got %q", title)
		}
	})

	t.Run("Huge input truncates description", func(t *testing.T) {
		uc := newTestUseCase(t, llm, &mockRepo{}, nil)
		text := strings.Repeat("x", 10000)

		out, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: text, AllowFallback: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		desc := out.Assessments[0].Description
		if len(desc) != 203 {
			t.Errorf("expected 200 chars plus ellipsis, got %d chars", len(desc))
		}
	})
}

func TestImportFromText_PromptCarriesContext(t *testing.T) {
	llm := &mockLLM{reply: validReply}
	repo := &mockRepo{subjects: []string{"Math", "Science"}}
	uc := newTestUseCase(t, llm, repo, nil)

	_, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "homework"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if llm.lastReq == nil || len(llm.lastReq.Messages) != 2 {
		t.Fatalf("expected system + user message, got %+v", llm.lastReq)
	}
	if llm.lastReq.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", llm.lastReq.Temperature)
	}

	userMsg := llm.lastReq.Messages[1].Content
	if !strings.Contains(userMsg, "Math, Science") {
		t.Error("prompt should list recent subjects")
	}
	if !strings.Contains(userMsg, "Today's date: 2026-08-24 (Monday)") {
		t.Error("prompt should carry the anchored date with weekday")
	}
	if !strings.Contains(userMsg, "homework") {
		t.Error("prompt should embed the raw input text")
	}
}

func TestImportFromText_ContextCachingAndDegradation(t *testing.T) {
	t.Run("Second import hits the cache", func(t *testing.T) {
		llm := &mockLLM{reply: validReply}
		repo := &mockRepo{subjects: []string{"History"}}
		uc := newTestUseCase(t, llm, repo, nil)

		for i := 0; i < 2; i++ {
			if _, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "homework"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if repo.recentCalls != 1 {
			t.Errorf("expected 1 repository lookup, got %d", repo.recentCalls)
		}
	})

	t.Run("Lookup failure degrades to defaults", func(t *testing.T) {
		llm := &mockLLM{reply: validReply}
		repo := &mockRepo{subjectsErr: errors.New("db down")}
		uc := newTestUseCase(t, llm, repo, nil)

		_, err := uc.ImportFromText(context.Background(), testScope(), assessment.ImportInput{RawText: "homework"})
		if err != nil {
			t.Fatalf("context failure must not break import: %v", err)
		}
		if !strings.Contains(llm.lastReq.Messages[1].Content, "Recent subjects: None") {
			t.Error("prompt should show None when history is unavailable")
		}
	})
}
