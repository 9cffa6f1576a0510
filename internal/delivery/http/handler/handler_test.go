package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skill-sync-resume/internal/delivery/http/middleware"
	"skill-sync-resume/internal/domain/matching"
	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/domain/skill"
	"skill-sync-resume/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("invalid json %q: %v", string(b), err)
	}
	return resp.StatusCode, env
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func newTestApp(userID uuid.UUID, register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(middleware.CtxUserIDKey, userID)
		}
		return c.Next()
	})
	register(app)
	return app
}

type fakeResumeUsecase struct {
	profile  resume.Profile
	err      error
	upload   usecase.UploadInput
	ownerID  uuid.UUID
	rateWith int
}

func (f *fakeResumeUsecase) Upload(_ context.Context, ownerID uuid.UUID, in usecase.UploadInput) (resume.Profile, error) {
	f.ownerID = ownerID
	f.upload = in
	return f.profile, f.err
}

func (f *fakeResumeUsecase) GetProfile(_ context.Context, id uuid.UUID) (resume.Profile, error) {
	if f.err != nil {
		return resume.Profile{}, f.err
	}
	if id != f.profile.ID {
		return resume.Profile{}, resume.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeResumeUsecase) GetProfileByOwner(_ context.Context, ownerID uuid.UUID) (resume.Profile, error) {
	f.ownerID = ownerID
	return f.profile, f.err
}

func (f *fakeResumeUsecase) AssessATS(_ context.Context, _ uuid.UUID) (resume.Assessment, error) {
	if f.err != nil {
		return resume.Assessment{}, f.err
	}
	return resume.Assessment{Score: 72.5, Feedback: "ok"}, nil
}

func (f *fakeResumeUsecase) Rate(_ context.Context, _ uuid.UUID, rating int) (resume.Profile, error) {
	f.rateWith = rating
	if err := resume.ValidateRating(rating); err != nil {
		return resume.Profile{}, err
	}
	return f.profile, f.err
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/resumes/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestResumeHandler_Upload(t *testing.T) {
	userID := uuid.New()
	fake := &fakeResumeUsecase{profile: resume.Profile{
		ID:     uuid.New(),
		Skills: skill.NewSet("SQL", "Java"),
	}}
	app := newTestApp(userID, NewResumeHandler(fake, 1024).RegisterRoutes)

	status, env := doRequest(t, app, multipartUpload(t, "cv.txt", "text/plain", []byte("java and sql")))
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Message)
	}

	var out struct {
		ID     uuid.UUID `json:"id"`
		Skills []string  `json:"skills"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if out.ID != fake.profile.ID {
		t.Fatalf("unexpected id %s", out.ID)
	}
	if strings.Join(out.Skills, ",") != "Java,SQL" {
		t.Fatalf("unexpected skills %v", out.Skills)
	}
	if fake.ownerID != userID || fake.upload.Filename != "cv.txt" || string(fake.upload.Data) != "java and sql" {
		t.Fatalf("unexpected usecase input: owner=%s in=%+v", fake.ownerID, fake.upload)
	}
	if fake.upload.ContentType != "text/plain" {
		t.Fatalf("expected part content type, got %q", fake.upload.ContentType)
	}
}

func TestResumeHandler_UploadErrors(t *testing.T) {
	userID := uuid.New()

	t.Run("too large", func(t *testing.T) {
		fake := &fakeResumeUsecase{}
		app := newTestApp(userID, NewResumeHandler(fake, 4).RegisterRoutes)
		status, _ := doRequest(t, app, multipartUpload(t, "cv.txt", "text/plain", []byte("java and sql")))
		if status != fiber.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", status)
		}
	})

	t.Run("unreadable", func(t *testing.T) {
		fake := &fakeResumeUsecase{err: resume.ErrUnreadableDocument}
		app := newTestApp(userID, NewResumeHandler(fake, 1024).RegisterRoutes)
		status, _ := doRequest(t, app, multipartUpload(t, "cv.pdf", "application/pdf", []byte("junk")))
		if status != fiber.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		fake := &fakeResumeUsecase{}
		app := newTestApp(userID, NewResumeHandler(fake, 1024).RegisterRoutes)
		status, _ := doRequest(t, app, jsonRequest("POST", "/resumes/upload", `{}`))
		if status != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		fake := &fakeResumeUsecase{}
		app := newTestApp(uuid.Nil, NewResumeHandler(fake, 1024).RegisterRoutes)
		status, _ := doRequest(t, app, multipartUpload(t, "cv.txt", "text/plain", []byte("java")))
		if status != fiber.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}

func TestResumeHandler_Get(t *testing.T) {
	score := 80.0
	fake := &fakeResumeUsecase{profile: resume.Profile{ID: uuid.New(), Skills: skill.NewSet("Git"), ATSScore: &score}}
	app := newTestApp(uuid.New(), NewResumeHandler(fake, 0).RegisterRoutes)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/resumes/"+fake.profile.ID.String(), nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var out struct {
		ATSScore        *float64 `json:"ats_score"`
		RecruiterRating *int     `json:"recruiter_rating"`
		Skills          []string `json:"skills"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if out.ATSScore == nil || *out.ATSScore != 80 || out.RecruiterRating != nil {
		t.Fatalf("unexpected body %+v", out)
	}

	status, _ = doRequest(t, app, httptest.NewRequest("GET", "/resumes/"+uuid.NewString(), nil))
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	status, _ = doRequest(t, app, httptest.NewRequest("GET", "/resumes/not-a-uuid", nil))
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestResumeHandler_GetMine(t *testing.T) {
	userID := uuid.New()
	fake := &fakeResumeUsecase{err: resume.ErrNotFound}
	app := newTestApp(userID, NewResumeHandler(fake, 0).RegisterRoutes)

	status, _ := doRequest(t, app, httptest.NewRequest("GET", "/resumes/my", nil))
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if fake.ownerID != userID {
		t.Fatalf("expected lookup by caller id")
	}
}

func TestResumeHandler_AssessATS(t *testing.T) {
	fake := &fakeResumeUsecase{}
	app := newTestApp(uuid.New(), NewResumeHandler(fake, 0).RegisterRoutes)

	status, env := doRequest(t, app, httptest.NewRequest("POST", "/resumes/"+uuid.NewString()+"/ats", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"score":72.5`) {
		t.Fatalf("unexpected data %s", env.Data)
	}

	fake.err = usecase.ErrInternal
	status, env = doRequest(t, app, httptest.NewRequest("POST", "/resumes/"+uuid.NewString()+"/ats", nil))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if env.Message != "internal server error" {
		t.Fatalf("expected masked message, got %q", env.Message)
	}
}

func TestResumeHandler_Rate(t *testing.T) {
	fake := &fakeResumeUsecase{profile: resume.Profile{ID: uuid.New()}}
	app := newTestApp(uuid.New(), NewResumeHandler(fake, 0).RegisterRoutes)
	target := "/resumes/" + fake.profile.ID.String() + "/rating"

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "valid", body: `{"rating":4}`, status: fiber.StatusOK},
		{name: "too high", body: `{"rating":6}`, status: fiber.StatusBadRequest},
		{name: "zero", body: `{"rating":0}`, status: fiber.StatusBadRequest},
		{name: "missing", body: `{}`, status: fiber.StatusBadRequest},
		{name: "malformed", body: `{"rating":`, status: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doRequest(t, app, jsonRequest("PUT", target, tt.body))
			if status != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, status)
			}
		})
	}
}

type fakeMatchingUsecase struct {
	res matching.Result
	err error

	// set by CalculateMatchForResume
	gotResume *uuid.UUID
}

func (f fakeMatchingUsecase) CalculateMatch(_ context.Context, _, _ uuid.UUID) (matching.Result, error) {
	return f.res, f.err
}

func (f fakeMatchingUsecase) CalculateMatchForResume(_ context.Context, resumeID, _ uuid.UUID) (matching.Result, error) {
	if f.gotResume != nil {
		*f.gotResume = resumeID
	}
	return f.res, f.err
}

func TestMatchHandler_GetMatch(t *testing.T) {
	res := matching.Calculate(skill.NewSet("Java"), skill.NewSet("Java", "SQL"))
	app := newTestApp(uuid.New(), NewMatchHandler(fakeMatchingUsecase{res: res}).RegisterRoutes)

	status, env := doRequest(t, app, httptest.NewRequest("GET", "/jobs/"+uuid.NewString()+"/match", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var out struct {
		MatchPercentage float64  `json:"match_percentage"`
		MatchedSkills   []string `json:"matched_skills"`
		MissingSkills   []string `json:"missing_skills"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if out.MatchPercentage != 50 || len(out.MissingSkills) != 1 || out.MissingSkills[0] != "SQL" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestMatchHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "job missing", err: usecase.ErrJobNotFound, status: fiber.StatusNotFound},
		{name: "resume missing", err: resume.ErrNotFound, status: fiber.StatusNotFound},
		{name: "unexpected", err: errors.New("boom"), status: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(uuid.New(), NewMatchHandler(fakeMatchingUsecase{err: tt.err}).RegisterRoutes)
			status, _ := doRequest(t, app, httptest.NewRequest("GET", "/jobs/"+uuid.NewString()+"/match", nil))
			if status != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, status)
			}
		})
	}
}

func TestMatchHandler_GetResumeMatch(t *testing.T) {
	res := matching.Calculate(skill.NewSet("Go", "SQL"), skill.NewSet("Go", "SQL", "Kafka"))
	var got uuid.UUID
	app := newTestApp(uuid.New(), NewMatchHandler(fakeMatchingUsecase{res: res, gotResume: &got}).RegisterRoutes)

	resumeID := uuid.New()
	status, env := doRequest(t, app, httptest.NewRequest("GET", "/jobs/"+uuid.NewString()+"/match/"+resumeID.String(), nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got != resumeID {
		t.Fatalf("expected resume id %s to reach the usecase, got %s", resumeID, got)
	}
	var out struct {
		MissingSkills []string `json:"missing_skills"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if len(out.MissingSkills) != 1 || out.MissingSkills[0] != "Kafka" {
		t.Fatalf("unexpected missing %v", out.MissingSkills)
	}
}

func TestMatchHandler_GetResumeMatch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad resume id", target: "/jobs/" + uuid.NewString() + "/match/nope", status: fiber.StatusBadRequest},
		{name: "bad job id", target: "/jobs/nope/match/" + uuid.NewString(), status: fiber.StatusBadRequest},
		{name: "job missing", target: "/jobs/" + uuid.NewString() + "/match/" + uuid.NewString(), err: usecase.ErrJobNotFound, status: fiber.StatusNotFound},
		{name: "resume missing", target: "/jobs/" + uuid.NewString() + "/match/" + uuid.NewString(), err: resume.ErrNotFound, status: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(uuid.New(), NewMatchHandler(fakeMatchingUsecase{err: tt.err}).RegisterRoutes)
			status, _ := doRequest(t, app, httptest.NewRequest("GET", tt.target, nil))
			if status != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, status)
			}
		})
	}
}

func TestSkillHandler(t *testing.T) {
	app := newTestApp(uuid.New(), NewSkillHandler(usecase.NewSkillUsecase(nil)).RegisterRoutes)

	status, env := doRequest(t, app, jsonRequest("POST", "/skills/extract", `{"text":"Java developer with Spring Boot and SQL"}`))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var extracted struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(env.Data, &extracted); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if strings.Join(extracted.Skills, ",") != "Java,SQL,Spring,Spring Boot" {
		t.Fatalf("unexpected skills %v", extracted.Skills)
	}

	status, env = doRequest(t, app, jsonRequest("POST", "/skills/match", `{"candidate":["Java"],"required":["Java","SQL"]}`))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"match_percentage":50`) {
		t.Fatalf("unexpected data %s", env.Data)
	}

	status, env = doRequest(t, app, jsonRequest("POST", "/skills/match", `{"candidate":["Java"],"required":[]}`))
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"match_percentage":0`) {
		t.Fatalf("unexpected empty-requirement response %d %s", status, env.Data)
	}

	status, env = doRequest(t, app, httptest.NewRequest("GET", "/skills/vocabulary", nil))
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"Kubernetes"`) {
		t.Fatalf("unexpected vocabulary response %d %s", status, env.Data)
	}
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	down := errors.New("down")

	app := newTestApp(uuid.Nil, NewHealthHandler(
		HealthCheck{Name: "postgres", Pinger: stubPinger{}},
		HealthCheck{Name: "redis", Pinger: stubPinger{err: down}, Optional: true},
	).RegisterRoutes)
	status, env := doRequest(t, app, httptest.NewRequest("GET", "/health", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 with optional dependency down, got %d", status)
	}
	if !strings.Contains(string(env.Data), `"redis":"down"`) {
		t.Fatalf("expected redis reported down, got %s", env.Data)
	}

	app = newTestApp(uuid.Nil, NewHealthHandler(HealthCheck{Name: "postgres", Pinger: stubPinger{err: down}}).RegisterRoutes)
	status, _ = doRequest(t, app, httptest.NewRequest("GET", "/health", nil))
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}
