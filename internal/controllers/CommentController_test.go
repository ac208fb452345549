package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"csd/internal/models"
	"csd/internal/services"
	"csd/internal/testutil"

	"github.com/stretchr/testify/assert"
)

// --- local mock (scoped to controller tests) ---

type mockService struct {
	show        string
	enabled     bool
	body        []byte
	bodyErr     error
	submitted   []services.Submission
	outcome     services.Outcome
	shows       []models.ShowSetting
	settingErr  error
	setCalls    []models.ShowSetting
	live        models.CommentFile
	liveErr     error
	deleteShow  string
	deleteIDs   []int
	deleteErr   error
	evictCalled bool
}

func (m *mockService) CommentsEnabled(_ context.Context) (string, bool) { return m.show, m.enabled }
func (m *mockService) CurrentComments(_ context.Context) ([]byte, error) {
	return m.body, m.bodyErr
}
func (m *mockService) LiveComments(_ context.Context) (string, models.CommentFile, error) {
	return m.show, m.live, m.liveErr
}
func (m *mockService) Submit(_ context.Context, sub services.Submission) services.Outcome {
	m.submitted = append(m.submitted, sub)
	return m.outcome
}
func (m *mockService) ListShows() []models.ShowSetting { return m.shows }
func (m *mockService) GetCommentSetting(show string) (models.ShowSetting, error) {
	if m.settingErr != nil {
		return models.ShowSetting{}, m.settingErr
	}
	return models.ShowSetting{Show: show, Comments: true}, nil
}
func (m *mockService) SetCommentSetting(show string, enabled bool) error {
	m.setCalls = append(m.setCalls, models.ShowSetting{Show: show, Comments: enabled})
	return m.settingErr
}
func (m *mockService) DeleteComments(_ context.Context, show string, ids []int) (string, error) {
	m.deleteIDs = ids
	if show == "" {
		show = m.show
	}
	m.deleteShow = show
	return show, m.deleteErr
}
func (m *mockService) EvictComments() (int, error) {
	m.evictCalled = true
	return 0, nil
}

// --- helpers ---

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// --- GetComments ---

func TestGetComments_ReturnsBody(t *testing.T) {
	svc := &mockService{body: []byte(`{"1":{"name":"rick","comment":"hi"}}`)}
	cc := NewCommentController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	cc.GetComments(rr, httptest.NewRequest(http.MethodGet, "/comments", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"1":{"name":"rick","comment":"hi"}}`, rr.Body.String())
}

func TestGetComments_Null(t *testing.T) {
	cc := NewCommentController(&testutil.MockLogger{}, &mockService{body: []byte("null")})

	rr := httptest.NewRecorder()
	cc.GetComments(rr, httptest.NewRequest(http.MethodGet, "/comments", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", rr.Body.String())
}

func TestGetComments_Error(t *testing.T) {
	cc := NewCommentController(&testutil.MockLogger{}, &mockService{bodyErr: errors.New("disk")})

	rr := httptest.NewRecorder()
	cc.GetComments(rr, httptest.NewRequest(http.MethodGet, "/comments", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- NewComment ---

func TestNewComment_Outcomes(t *testing.T) {
	tests := []struct {
		outcome services.Outcome
		status  int
		body    string
	}{
		{services.OutcomeAdded, http.StatusCreated, "comment successfully added"},
		{services.OutcomeDisabled, http.StatusForbidden, "comments currently disabled"},
		{services.OutcomeFull, http.StatusConflict, "comment section full"},
		{services.OutcomeInvalid, http.StatusBadRequest, "invalid comment"},
		{services.OutcomeError, http.StatusInternalServerError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			svc := &mockService{outcome: tt.outcome}
			cc := NewCommentController(&testutil.MockLogger{}, svc)

			rr := httptest.NewRecorder()
			cc.NewComment(rr, postForm("/new", url.Values{"name": {"rick"}, "comment": {"hi"}}))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}

func TestNewComment_PassesFields(t *testing.T) {
	svc := &mockService{outcome: services.OutcomeAdded}
	cc := NewCommentController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	cc.NewComment(rr, postForm("/new", url.Values{"name": {"rick"}, "comment": {"great <b>set</b>"}}))

	if assert.Len(t, svc.submitted, 1) {
		assert.Equal(t, services.Submission{Name: "rick", Comment: "great <b>set</b>"}, svc.submitted[0])
	}
}

func TestNewComment_ReportsMissingFields(t *testing.T) {
	svc := &mockService{outcome: services.OutcomeInvalid}
	cc := NewCommentController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	cc.NewComment(rr, postForm("/new", url.Values{"name": {""}}))

	if assert.Len(t, svc.submitted, 1) {
		assert.Equal(t, []string{"comment"}, svc.submitted[0].Missing)
	}
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNewComment_BodyTooLarge(t *testing.T) {
	svc := &mockService{outcome: services.OutcomeAdded}
	cc := NewCommentController(&testutil.MockLogger{}, svc)

	big := url.Values{"name": {"rick"}, "comment": {strings.Repeat("a", maxRequestBodySize+1)}}
	rr := httptest.NewRecorder()
	cc.NewComment(rr, postForm("/new", big))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.submitted)
}
