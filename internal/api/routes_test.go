package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"combatbible/gymdesk/internal/api"
	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
	"combatbible/gymdesk/internal/repository/memory"
	"combatbible/gymdesk/internal/repository/seed"
	"combatbible/gymdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const secret = "test-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ws := lesson.NewWorkspace()
	lib, err := service.NewLibraryService(context.Background(), memory.NewTechniqueRepository(seed.Packs()), seed.DefaultGymID, combo.StaticGenerator{Count: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	roster := service.NewRosterService(memory.NewKlassRepository(seed.Klasses()))
	router := gin.New()
	api.SetupRoutes(router, secret, api.Services{
		Auth:       service.NewAuthService("Test Gym", secret, time.Hour),
		Library:    lib,
		Roster:     roster,
		Lessons:    service.NewLessonService(roster, lib, ws),
		Compliance: service.NewComplianceService(roster, ws),
		Workspace:  ws,
	})
	return router
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, role domain.Role) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"role": role})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", role, w.Code, w.Body.String())
	}
	var resp api.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.Token
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) api.StateResponse {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var s api.StateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLogin(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{name: "coach", body: gin.H{"role": "coach"}, want: http.StatusOK},
		{name: "named student", body: gin.H{"role": "student", "name": "Ana"}, want: http.StatusOK},
		{name: "missing role", body: gin.H{"name": "Ana"}, want: http.StatusBadRequest},
		{name: "unknown role", body: gin.H{"role": "janitor"}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPost, "/api/v1/auth/login", "", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAuthAndRoles(t *testing.T) {
	r := newRouter(t)
	student := login(t, r, domain.RoleStudent)
	coach := login(t, r, domain.RoleCoach)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "no token", method: http.MethodGet, path: "/api/v1/me", want: http.StatusUnauthorized},
		{name: "garbage token", method: http.MethodGet, path: "/api/v1/me", token: "abc", want: http.StatusUnauthorized},
		{name: "me", method: http.MethodGet, path: "/api/v1/me", token: student, want: http.StatusOK},
		{name: "student cannot plan", method: http.MethodPost, path: "/api/v1/lesson/submit", token: student, want: http.StatusForbidden},
		{name: "coach cannot rate", method: http.MethodGet, path: "/api/v1/student/classes?date=2024-03-04", token: coach, want: http.StatusForbidden},
		{name: "coach cannot read compliance", method: http.MethodGet, path: "/api/v1/admin/compliance", token: coach, want: http.StatusForbidden},
		{name: "anyone reads the library", method: http.MethodGet, path: "/api/v1/library", token: student, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, tt.method, tt.path, tt.token, nil); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestLessonLifecycleOverHTTP(t *testing.T) {
	r := newRouter(t)
	coach := login(t, r, domain.RoleCoach)
	student := login(t, r, domain.RoleStudent)
	admin := login(t, r, domain.RoleAdmin)

	s := decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/select", coach, gin.H{"classId": "k1", "date": "2024-03-04"}))
	if s.Status != lesson.StatusPlanning || s.Class == nil || s.Class.ID != "k1" {
		t.Fatalf("select = %+v", s)
	}

	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/submit", coach, nil))
	if s.Status != lesson.StatusPlanning {
		t.Errorf("empty submit = %s, want planning", s.Status)
	}

	decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/items", coach, gin.H{"packId": "tp1"}))
	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/items", coach, gin.H{"packId": "tp_private_1"}))
	if len(s.Items) != 2 || s.Items[0].Title != "Boxing Basics" || s.Items[0].Sets != domain.DefaultSets {
		t.Fatalf("items = %+v", s.Items)
	}

	s = decodeState(t, do(t, r, http.MethodPatch, "/api/v1/lesson/items/tp1", coach, gin.H{"reps": "20"}))
	if s.Items[0].Reps != "20" {
		t.Errorf("reps = %q", s.Items[0].Reps)
	}
	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/items/tp1/actions/a1/toggle", coach, nil))
	if len(s.Items[0].SelectedActionIDs) != 1 {
		t.Errorf("actions = %v", s.Items[0].SelectedActionIDs)
	}

	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/submit", coach, nil))
	if s.Status != lesson.StatusReviewing {
		t.Fatalf("submit = %s, want reviewing", s.Status)
	}
	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/confirm", coach, nil))
	if s.Status != lesson.StatusOngoing || s.Role != domain.RoleCoach {
		t.Fatalf("confirm = %+v", s)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/coach/plans/k1/2024-03-04", coach, nil); w.Code != http.StatusOK {
		t.Errorf("saved plan status = %d", w.Code)
	}

	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/lesson/end", coach, nil))
	if s.Status != lesson.StatusNone || s.Class != nil {
		t.Fatalf("end = %+v, want none without a class", s)
	}

	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/student/classes/k1/open", student, gin.H{"date": "2024-03-04"}))
	if s.Status != lesson.StatusOngoing || s.Role != domain.RoleStudent || len(s.Items) != 2 {
		t.Fatalf("open = %+v", s)
	}

	w := do(t, r, http.MethodPost, "/api/v1/student/feedback", student, gin.H{"taught": gin.H{"tp1": true}, "intensity": 3, "experience": 3})
	if w.Code != http.StatusBadRequest {
		t.Errorf("incomplete feedback status = %d", w.Code)
	}

	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/student/feedback", student, gin.H{
		"taught":     gin.H{"tp1": true, "tp_private_1": false},
		"intensity":  4,
		"experience": 5,
	}))
	if s.Status != lesson.StatusCompleted || s.Report == nil || s.Report.Compliant {
		t.Fatalf("feedback = %+v", s)
	}
	s = decodeState(t, do(t, r, http.MethodPost, "/api/v1/student/report/dismiss", student, nil))
	if s.Status != lesson.StatusNone {
		t.Errorf("dismiss = %s", s.Status)
	}

	w = do(t, r, http.MethodGet, "/api/v1/admin/deviations", admin, nil)
	var feed []domain.DeviationRecord
	if err := json.Unmarshal(w.Body.Bytes(), &feed); err != nil {
		t.Fatal(err)
	}
	if len(feed) != 1 || feed[0].PackTitle != "Gym Clinch" || feed[0].Coach != "Coach Mike" {
		t.Errorf("feed = %+v", feed)
	}

	w = do(t, r, http.MethodGet, "/api/v1/admin/compliance", admin, nil)
	var sum service.ComplianceSummary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.DeviationCount != 1 || sum.ComplianceRate != 96 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestLibraryEditing(t *testing.T) {
	r := newRouter(t)
	coach := login(t, r, domain.RoleCoach)
	student := login(t, r, domain.RoleStudent)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{name: "official pack is read-only", method: http.MethodPut, path: "/api/v1/library/tp1", token: coach, body: gin.H{"title": "Mine now"}, want: http.StatusForbidden},
		{name: "missing pack", method: http.MethodDelete, path: "/api/v1/library/nope", token: coach, want: http.StatusNotFound},
		{name: "student cannot edit", method: http.MethodPost, path: "/api/v1/library", token: student, body: gin.H{"title": "X"}, want: http.StatusForbidden},
		{name: "create private", method: http.MethodPost, path: "/api/v1/library", token: coach, body: gin.H{"title": "Sweeps", "category": "Clinch"}, want: http.StatusCreated},
		{name: "create without title", method: http.MethodPost, path: "/api/v1/library", token: coach, body: gin.H{"category": "Clinch"}, want: http.StatusBadRequest},
		{name: "one base pack", method: http.MethodPost, path: "/api/v1/library/combos/generate", token: coach, body: gin.H{"packIds": []string{"tp1"}}, want: http.StatusBadRequest},
		{name: "generate", method: http.MethodPost, path: "/api/v1/library/combos/generate", token: coach, body: gin.H{"packIds": []string{"tp1", "tp_private_1"}}, want: http.StatusOK},
		{name: "upload without storage", method: http.MethodPost, path: "/api/v1/library/tp_private_1/videos", token: coach, body: gin.H{"level": "l1", "contentType": "video/mp4"}, want: http.StatusServiceUnavailable},
		{name: "categories", method: http.MethodGet, path: "/api/v1/library/categories", token: student, want: http.StatusOK},
		{name: "get pack", method: http.MethodGet, path: "/api/v1/library/tp1", token: student, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, tt.method, tt.path, tt.token, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRosterAdmin(t *testing.T) {
	r := newRouter(t)
	admin := login(t, r, domain.RoleAdmin)

	w := do(t, r, http.MethodPost, "/api/v1/admin/classes", admin, gin.H{"name": "No days", "startTime": "07:00", "endTime": "08:00", "days": []int{}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty days status = %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/v1/admin/classes", admin, gin.H{"name": "Dawn Patrol", "startTime": "06:00", "endTime": "07:00", "days": []int{1}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created domain.Klass
	json.Unmarshal(w.Body.Bytes(), &created)

	w = do(t, r, http.MethodGet, "/api/v1/classes?day=1", admin, nil)
	var monday []domain.Klass
	json.Unmarshal(w.Body.Bytes(), &monday)
	if len(monday) != 3 || monday[0].ID != created.ID {
		t.Errorf("monday = %+v", monday)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/classes?day=9", admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad day status = %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/v1/admin/classes/"+created.ID, admin, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/v1/admin/classes/"+created.ID, admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}
