package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/egliseduberger/website/internal/auth/middleware"
	"github.com/egliseduberger/website/internal/auth/session"
	"github.com/egliseduberger/website/internal/models"
	"github.com/egliseduberger/website/internal/services"
	"github.com/egliseduberger/website/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errDatabase = errors.New("database unavailable")

// memoryContent is an in-memory ContentRepository
type memoryContent[T any, I any] struct {
	records map[int]*T
	nextID  int
	build   func(id int, input *I) *T
	err     error
	creates int
}

func newMemoryContent[T any, I any](build func(id int, input *I) *T) *memoryContent[T, I] {
	return &memoryContent[T, I]{records: map[int]*T{}, build: build}
}

func (m *memoryContent[T, I]) GetByID(ctx context.Context, id int) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return record, nil
}

func (m *memoryContent[T, I]) Create(ctx context.Context, input *I) (int, error) {
	m.creates++
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	m.records[m.nextID] = m.build(m.nextID, input)
	return m.nextID, nil
}

func (m *memoryContent[T, I]) Update(ctx context.Context, id int, input *I) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[id]; ok {
		m.records[id] = m.build(id, input)
	}
	return nil
}

func (m *memoryContent[T, I]) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	delete(m.records, id)
	return nil
}

func (m *memoryContent[T, I]) List(ctx context.Context) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]int, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	list := make([]T, 0, len(ids))
	for _, id := range ids {
		list = append(list, *m.records[id])
	}
	return list, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func newSermons() *memoryContent[models.Sermon, models.SermonInput] {
	return newMemoryContent(func(id int, in *models.SermonInput) *models.Sermon {
		preached, _ := time.Parse("2006-01-02", in.DatePreached)
		return &models.Sermon{
			ID: id, Title: in.Title, Preacher: in.Preacher, Series: in.Series, VideoURL: in.VideoURL,
			AudioURL: in.AudioURL, DatePreached: preached, Description: in.Description,
			Duration: in.Duration, Category: in.Category,
		}
	})
}

func newTeam() *memoryContent[models.TeamMember, models.TeamMemberInput] {
	return newMemoryContent(func(id int, in *models.TeamMemberInput) *models.TeamMember {
		return &models.TeamMember{ID: id, Name: in.Name, Role: in.Role, Bio: in.Bio, ImageURL: in.ImageURL, DisplayOrder: atoi(in.DisplayOrder)}
	})
}

func newValues() *memoryContent[models.ChurchValue, models.ChurchValueInput] {
	return newMemoryContent(func(id int, in *models.ChurchValueInput) *models.ChurchValue {
		return &models.ChurchValue{ID: id, Title: in.Title, Description: in.Description, Icon: in.Icon, DisplayOrder: atoi(in.DisplayOrder)}
	})
}

func newMinistries() *memoryContent[models.Ministry, models.MinistryInput] {
	return newMemoryContent(func(id int, in *models.MinistryInput) *models.Ministry {
		return &models.Ministry{ID: id, Name: in.Name, ShortDescription: in.ShortDescription, Description: in.Description, ImageURL: in.ImageURL, Schedule: in.Schedule}
	})
}

func newEvents() *memoryContent[models.Event, models.EventInput] {
	return newMemoryContent(func(id int, in *models.EventInput) *models.Event {
		date, _ := time.Parse("2006-01-02T15:04", in.DateEvent)
		return &models.Event{ID: id, Title: in.Title, DateEvent: date, Description: in.Description, Location: in.Location, Category: in.Category, ImageURL: in.ImageURL}
	})
}

func newFAQs() *memoryContent[models.FAQ, models.FAQInput] {
	return newMemoryContent(func(id int, in *models.FAQInput) *models.FAQ {
		return &models.FAQ{ID: id, Question: in.Question, Answer: in.Answer, DisplayOrder: atoi(in.DisplayOrder)}
	})
}

// fakeSermonService serves sermon records from memory and a canned listing
type fakeSermonService struct {
	*memoryContent[models.Sermon, models.SermonInput]
	listing     *models.SermonListing
	listErr     error
	gotPage     int
	gotCategory string
}

func (f *fakeSermonService) PlanListing(ctx context.Context, page int, category string) (*models.SermonListing, error) {
	f.gotPage, f.gotCategory = page, category
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listing != nil {
		return f.listing, nil
	}
	return &models.SermonListing{Items: []models.Sermon{}, TotalPages: 1}, nil
}

func (f *fakeSermonService) Latest(ctx context.Context) (*models.Sermon, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listing == nil {
		return nil, nil
	}
	return f.listing.Featured, nil
}

// fakeHouseGroups is a canned HouseGroupLister
type fakeHouseGroups struct {
	groups []models.HouseGroup
	err    error
}

func (f *fakeHouseGroups) List(ctx context.Context) ([]models.HouseGroup, error) {
	return f.groups, f.err
}

// fakeFooter is a canned MinistryNamesLister
type fakeFooter struct {
	ministries []models.Ministry
	err        error
	limit      int
}

func (f *fakeFooter) ListNames(ctx context.Context, limit int) ([]models.Ministry, error) {
	f.limit = limit
	return f.ministries, f.err
}

// fakeHomeEvents is a canned UpcomingEventsLister and MinistryPreviewLister
type fakeHomeEvents struct {
	events     []models.Event
	ministries []models.Ministry
	err        error
}

func (f *fakeHomeEvents) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return f.events, f.err
}

func (f *fakeHomeEvents) ListLimited(ctx context.Context, limit int) ([]models.Ministry, error) {
	return f.ministries, f.err
}

// fakeAuthService accepts a single username and password pair
type fakeAuthService struct {
	user     *models.User
	password string
	err      error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || username != f.user.Username || password != f.password {
		return nil, services.ErrInvalidCredentials
	}
	return f.user, nil
}

// fakeContactService keeps messages in memory
type fakeContactService struct {
	messages  map[int]*models.ContactMessage
	submitted []models.ContactMessageInput
	err       error
}

func newFakeContactService() *fakeContactService {
	return &fakeContactService{messages: map[int]*models.ContactMessage{}}
}

func (f *fakeContactService) Submit(ctx context.Context, input *models.ContactMessageInput) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.submitted = append(f.submitted, *input)
	id := len(f.submitted)
	f.messages[id] = &models.ContactMessage{
		ID: id, FirstName: input.FirstName, LastName: input.LastName, Email: input.Email,
		Subject: input.Subject, Message: input.Message, CreatedAt: time.Date(2024, 8, 4, 10, 0, 0, 0, time.UTC),
	}
	return id, nil
}

func (f *fakeContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := []models.ContactMessage{}
	for id := len(f.submitted); id > 0; id-- {
		if m, ok := f.messages[id]; ok {
			list = append(list, *m)
		}
	}
	return list, nil
}

func (f *fakeContactService) Open(ctx context.Context, id int) (*models.ContactMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.messages[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	m.Read = true
	return m, nil
}

func (f *fakeContactService) ToggleRead(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	if m, ok := f.messages[id]; ok {
		m.Read = !m.Read
	}
	return nil
}

func (f *fakeContactService) Delete(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	delete(f.messages, id)
	return nil
}

// testSite is a router wired like the server, backed by in-memory fakes
type testSite struct {
	router     http.Handler
	manager    *session.Manager
	store      *session.MemoryStore
	auth       *fakeAuthService
	sermons    *fakeSermonService
	team       *memoryContent[models.TeamMember, models.TeamMemberInput]
	values     *memoryContent[models.ChurchValue, models.ChurchValueInput]
	ministries *memoryContent[models.Ministry, models.MinistryInput]
	groups     *fakeHouseGroups
	events     *memoryContent[models.Event, models.EventInput]
	home       *fakeHomeEvents
	faqs       *memoryContent[models.FAQ, models.FAQInput]
	contact    *fakeContactService
	footer     *fakeFooter
}

const adminPassword = "Password123!"

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	renderer, err := views.NewTemplateRenderer()
	require.NoError(t, err)
	logger := zap.NewNop()

	store := session.NewMemoryStore()
	s := &testSite{
		manager: session.NewManager(store, session.NewCookieSigner("test-secret"), time.Hour, false),
		store:   store,
		auth: &fakeAuthService{
			user:     &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin},
			password: adminPassword,
		},
		sermons:    &fakeSermonService{memoryContent: newSermons()},
		team:       newTeam(),
		values:     newValues(),
		ministries: newMinistries(),
		groups:     &fakeHouseGroups{groups: []models.HouseGroup{{ID: 1, Name: "Limoilou"}}},
		events:     newEvents(),
		home:       &fakeHomeEvents{},
		faqs:       newFAQs(),
		contact:    newFakeContactService(),
		footer:     &fakeFooter{},
	}

	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(s.manager, logger))
	r.Use(FooterMiddleware(s.footer, logger))

	homeHandler := NewHomeHandler(s.home, s.home, s.sermons, renderer, logger)
	homeHandler.RegisterRoutes(r)
	r.NotFound(homeHandler.NotFound)
	NewAuthHandler(s.auth, s.manager, renderer, logger).RegisterRoutes(r, nil)
	NewAboutHandler(s.team, s.values, renderer, logger).RegisterRoutes(r)
	NewMinistryHandler(s.ministries, s.groups, renderer, logger).RegisterRoutes(r)
	NewMediaHandler(s.sermons, renderer, logger).RegisterRoutes(r)
	NewEventHandler(s.events, renderer, logger).RegisterRoutes(r)
	NewContactHandler(s.faqs, s.contact, renderer, logger).RegisterRoutes(r)

	s.router = r
	return s
}

// do sends a request through the router; a non-nil form is sent form-encoded
func (s *testSite) do(t *testing.T, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login signs the administrator in and returns the session cookie
func (s *testSite) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", url.Values{"username": {"admin"}, "password": {adminPassword}})
	require.Equal(t, http.StatusFound, rec.Code)
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", session.CookieName)
	return nil
}
