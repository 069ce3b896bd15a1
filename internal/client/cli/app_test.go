package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/common"
	"github.com/dmitrijs2005/freelancehub/internal/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	onlineErr  error
	offlineErr error
	pingErr    error
	session    *models.Session
	registered bool
	userType   string
	password   []byte
	loggedOut  bool
}

func (s *stubAuth) OnlineLogin(ctx context.Context, mobile string, password []byte) (*models.Session, error) {
	s.password = password
	if s.onlineErr != nil {
		return nil, s.onlineErr
	}
	return s.session, nil
}

func (s *stubAuth) OfflineLogin(ctx context.Context, mobile string) (*models.Session, error) {
	if s.offlineErr != nil {
		return nil, s.offlineErr
	}
	return s.session, nil
}

func (s *stubAuth) CheckMobile(ctx context.Context, mobile string) (bool, string, error) {
	return s.registered, s.userType, nil
}

func (s *stubAuth) Ping(ctx context.Context) error { return s.pingErr }

func (s *stubAuth) Logout(ctx context.Context) error {
	s.loggedOut = true
	return nil
}

type stubMarket struct {
	stale      bool
	counts     map[string]int
	jobs       []models.Job
	askedFor   string
	freelancer *models.Freelancer
	client     *models.Client
	job        *models.Job
}

func (s *stubMarket) CategoryCounts(ctx context.Context) (map[string]int, bool, error) {
	return s.counts, s.stale, nil
}

func (s *stubMarket) FeaturedJobs(ctx context.Context) ([]models.Job, bool, error) {
	return s.jobs, s.stale, nil
}

func (s *stubMarket) ClientJobs(ctx context.Context, clientID string) ([]models.Job, bool, error) {
	s.askedFor = clientID
	return s.jobs, s.stale, nil
}

func (s *stubMarket) RegisterFreelancer(ctx context.Context, f *models.Freelancer) error {
	s.freelancer = f
	return nil
}

func (s *stubMarket) RegisterClient(ctx context.Context, c *models.Client) error {
	s.client = c
	return nil
}

func (s *stubMarket) PostJob(ctx context.Context, j *models.Job) (string, error) {
	s.job = j
	return "JB000042", nil
}

func newTestApp(t *testing.T, input string) (*App, *stubAuth, *stubMarket, *bytes.Buffer) {
	t.Helper()

	old := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(old) })

	oldPw := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { getPassword = oldPw })

	auth := &stubAuth{}
	market := &stubMarket{}
	out := &bytes.Buffer{}
	return &App{
		authService:   auth,
		marketService: market,
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           out,
	}, auth, market, out
}

func TestLogin_Online(t *testing.T) {
	app, auth, _, out := newTestApp(t, "9876543210\n")
	auth.session = &models.Session{User: models.User{ID: "FL000001", UserType: "freelancer"}, Token: "t"}

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, ModeOnline, app.Mode())
	assert.Equal(t, "(FL000001 online)", app.getStatus())
	assert.Contains(t, out.String(), "Logged in as FL000001 (freelancer)")
	assert.Equal(t, make([]byte, len("secret")), auth.password, "password must be wiped")
}

func TestLogin_OfflineFallback(t *testing.T) {
	app, auth, _, out := newTestApp(t, "9876543210\n")
	auth.onlineErr = client.ErrUnavailable
	auth.session = &models.Session{User: models.User{ID: "CL000001", UserType: "client"}}

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, ModeOffline, app.Mode())
	assert.Contains(t, out.String(), "Logged in offline as CL000001")
}

func TestLogin_OfflineFailureDisables(t *testing.T) {
	app, auth, _, _ := newTestApp(t, "9876543210\n")
	auth.onlineErr = client.ErrUnavailable
	auth.offlineErr = client.ErrLocalDataNotAvailable

	err := app.Login(context.Background())
	assert.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, ModeDisabled, app.Mode())

	// a disabled app stays disabled until the server answers
	auth.pingErr = client.ErrUnavailable
	app.probe(context.Background())
	assert.Equal(t, ModeDisabled, app.Mode())

	auth.pingErr = nil
	app.probe(context.Background())
	assert.Equal(t, ModeOnline, app.Mode())
}

func TestLogin_RejectedOnline(t *testing.T) {
	app, auth, _, _ := newTestApp(t, "1\n")
	auth.onlineErr = &client.APIError{StatusCode: 404, Message: "User not found with this mobile number"}

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, Mode(""), app.Mode())
}

func TestLogout(t *testing.T) {
	app, auth, _, out := newTestApp(t, "")
	require.NoError(t, app.Logout(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
	assert.False(t, auth.loggedOut)

	app.setSession(&models.Session{})
	require.NoError(t, app.Logout(context.Background()))
	assert.True(t, auth.loggedOut)
	assert.False(t, app.isLoggedIn())
}

func TestHealthAndCheck(t *testing.T) {
	app, auth, _, out := newTestApp(t, "9876543210\n5555555555\n")

	require.NoError(t, app.Health(context.Background()))
	assert.Equal(t, ModeOnline, app.Mode())

	auth.pingErr = errors.New("down")
	require.Error(t, app.Health(context.Background()))
	assert.Equal(t, ModeOffline, app.Mode())

	auth.registered, auth.userType = true, "client"
	require.NoError(t, app.Check(context.Background()))
	auth.registered = false
	require.NoError(t, app.Check(context.Background()))

	assert.Contains(t, out.String(), "Registered as client")
	assert.Contains(t, out.String(), "Not registered")
}

func TestCategories_SortedWithStaleNote(t *testing.T) {
	app, _, market, out := newTestApp(t, "")
	market.counts = map[string]int{"Writing": 1, "Design": 3}
	market.stale = true

	require.NoError(t, app.Categories(context.Background()))
	s := out.String()
	assert.Contains(t, s, staleNote)
	assert.Less(t, strings.Index(s, "Design"), strings.Index(s, "Writing"))
}

func TestMyJobs_UsesClientSession(t *testing.T) {
	app, _, market, out := newTestApp(t, "CL000009\n")

	require.NoError(t, app.MyJobs(context.Background()))
	assert.Equal(t, "CL000009", market.askedFor)
	assert.Contains(t, out.String(), "No jobs")

	app.setSession(&models.Session{User: models.User{ID: "CL000001", UserType: "client"}})
	market.jobs = []models.Job{{JobID: "JB000001", Title: "Logo"}}
	require.NoError(t, app.MyJobs(context.Background()))
	assert.Equal(t, "CL000001", market.askedFor)
	assert.Contains(t, out.String(), "JB000001")
}

func TestRegisterFreelancer(t *testing.T) {
	input := strings.Join([]string{
		"FL000001", "Asha", "asha@example.com", "9876543210", "India",
		"Go, SQL", "Development",
		"panNumber=ABCDE1234F", "",
	}, "\n") + "\n"
	app, _, market, out := newTestApp(t, input)

	require.NoError(t, app.RegisterFreelancer(context.Background()))
	require.NotNil(t, market.freelancer)
	f := market.freelancer
	assert.Equal(t, "FL000001", f.UserID)
	assert.Equal(t, "9876543210", f.MobileNumber)
	assert.Equal(t, []string{"Go", "SQL"}, f.Skills)
	assert.Equal(t, []string{"Development"}, f.Categories)
	assert.Equal(t, map[string]string{"panNumber": "ABCDE1234F"}, f.Profile)
	assert.Contains(t, out.String(), "Freelancer FL000001 registered")
}

func TestRegisterClient(t *testing.T) {
	input := strings.Join([]string{
		"CL000001", "Ravi", "ravi@example.com", "9000000000", "India", "Acme", "Widgets", "",
	}, "\n") + "\n"
	app, _, market, _ := newTestApp(t, input)

	require.NoError(t, app.RegisterClient(context.Background()))
	require.NotNil(t, market.client)
	assert.Equal(t, "Acme", market.client.CompanyName)
	assert.Empty(t, market.client.Profile)
}

func TestRegister_GeneratesBlankIDs(t *testing.T) {
	input := strings.Join([]string{
		"", "Asha", "asha@example.com", "9876543210", "India", "Go", "Development", "",
	}, "\n") + "\n"
	app, _, market, out := newTestApp(t, input)

	require.NoError(t, app.RegisterFreelancer(context.Background()))
	require.NotNil(t, market.freelancer)
	assert.True(t, ids.Validate(market.freelancer.UserID, ids.Freelancer), market.freelancer.UserID)
	assert.Contains(t, out.String(), "Freelancer "+market.freelancer.UserID+" registered")

	input = strings.Join([]string{
		"", "Ravi", "ravi@example.com", "9000000000", "India", "Acme", "Widgets", "",
	}, "\n") + "\n"
	app, _, market, _ = newTestApp(t, input)

	require.NoError(t, app.RegisterClient(context.Background()))
	require.NotNil(t, market.client)
	assert.True(t, ids.Validate(market.client.UserID, ids.Client), market.client.UserID)
}

func TestRegister_RejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		action func(*App) error
	}{
		{
			name:   "freelancer with client prefix",
			input:  "CL000001\nAsha\nasha@example.com\n9876543210\nIndia\n",
			action: func(a *App) error { return a.RegisterFreelancer(context.Background()) },
		},
		{
			name:   "client with short id",
			input:  "CL01\nRavi\nravi@example.com\n9000000000\nIndia\nAcme\nWidgets\n",
			action: func(a *App) error { return a.RegisterClient(context.Background()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, market, _ := newTestApp(t, tt.input)

			err := tt.action(app)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Nil(t, market.freelancer)
			assert.Nil(t, market.client)
		})
	}
}

func TestPostJob(t *testing.T) {
	input := strings.Join([]string{
		"Logo", "Need a logo", "5000", "1 week", "Design", "Remote", "fixed", "Figma",
	}, "\n") + "\n"
	app, _, market, out := newTestApp(t, input)
	app.setSession(&models.Session{User: models.User{ID: "CL000001", UserType: "client"}})

	require.NoError(t, app.PostJob(context.Background()))
	require.NotNil(t, market.job)
	assert.Equal(t, "CL000001", market.job.ClientID)
	assert.True(t, ids.Validate(market.job.JobID, ids.Job), market.job.JobID)
	assert.Equal(t, "fixed", market.job.PaymentType)
	assert.Equal(t, []string{"Figma"}, market.job.SkillsRequired)
	assert.Contains(t, out.String(), "Job JB000042 posted")
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	app, _, _, _ := newTestApp(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
