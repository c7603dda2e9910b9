package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gigline/internal/client/models"
)

func stubInputs(t *testing.T, texts []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAuth struct {
	// Register
	regEmail string
	regPass  string
	regRole  models.Role
	regErr   error

	// Login
	loginEmail string
	loginPass  string
	loginAcc   *models.Account
	loginErr   error

	// Logout
	logoutCalled bool
	logoutErr    error

	// Me
	meAcc *models.Account
	meErr error

	authed  bool
	pingErr error
	pingFn  func(ctx context.Context) error
}

func (f *fakeAuth) Register(_ context.Context, email, password string, role models.Role) error {
	f.regEmail, f.regPass, f.regRole = email, password, role
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.Account, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr == nil {
		f.authed = true
	}
	return f.loginAcc, f.loginErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	f.authed = false
	return f.logoutErr
}
func (f *fakeAuth) Me(context.Context) (*models.Account, error) { return f.meAcc, f.meErr }
func (f *fakeAuth) Ping(ctx context.Context) error {
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return f.pingErr
}
func (f *fakeAuth) IsAuthenticated() bool { return f.authed }

type fakeJobs struct {
	listFilter models.JobFilter
	listItems  []models.Job
	listErr    error

	getID  string
	getJob *models.Job
	getErr error

	created   *models.Job
	createdOf models.JobDraft
	createErr error

	appliedJob string
	appliedMsg string
	app        *models.Application
	applyErr   error

	mineItems []models.Job
	mineErr   error
}

func (f *fakeJobs) List(_ context.Context, filter models.JobFilter) ([]models.Job, error) {
	f.listFilter = filter
	return f.listItems, f.listErr
}
func (f *fakeJobs) Get(_ context.Context, id string) (*models.Job, error) {
	f.getID = id
	return f.getJob, f.getErr
}
func (f *fakeJobs) Create(_ context.Context, draft models.JobDraft) (*models.Job, error) {
	f.createdOf = draft
	return f.created, f.createErr
}
func (f *fakeJobs) Apply(_ context.Context, jobID, message string) (*models.Application, error) {
	f.appliedJob, f.appliedMsg = jobID, message
	return f.app, f.applyErr
}
func (f *fakeJobs) Mine(context.Context) ([]models.Job, error) { return f.mineItems, f.mineErr }

type fakeWorkers struct {
	browseFilter models.WorkerFilter
	browseItems  []models.Worker
	browseErr    error

	hiredWorker string
	hiredJob    string
	hireReq     *models.HireRequest
	hireErr     error

	requests    []models.HireRequest
	requestsErr error

	respondedID string
	accepted    bool
	respondReq  *models.HireRequest
	respondErr  error
}

func (f *fakeWorkers) Browse(_ context.Context, filter models.WorkerFilter) ([]models.Worker, error) {
	f.browseFilter = filter
	return f.browseItems, f.browseErr
}
func (f *fakeWorkers) Get(_ context.Context, id string) (*models.Worker, error) { return nil, nil }
func (f *fakeWorkers) Hire(_ context.Context, workerID, jobID, message string) (*models.HireRequest, error) {
	f.hiredWorker, f.hiredJob = workerID, jobID
	return f.hireReq, f.hireErr
}
func (f *fakeWorkers) Requests(context.Context) ([]models.HireRequest, error) {
	return f.requests, f.requestsErr
}
func (f *fakeWorkers) Respond(_ context.Context, requestID string, accept bool) (*models.HireRequest, error) {
	f.respondedID, f.accepted = requestID, accept
	return f.respondReq, f.respondErr
}

type fakeEarnings struct {
	summary    *models.EarningsSummary
	summaryErr error

	historyPeriod string
	history       []models.EarningsEntry
	historyErr    error
}

func (f *fakeEarnings) Summary(context.Context) (*models.EarningsSummary, error) {
	return f.summary, f.summaryErr
}
func (f *fakeEarnings) History(_ context.Context, period string) ([]models.EarningsEntry, error) {
	f.historyPeriod = period
	return f.history, f.historyErr
}
