package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/models"
	"pagesmith/internal/domain/repositories"
	"pagesmith/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// fakeStore is an in-memory stand-in for the postgres repositories. All four
// repository views share one store so tests can assert cross-entity
// invariants (version count vs pointer, credits vs versions).
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	projects map[string]*models.Project
	versions map[string]*models.Version
	entries  []models.ConversationEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		projects: make(map[string]*models.Project),
		versions: make(map[string]*models.Version),
	}
}

func (f *fakeStore) addUser(id string, credits int) {
	f.users[id] = &models.User{ID: id, Credits: credits}
}

func (f *fakeStore) addProject(id, userID, code string) {
	p := &models.Project{ID: id, UserID: userID, Name: id}
	if code != "" {
		p.CurrentCode = &code
	}
	f.projects[id] = p
}

func (f *fakeStore) versionCount(projectID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.versions {
		if v.ProjectID == projectID {
			n++
		}
	}
	return n
}

func (f *fakeStore) entryCount(projectID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if e.ProjectID == projectID {
			n++
		}
	}
	return n
}

// --- UserRepository ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Ensure(_ context.Context, id string, starterCredits int) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		u = &models.User{ID: id, Credits: starterCredits}
		r.store.users[id] = u
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) DebitCredits(_ context.Context, id string, amount int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if u.Credits < amount {
		return fmt.Errorf("debit %d: %w", amount, domain.ErrInsufficientCredits)
	}
	u.Credits -= amount
	return nil
}

func (r *fakeUserRepo) AddCredits(_ context.Context, id string, amount int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.Credits += amount
	return nil
}

func (r *fakeUserRepo) IncrementCreations(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.TotalCreations++
	return nil
}

// --- ProjectRepository ---

type fakeProjectRepo struct{ store *fakeStore }

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *project
	r.store.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id, userID string) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) GetPublishedByID(_ context.Context, id string) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) List(_ context.Context, userID string) ([]models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Project
	for _, p := range r.store.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListPublished(_ context.Context) ([]models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Project
	for _, p := range r.store.projects {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) SetCurrent(_ context.Context, id string, code string, versionID *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	p.CurrentCode = &code
	p.CurrentVersionID = versionID
	return nil
}

func (r *fakeProjectRepo) SetPublished(_ context.Context, id string, published bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	p.IsPublished = published
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok || p.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.projects, id)
	for vid, v := range r.store.versions {
		if v.ProjectID == id {
			delete(r.store.versions, vid)
		}
	}
	return nil
}

// --- VersionRepository ---

type fakeVersionRepo struct{ store *fakeStore }

func (r *fakeVersionRepo) Create(_ context.Context, version *models.Version) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *version
	r.store.versions[version.ID] = &copied
	return nil
}

func (r *fakeVersionRepo) GetByID(_ context.Context, id, projectID string) (*models.Version, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.versions[id]
	if !ok || v.ProjectID != projectID {
		return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVersionRepo) ListByProject(_ context.Context, projectID string) ([]models.Version, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Version
	for _, v := range r.store.versions {
		if v.ProjectID == projectID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeVersionRepo) CountByProject(_ context.Context, projectID string) (int, error) {
	return r.store.versionCount(projectID), nil
}

// --- ConversationRepository ---

type fakeConvRepo struct{ store *fakeStore }

func (r *fakeConvRepo) Append(_ context.Context, entry *models.ConversationEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries = append(r.store.entries, *entry)
	return nil
}

func (r *fakeConvRepo) ListByProject(_ context.Context, projectID string) ([]models.ConversationEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.ConversationEntry
	for _, e := range r.store.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- TransactionManager ---

// fakeTxManager runs the function directly. The in-memory store has no real
// transactions; atomicity assertions instead check final state consistency.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// --- Gateway ---

// scriptedGateway returns canned responses in call order, or a fixed error.
type scriptedGateway struct {
	mu        sync.Mutex
	responses []string
	calls     int
	err       error
	lastMsgs  []services.Message
}

func (g *scriptedGateway) Complete(_ context.Context, _ string, messages []services.Message) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastMsgs = messages
	if g.err != nil {
		return "", g.err
	}
	if g.calls >= len(g.responses) {
		return "", fmt.Errorf("scripted gateway exhausted after %d calls", g.calls)
	}
	resp := g.responses[g.calls]
	g.calls++
	return resp, nil
}

// newTestEnv wires the fake store into every repository view.
func newTestEnv() (*fakeStore, *fakeUserRepo, *fakeProjectRepo, *fakeVersionRepo, *fakeConvRepo) {
	store := newFakeStore()
	return store,
		&fakeUserRepo{store: store},
		&fakeProjectRepo{store: store},
		&fakeVersionRepo{store: store},
		&fakeConvRepo{store: store}
}
