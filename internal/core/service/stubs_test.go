package service

import (
	"context"
	"sort"
	"sync"

	"github.com/sgsm/taskboard/internal/core/domain"
)

type stubUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.byID {
		if u.ID != user.ID && u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) put(id, username string, role domain.GlobalRole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = &domain.User{ID: id, Username: username, Role: role}
}

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Project{}
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubMemberDir struct {
	mu      sync.Mutex
	entries map[[2]string]*domain.Membership
	lookups int

	// failAdd is returned by Add when set.
	failAdd error
}

func newStubMemberDir() *stubMemberDir {
	return &stubMemberDir{entries: make(map[[2]string]*domain.Membership)}
}

func (d *stubMemberDir) MembershipOf(_ context.Context, userID, projectID string) (domain.ProjectRole, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	m, ok := d.entries[[2]string{userID, projectID}]
	if !ok {
		return "", false, nil
	}
	return m.Role, true, nil
}

func (d *stubMemberDir) ExistsMember(ctx context.Context, userID, projectID string) (bool, error) {
	_, ok, err := d.MembershipOf(ctx, userID, projectID)
	return ok, err
}

func (d *stubMemberDir) Add(_ context.Context, m *domain.Membership) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failAdd != nil {
		return d.failAdd
	}
	key := [2]string{m.UserID, m.ProjectID}
	if _, ok := d.entries[key]; ok {
		return domain.ErrMembershipExists
	}
	clone := *m
	d.entries[key] = &clone
	return nil
}

func (d *stubMemberDir) Remove(_ context.Context, userID, projectID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := [2]string{userID, projectID}
	if _, ok := d.entries[key]; !ok {
		return domain.ErrMembershipNotFound
	}
	delete(d.entries, key)
	return nil
}

func (d *stubMemberDir) ListByProject(_ context.Context, projectID string) ([]*domain.Membership, error) {
	return d.list(func(m *domain.Membership) bool { return m.ProjectID == projectID }), nil
}

func (d *stubMemberDir) ListByUser(_ context.Context, userID string) ([]*domain.Membership, error) {
	return d.list(func(m *domain.Membership) bool { return m.UserID == userID }), nil
}

func (d *stubMemberDir) DeleteByProject(_ context.Context, projectID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, m := range d.entries {
		if m.ProjectID == projectID {
			delete(d.entries, k)
		}
	}
	return nil
}

func (d *stubMemberDir) DeleteByUser(_ context.Context, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, m := range d.entries {
		if m.UserID == userID {
			delete(d.entries, k)
		}
	}
	return nil
}

func (d *stubMemberDir) list(match func(*domain.Membership) bool) []*domain.Membership {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []*domain.Membership{}
	for _, m := range d.entries {
		if match(m) {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectID != out[j].ProjectID {
			return out[i].ProjectID < out[j].ProjectID
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func (d *stubMemberDir) put(userID, projectID string, role domain.ProjectRole) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[[2]string{userID, projectID}] = &domain.Membership{UserID: userID, ProjectID: projectID, Role: role}
}

type stubTaskRepo struct {
	mu     sync.Mutex
	tasks  map[string]*domain.Task
	writes int

	// failPositionAfter makes UpdatePosition fail once that many calls
	// succeeded; negative disables it.
	failPositionAfter int
	positionCalls     int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), failPositionAfter: -1}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	out := r.filter(func(t *domain.Task) bool { return t.ProjectID == projectID })
	domain.SortBoard(out)
	return out, nil
}

func (r *stubTaskRepo) ListByAssignee(_ context.Context, userID string) ([]*domain.Task, error) {
	out := r.filter(func(t *domain.Task) bool { return t.AssigneeID == userID })
	domain.SortBoard(out)
	return out, nil
}

func (r *stubTaskRepo) ListBucket(_ context.Context, projectID string, status domain.TaskStatus) ([]*domain.Task, error) {
	out := r.filter(func(t *domain.Task) bool { return t.ProjectID == projectID && t.Status == status })
	domain.SortBucket(out)
	return out, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, projectID string, status domain.TaskStatus) (int64, error) {
	out := r.filter(func(t *domain.Task) bool { return t.ProjectID == projectID && t.Status == status })
	return int64(len(out)), nil
}

func (r *stubTaskRepo) MaxPosition(_ context.Context, projectID string, status domain.TaskStatus) (int, error) {
	max := 0
	for _, t := range r.filter(func(t *domain.Task) bool { return t.ProjectID == projectID && t.Status == status }) {
		if t.Position > max {
			max = t.Position
		}
	}
	return max, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.writes++
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) UpdatePosition(_ context.Context, id string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failPositionAfter >= 0 && r.positionCalls >= r.failPositionAfter {
		return errStorage
	}
	r.positionCalls++
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	r.writes++
	t.Position = position
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	r.writes++
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *stubTaskRepo) filter(match func(*domain.Task) bool) []*domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Task{}
	for _, t := range r.tasks {
		if match(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// put stores a task directly, bypassing the engine.
func (r *stubTaskRepo) put(t *domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = cloneTask(t)
}

func (r *stubTaskRepo) snapshot() map[string]domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Task, len(r.tasks))
	for id, t := range r.tasks {
		out[id] = *t
	}
	return out
}

type stubCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Comment{}
	for _, c := range r.comments {
		if c.ProjectID == projectID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubCommentRepo) SetPinned(_ context.Context, id string, pinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Pinned = pinned
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByProject(_ context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.ProjectID == projectID {
			delete(r.comments, id)
		}
	}
	return nil
}

// stubLocker serializes per project with a plain mutex map and counts
// acquisitions.
type stubLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	held  map[string]int

	// releaseErr is returned by every release func when set.
	releaseErr error
}

func newStubLocker() *stubLocker {
	return &stubLocker{locks: make(map[string]*sync.Mutex), held: make(map[string]int)}
}

func (l *stubLocker) Lock(_ context.Context, projectID string) (func() error, error) {
	l.mu.Lock()
	m, ok := l.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[projectID] = m
	}
	l.held[projectID]++
	l.mu.Unlock()

	m.Lock()
	return func() error {
		m.Unlock()
		return l.releaseErr
	}, nil
}

type stubError string

func (e stubError) Error() string { return string(e) }

const errStorage = stubError("storage unavailable")
