package service

import (
	"context"
	"sync"
	"time"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) get(id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.Sites = append([]string(nil), u.Sites...)
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return r.get(u.ID)
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByParentID(_ context.Context, parentID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		if u.ParentID == parentID {
			clone, _ := r.get(u.ID)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	return user, nil
}

func (r *stubUserRepo) UpdateRoleAndParent(_ context.Context, id string, role domain.Role, parentID string, program string, sites []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.ParentID = parentID
	u.Program = program
	u.Sites = append([]string(nil), sites...)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) UpdateParent(_ context.Context, id string, parentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ParentID = parentID
	return nil
}

func (r *stubUserRepo) UpdateAttributes(_ context.Context, id string, program string, sites []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Program = program
	u.Sites = append([]string(nil), sites...)
	return nil
}

type stubRequestRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.PromotionRequest
}

func newStubRequestRepo() *stubRequestRepo {
	return &stubRequestRepo{byID: make(map[string]*domain.PromotionRequest)}
}

func (r *stubRequestRepo) CreatePending(_ context.Context, req *domain.PromotionRequest) (*domain.PromotionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirrors the unique partial index on (target_user_id, requested_role, pending).
	for _, existing := range r.byID {
		if existing.Status == domain.StatusPending &&
			existing.TargetUserID == req.TargetUserID &&
			existing.RequestedRole == req.RequestedRole {
			return nil, domain.ErrDuplicateRequest
		}
	}
	clone := *req
	r.byID[req.ID] = &clone
	return req, nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.PromotionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubRequestRepo) ExistsPending(_ context.Context, targetUserID string, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.Status == domain.StatusPending && req.TargetUserID == targetUserID && req.RequestedRole == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRequestRepo) CompareAndSetStatus(_ context.Context, id string, from, to domain.RequestStatus, adminNotes string) (*domain.PromotionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok || req.Status != from {
		return nil, domain.ErrRequestNotFound
	}
	before := *req
	req.Status = to
	if adminNotes != "" {
		req.AdminNotes = adminNotes
	}
	req.UpdatedAt = time.Now().UTC()
	return &before, nil
}

func (r *stubRequestRepo) ListPending(_ context.Context) ([]*domain.PromotionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PromotionRequest
	for _, req := range r.byID {
		if req.Status == domain.StatusPending {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubCatalog struct {
	sites map[string][]string
}

func (c *stubCatalog) SitesFor(_ context.Context, program string) ([]string, error) {
	return c.sites[program], nil
}

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *stubAuditSink) Record(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubAuditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}
